package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bmitracker/internal/domain"
)

func TestNew(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)

	c, err := New(Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, c.model)
	assert.Equal(t, DefaultBaseURL, c.baseURL)
}

func TestGenerate(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Walk daily. "},{"text":"Sleep well."}]}}]}`))
	}))
	defer srv.Close()

	c, err := New(Config{APIKey: "secret", Model: "test-model", BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	text, err := c.Generate(context.Background(), "hello", domain.SamplingParams{Temperature: 0.7, TopP: 0.9, TopK: 40})
	require.NoError(t, err)
	assert.Equal(t, "Walk daily. Sleep well.", text)
	assert.Equal(t, "/v1beta/models/test-model:generateContent", gotPath)
	assert.Equal(t, "secret", gotKey)
	require.Len(t, gotBody.Contents, 1)
	assert.Equal(t, "hello", gotBody.Contents[0].Parts[0].Text)
	assert.Equal(t, generationConfig{Temperature: 0.7, TopP: 0.9, TopK: 40}, gotBody.GenerationConfig)
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "invalid key",
			status:  http.StatusBadRequest,
			body:    `{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT"}}`,
			wantMsg: "API key not valid",
		},
		{
			name:    "plain server error",
			status:  http.StatusInternalServerError,
			body:    "boom",
			wantMsg: "status 500",
		},
		{
			name:    "no candidates",
			status:  http.StatusOK,
			body:    `{"candidates":[]}`,
			wantMsg: "no candidates",
		},
		{
			name:    "bad json",
			status:  http.StatusOK,
			body:    `{`,
			wantMsg: "failed to parse",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c, err := New(Config{APIKey: "k", BaseURL: srv.URL})
			require.NoError(t, err)
			_, err = c.Generate(context.Background(), "p", domain.SamplingParams{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestGenerate_TransportErrorRedactsKey(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(Config{APIKey: "top-secret-key", BaseURL: url})
	require.NoError(t, err)
	_, err = c.Generate(context.Background(), "p", domain.SamplingParams{})
	require.Error(t, err)
	assert.False(t, strings.Contains(err.Error(), "top-secret-key"))
}
