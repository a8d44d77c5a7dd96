package domain

import (
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-date format used for history entries.
const DateLayout = "2006-01-02"

var (
	// ErrInvalidWeight indicates a weight that is not a positive finite number.
	ErrInvalidWeight = errors.New("weight must be a positive number")
	// ErrInvalidHeight indicates a height that is not a positive finite number.
	ErrInvalidHeight = errors.New("height must be a positive number")
	// ErrInvalidDate indicates a date that is not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("date must be formatted as YYYY-MM-DD")
	// ErrEntryNotFound indicates that no history entry has the requested ID.
	ErrEntryNotFound = errors.New("history entry not found")
)

// HistoryEntry is one dated weight observation. WeightKg is always in
// kilograms; BMI was computed from the height known when the entry was added.
type HistoryEntry struct {
	ID       string  `json:"id" yaml:"id"`
	Date     string  `json:"date" yaml:"date"`
	WeightKg float64 `json:"weight" yaml:"weight"`
	BMI      float64 `json:"bmi" yaml:"bmi"`
}

// Day parses the entry's date. Entries with unparseable dates (only possible
// for hand-edited stored data) report the zero time.
func (e HistoryEntry) Day() time.Time {
	t, err := time.Parse(DateLayout, e.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// History is the weight history, kept in ascending date order. Methods never
// modify the receiver; mutations return a new slice.
type History []HistoryEntry

// Add validates the inputs, computes the entry's BMI from heightM and returns
// a new history containing the entry, stable-sorted by date. On error the
// receiver is returned unchanged.
func (h History) Add(weightKg float64, date string, heightM float64) (History, HistoryEntry, error) {
	if !positive(weightKg) {
		return h, HistoryEntry{}, ErrInvalidWeight
	}
	if !positive(heightM) {
		return h, HistoryEntry{}, ErrInvalidHeight
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return h, HistoryEntry{}, ErrInvalidDate
	}
	bmi, ok := ComputeBMI(heightM, weightKg)
	if !ok {
		// height squared underflowed to zero, or the weight is too large
		if heightM*heightM == 0 {
			return h, HistoryEntry{}, ErrInvalidHeight
		}
		return h, HistoryEntry{}, ErrInvalidWeight
	}

	entry := HistoryEntry{
		ID:       uuid.NewString(),
		Date:     date,
		WeightKg: weightKg,
		BMI:      bmi,
	}
	out := make(History, 0, len(h)+1)
	out = append(out, h...)
	out = append(out, entry)
	out.sortByDate()
	return out, entry, nil
}

// Remove returns a copy of the history without the entry with the given ID.
func (h History) Remove(id string) (History, bool) {
	out := make(History, 0, len(h))
	found := false
	for _, e := range h {
		if e.ID == id {
			found = true
			continue
		}
		out = append(out, e)
	}
	if !found {
		return h, false
	}
	out.sortByDate()
	return out, true
}

// Sorted reports whether entries are in ascending date order.
func (h History) Sorted() bool {
	return sort.SliceIsSorted(h, func(i, j int) bool {
		return h[i].Day().Before(h[j].Day())
	})
}

// Latest returns the entry with the most recent date.
func (h History) Latest() (HistoryEntry, bool) {
	if len(h) == 0 {
		return HistoryEntry{}, false
	}
	return h[len(h)-1], true
}

// Serialize encodes the full ordered history as a JSON array.
func (h History) Serialize() ([]byte, error) {
	if h == nil {
		h = History{}
	}
	return json.Marshal(h)
}

// DeserializeHistory decodes a serialized history. Empty or malformed input
// yields an empty history rather than an error so a damaged store never
// blocks startup. Decoded entries are re-sorted by date.
func DeserializeHistory(data []byte) History {
	var h History
	if len(data) == 0 {
		return History{}
	}
	if err := json.Unmarshal(data, &h); err != nil || h == nil {
		return History{}
	}
	h.sortByDate()
	return h
}

func (h History) sortByDate() {
	sort.SliceStable(h, func(i, j int) bool {
		return h[i].Day().Before(h[j].Day())
	})
}
