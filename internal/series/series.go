package series

import (
	"sort"
	"sync/atomic"
	"time"
)

// Series is an immutable, date-indexed view over daily sales records.
// Records are sorted ascending by date and deduplicated; gaps between
// dates are allowed and surface as absent lookups, never as zeros.
type Series struct {
	records []DailyRecord
	byDate  map[time.Time]DailyRecord
}

// New builds a Series from raw records: dates are normalized, the slice
// is sorted ascending, and duplicate dates collapse to the last record
// seen (the loader logs when that happens).
func New(records []DailyRecord) *Series {
	byDate := make(map[time.Time]DailyRecord, len(records))
	for _, rec := range records {
		rec.Date = Day(rec.Date)
		byDate[rec.Date] = rec
	}

	sorted := make([]DailyRecord, 0, len(byDate))
	for _, rec := range byDate {
		sorted = append(sorted, rec)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	return &Series{records: sorted, byDate: byDate}
}

// Empty returns a Series with no records.
func Empty() *Series {
	return New(nil)
}

// Len returns the number of distinct days.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// At returns the record for the given calendar day, if present.
func (s *Series) At(date time.Time) (DailyRecord, bool) {
	if s == nil {
		return DailyRecord{}, false
	}
	rec, ok := s.byDate[Day(date)]
	return rec, ok
}

// Last returns the most recent record.
func (s *Series) Last() (DailyRecord, bool) {
	if s.Len() == 0 {
		return DailyRecord{}, false
	}
	return s.records[len(s.records)-1], true
}

// LastDate returns the max date present.
func (s *Series) LastDate() (time.Time, bool) {
	rec, ok := s.Last()
	return rec.Date, ok
}

// Records returns the underlying ascending slice. Callers must treat it
// as read-only.
func (s *Series) Records() []DailyRecord {
	if s == nil {
		return nil
	}
	return s.records
}

// Tail returns the last n records (fewer when the series is shorter).
func (s *Series) Tail(n int) []DailyRecord {
	if s == nil || n <= 0 {
		return nil
	}
	if n > len(s.records) {
		n = len(s.records)
	}
	return s.records[len(s.records)-n:]
}

// WindowEnding returns the records whose dates fall inside the trailing
// window of `days` calendar days ending at (and including) end. Gaps
// shrink the result; nothing is filled in.
func (s *Series) WindowEnding(end time.Time, days int) []DailyRecord {
	if s == nil || days <= 0 {
		return nil
	}
	end = Day(end)
	start := end.AddDate(0, 0, -(days - 1))

	out := make([]DailyRecord, 0, days)
	for _, rec := range s.records {
		if rec.Date.Before(start) {
			continue
		}
		if rec.Date.After(end) {
			break
		}
		out = append(out, rec)
	}
	return out
}

// Holder is an atomic snapshot of the series so a reload can swap in a
// fresh immutable Series without in-flight readers observing a partial
// update.
type Holder struct {
	current atomic.Pointer[Series]
}

// NewHolder wraps the given series; a nil series becomes an empty one.
func NewHolder(s *Series) *Holder {
	h := &Holder{}
	if s == nil {
		s = Empty()
	}
	h.current.Store(s)
	return h
}

// Load returns the current snapshot.
func (h *Holder) Load() *Series {
	if h == nil {
		return Empty()
	}
	return h.current.Load()
}

// Swap replaces the snapshot.
func (h *Holder) Swap(s *Series) {
	if s == nil {
		s = Empty()
	}
	h.current.Store(s)
}
