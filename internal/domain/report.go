package domain

import (
	"sort"
	"time"
)

// ReportEntry is one segment line in a daily report.
type ReportEntry struct {
	StartAt  time.Time
	EndAt    time.Time // equals now for an open segment
	TaskName string
	Duration time.Duration
	Open     bool
}

// ReportDay lists every segment attributed to the calendar day that
// contains date, in loc. A segment belongs to the day containing its
// effective end (end_at, or now while still open), and its whole
// duration is attributed to that day. Entries are ordered most recent
// first by effective end, open segments first, with task creation
// order as a stable tie-break.
func ReportDay(s *Store, date, now time.Time, loc *time.Location) []ReportEntry {
	day := date.In(loc)
	y, m, d := day.Date()

	var entries []ReportEntry
	for i := range s.Tasks {
		t := &s.Tasks[i]
		for _, seg := range t.Segments {
			end := now
			if seg.EndAt != nil {
				end = *seg.EndAt
			}
			ey, em, ed := end.In(loc).Date()
			if ey != y || em != m || ed != d {
				continue
			}
			entries = append(entries, ReportEntry{
				TaskName: t.Name,
				StartAt:  seg.StartAt,
				EndAt:    end,
				Duration: seg.Duration(now),
				Open:     seg.Open(),
			})
		}
	}

	// Entries were collected in task creation order, so a stable sort
	// keeps creation order for exact ties.
	sort.SliceStable(entries, func(a, b int) bool {
		if entries[a].Open != entries[b].Open {
			return entries[a].Open
		}
		return entries[a].EndAt.After(entries[b].EndAt)
	})
	return entries
}

// ReportTotal sums the durations of all entries.
func ReportTotal(entries []ReportEntry) time.Duration {
	var total time.Duration
	for _, e := range entries {
		total += e.Duration
	}
	return total
}
