package domain

import (
	"fmt"
	"time"
)

// ListWindow selects the time window for list totals.
type ListWindow int

const (
	// WindowAll includes every segment.
	WindowAll ListWindow = iota
	// WindowToday includes time spent during the current local day.
	WindowToday
	// WindowWeek includes time spent during the current local week,
	// starting Monday.
	WindowWeek
)

// ListEntry is one task row with its total inside the window.
type ListEntry struct {
	ID     string
	Name   string
	Status string
	Total  time.Duration
}

// ListTasks returns one entry per task with time inside the window,
// in task creation order. Segments are clipped to the window bounds,
// so a segment spanning midnight contributes only its in-window part.
func ListTasks(s *Store, now time.Time, window ListWindow, loc *time.Location) []ListEntry {
	var start, end time.Time
	bounded := window != WindowAll
	if bounded {
		start, end = windowBounds(now, window, loc)
	}

	var entries []ListEntry
	for i := range s.Tasks {
		t := &s.Tasks[i]
		var total time.Duration
		for _, seg := range t.Segments {
			if bounded {
				total += clippedDuration(seg, start, end, now)
			} else {
				total += seg.Duration(now)
			}
		}
		if total == 0 {
			continue
		}
		entries = append(entries, ListEntry{
			ID:     t.ID,
			Name:   t.Name,
			Status: t.StatusLabel(),
			Total:  total,
		})
	}
	return entries
}

// ListTotal sums the totals of all entries.
func ListTotal(entries []ListEntry) time.Duration {
	var total time.Duration
	for _, e := range entries {
		total += e.Total
	}
	return total
}

// ListHeader returns the window description line, or "" for WindowAll.
func ListHeader(now time.Time, window ListWindow, loc *time.Location) string {
	switch window {
	case WindowToday:
		return now.In(loc).Format("2006-01-02")
	case WindowWeek:
		start, end := windowBounds(now, WindowWeek, loc)
		last := end.Add(-24 * time.Hour)
		return fmt.Sprintf("Week %s to %s", start.Format("2006-01-02"), last.Format("2006-01-02"))
	default:
		return ""
	}
}

// clippedDuration returns the part of the segment that overlaps
// [start, end), using now as the end of an open segment.
func clippedDuration(seg Segment, start, end, now time.Time) time.Duration {
	segEnd := now
	if seg.EndAt != nil {
		segEnd = *seg.EndAt
	}
	if !segEnd.After(start) || !seg.StartAt.Before(end) {
		return 0
	}
	from := seg.StartAt
	if from.Before(start) {
		from = start
	}
	to := segEnd
	if to.After(end) {
		to = end
	}
	if !to.After(from) {
		return 0
	}
	return to.Sub(from)
}

// windowBounds returns [start, end) of the local day or week holding now.
func windowBounds(now time.Time, window ListWindow, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	y, m, d := local.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, loc)
	if window == WindowToday {
		return dayStart, dayStart.AddDate(0, 0, 1)
	}
	// Monday-based week.
	offset := (int(local.Weekday()) + 6) % 7
	weekStart := dayStart.AddDate(0, 0, -offset)
	return weekStart, weekStart.AddDate(0, 0, 7)
}
