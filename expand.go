package main

import (
	"fmt"
	"strings"
	"time"
)

// EventConfig controls how descriptors are rendered from records.
type EventConfig struct {
	// VerboseTitles appends " - <reason>" to the employee name.
	VerboseTitles bool
	// IncludeDescriptions fills the event body with the employee, reason,
	// policy and duration details.
	IncludeDescriptions bool
	// WorkHours is the span of each full-day-with-hours event.
	WorkHours int
}

// EventDescriptor is one calendar entry produced from a record. All-day
// descriptors span midnight to midnight of their date; timed descriptors
// carry unshifted wall-clock bounds (live sinks apply the configured offset
// at the boundary).
type EventDescriptor struct {
	Title    string
	Body     string
	Start    time.Time
	End      time.Time
	AllDay   bool
	Category string

	// UID is deterministic per (employee, date, day offset), so re-running
	// the converter over the same input yields the same identifiers.
	UID string
}

// expandRecord turns one record into its calendar events:
//
//   - no start time: one all-day event per day of the span
//   - start time + less than a day: a single timed event of the exact duration
//   - start time + one day or more: one timed work-shift event per day
//
// Descriptors are ordered by ascending day offset.
func expandRecord(rec TimeOffRecord, cfg EventConfig) []EventDescriptor {
	if !rec.IsValid() {
		return nil
	}

	numDays := rec.NumDays()
	title := eventTitle(rec, cfg)

	if !rec.HasStartTime {
		events := make([]EventDescriptor, 0, numDays)
		for offset := 0; offset < numDays; offset++ {
			date := rec.StartDate.AddDate(0, 0, offset)
			desc := EventDescriptor{
				Title:    title,
				Start:    date,
				End:      date.AddDate(0, 0, 1),
				AllDay:   true,
				Category: eventCategory,
				UID:      eventUID(rec, date, offset),
			}
			if cfg.IncludeDescriptions {
				desc.Body = eventBody(rec, offset, numDays, 0)
			}
			events = append(events, desc)
		}
		return events
	}

	if rec.IsPartialDay() {
		durationHours := rec.Duration
		if rec.Unit == UnitDays {
			durationHours = rec.Duration * 24
		}
		start := rec.StartDate.Add(rec.StartTime)
		desc := EventDescriptor{
			Title:    title,
			Start:    start,
			End:      start.Add(time.Duration(durationHours * float64(time.Hour))),
			Category: eventCategory,
			UID:      eventUID(rec, rec.StartDate, 0),
		}
		if cfg.IncludeDescriptions {
			desc.Body = eventBody(rec, 0, 1, durationHours)
		}
		return []EventDescriptor{desc}
	}

	workHours := cfg.WorkHours
	if workHours <= 0 {
		workHours = 8
	}
	events := make([]EventDescriptor, 0, numDays)
	for offset := 0; offset < numDays; offset++ {
		date := rec.StartDate.AddDate(0, 0, offset)
		start := date.Add(rec.StartTime)
		desc := EventDescriptor{
			Title:    title,
			Start:    start,
			End:      start.Add(time.Duration(workHours) * time.Hour),
			Category: eventCategory,
			UID:      eventUID(rec, date, offset),
		}
		if cfg.IncludeDescriptions {
			desc.Body = eventBody(rec, offset, numDays, 0)
		}
		events = append(events, desc)
	}
	return events
}

func eventTitle(rec TimeOffRecord, cfg EventConfig) string {
	if cfg.VerboseTitles {
		return rec.Name + " - " + rec.Reason
	}
	return rec.Name
}

func eventBody(rec TimeOffRecord, dayOffset, numDays int, durationHours float64) string {
	parts := []string{
		"Employee: " + rec.Name,
		"Reason: " + rec.Reason,
		"Policy: " + rec.Policy,
	}
	if durationHours > 0 {
		parts = append(parts, fmt.Sprintf("Duration: %.1f hour(s)", durationHours))
	} else if numDays > 1 {
		parts = append(parts, fmt.Sprintf("Day %d of %d", dayOffset+1, numDays))
	}
	parts = append(parts, "Status: "+rec.Status)
	return strings.Join(parts, "\n")
}

func eventUID(rec TimeOffRecord, date time.Time, dayOffset int) string {
	return fmt.Sprintf("%s_%s_%d@timeoff",
		strings.ReplaceAll(rec.Name, " ", "_"), date.Format("20060102"), dayOffset)
}

// shiftForSink compensates for the live sink storing timed events in a
// different zone: timed bounds move back by the configured offset, all-day
// events are left alone.
func shiftForSink(desc EventDescriptor, offsetHours int) EventDescriptor {
	if desc.AllDay {
		return desc
	}
	shift := time.Duration(offsetHours) * time.Hour
	desc.Start = desc.Start.Add(-shift)
	desc.End = desc.End.Add(-shift)
	return desc
}

type eventAction int

const (
	actionCreate eventAction = iota
	actionDuplicate
	actionUpdate
)

// classifyAgainstExisting decides what to do with a candidate descriptor
// given the same-title, same-date entry already in the calendar (nil when
// there is none). All-day matches are always duplicates; timed matches are
// duplicates only when both bounds agree within the tolerance, otherwise
// the existing entry needs its times rewritten.
func classifyAgainstExisting(desc EventDescriptor, existing *SinkEvent) eventAction {
	if existing == nil {
		return actionCreate
	}
	if desc.AllDay {
		return actionDuplicate
	}
	startDiff := absDuration(existing.Start.Sub(desc.Start))
	endDiff := absDuration(existing.End.Sub(desc.End))
	if startDiff < duplicateTolerance && endDiff < duplicateTolerance {
		return actionDuplicate
	}
	return actionUpdate
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
