package main

import (
	"context"
	"fmt"
	"time"
)

type pushCounts struct {
	Created    int
	Updated    int
	Duplicates int
	Failures   int
}

// importToLiveCalendar pushes the filtered record set into a live calendar:
// resolve the target calendar, optionally clear it, then create, update or
// skip one event per expanded descriptor. A failing event never aborts the
// run; it is reported and counted.
func importToLiveCalendar(ctx context.Context, config *Config, opts SinkOptions, records []TimeOffRecord, calName string, clearExisting bool, cfg EventConfig) (pushCounts, error) {
	var counts pushCounts

	db, err := openDB(".timeoffcal.db")
	if err != nil {
		return counts, fmt.Errorf("error opening database: %w", err)
	}
	defer db.Close()

	sink, err := newCalendarSink(ctx, config, db, opts)
	if err != nil {
		return counts, err
	}

	if opts.Provider == "caldav" {
		fmt.Printf("Note: the CalDAV sink writes to the configured collection; %q is used for reporting only\n", calName)
	}

	calendarID, err := sink.EnsureCalendar(calName)
	if err != nil {
		return counts, fmt.Errorf("error resolving calendar %q: %w", calName, err)
	}

	if clearExisting {
		fmt.Printf("Clearing calendar %q before importing...\n", calName)
		if err := sink.Clear(calendarID); err != nil {
			// Same policy as a per-event failure: report and move on.
			fmt.Printf("Error during clear operation: %v\nContinuing with import...\n", err)
		}
	}

	for _, rec := range records {
		printVerbosely(1, "Processing %s (row %d)\n", rec.Name, rec.RowIndex)
		for _, desc := range expandRecord(rec, cfg) {
			pushEvent(sink, calendarID, desc, config.UTCOffsetHours, &counts)
		}
	}

	return counts, nil
}

// pushEvent persists one descriptor. Timed events are shifted by the
// configured offset before the duplicate check so that both the lookup and
// the write see the sink's representation.
func pushEvent(sink CalendarSink, calendarID string, desc EventDescriptor, offsetHours int, counts *pushCounts) {
	sinkDesc := shiftForSink(desc, offsetHours)

	existing, err := sink.Find(calendarID, sinkDesc.Title, dateOnly(sinkDesc.Start))
	if err != nil {
		// Fail-safe: if the lookup itself breaks, proceed with creation.
		printVerbosely(2, "Duplicate check failed for %s: %v\n", desc.Title, err)
		existing = nil
	}

	switch classifyAgainstExisting(sinkDesc, existing) {
	case actionDuplicate:
		fmt.Printf("Skipped (duplicate): %s\n", describeEvent(desc))
		counts.Duplicates++

	case actionUpdate:
		fmt.Printf("Updating: %s\n", describeEvent(desc))
		if err := sink.Update(calendarID, existing.ID, sinkDesc); err != nil {
			fmt.Printf("Error updating event for %s: %v\n", desc.Title, err)
			counts.Failures++
			return
		}
		counts.Updated++

	case actionCreate:
		if _, err := sink.Create(calendarID, sinkDesc); err != nil {
			fmt.Printf("Error creating event for %s: %v\n", desc.Title, err)
			counts.Failures++
			return
		}
		fmt.Printf("Created: %s\n", describeEvent(desc))
		counts.Created++
	}
}

// describeEvent renders a progress line from the unshifted descriptor.
func describeEvent(desc EventDescriptor) string {
	if desc.AllDay {
		return fmt.Sprintf("%s - %s (All Day)", desc.Title, desc.Start.Format("01/02/2006"))
	}
	hours := desc.End.Sub(desc.Start).Hours()
	return fmt.Sprintf("%s - %s to %s (%.1f hrs)",
		desc.Title,
		desc.Start.Format("01/02/2006 03:04 PM"),
		desc.End.Format("03:04 PM"),
		hours)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
