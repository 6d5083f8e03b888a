package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/emersion/go-ical"
)

const icsProductID = "-//Employee Time Off Calendar//EN"

// writeCalendarFile serializes descriptors into a single .ics document.
// The file sink always emits fresh entries; duplicate detection only
// applies to live calendars.
func writeCalendarFile(path, calName string, descriptors []EventDescriptor) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := encodeCalendar(f, calName, descriptors); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func encodeCalendar(w io.Writer, calName string, descriptors []EventDescriptor) error {
	cal := ical.NewCalendar()
	cal.Props.SetText("PRODID", icsProductID)
	cal.Props.SetText("VERSION", "2.0")
	// The X-WR headers are non-standard, so SetText would tag them with a
	// VALUE=TEXT parameter; set them as raw props instead.
	setRawProp(cal.Props, "X-WR-CALNAME", calName)
	setRawProp(cal.Props, "X-WR-TIMEZONE", "America/Chicago")
	cal.Props.SetText("CALSCALE", "GREGORIAN")
	cal.Props.SetText("METHOD", "PUBLISH")

	for _, desc := range descriptors {
		event := ical.NewEvent()
		event.Component.Props.SetText("UID", desc.UID)
		event.Component.Props.SetText("SUMMARY", desc.Title)
		if desc.Body != "" {
			event.Component.Props.SetText("DESCRIPTION", desc.Body)
		}
		if desc.AllDay {
			setDateProp(event.Component.Props, "DTSTART", desc.Start)
			setDateProp(event.Component.Props, "DTEND", desc.End)
		} else {
			// Timed entries carry floating wall-clock times: the file
			// declares X-WR-TIMEZONE, and a UTC marker would move a 9 AM
			// request to the small hours in any consumer honoring it.
			setFloatingDateTime(event.Component.Props, "DTSTART", desc.Start)
			setFloatingDateTime(event.Component.Props, "DTEND", desc.End)
		}
		event.Component.Props.SetDateTime("DTSTAMP", time.Now().UTC())
		event.Component.Props.SetText("STATUS", "CONFIRMED")
		event.Component.Props.SetText("TRANSP", "TRANSPARENT")
		event.Component.Props.SetText("CATEGORIES", desc.Category)
		cal.Component.Children = append(cal.Component.Children, event.Component)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return nil
}

func setRawProp(props ical.Props, name, value string) {
	prop := ical.NewProp(name)
	prop.Value = value
	props.Set(prop)
}

func setFloatingDateTime(props ical.Props, name string, t time.Time) {
	prop := ical.NewProp(name)
	prop.Value = t.Format("20060102T150405")
	props.Set(prop)
}

// expandForFile expands every record for the file sink, in input order.
func expandForFile(records []TimeOffRecord, cfg EventConfig) []EventDescriptor {
	var descriptors []EventDescriptor
	for _, rec := range records {
		descriptors = append(descriptors, expandRecord(rec, cfg)...)
	}
	return descriptors
}
