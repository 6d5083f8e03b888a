package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-webdav"
	"github.com/emersion/go-webdav/caldav"
)

type CalDAVSink struct {
	client      *caldav.Client
	ctx         context.Context
	serverURL   string
	calendarURL string
}

func NewCalDAVSink(ctx context.Context, serverURL, username, password, calendarURL string) (*CalDAVSink, error) {
	baseURL, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid CalDAV server URL: %w", err)
	}

	// Create HTTP client with authentication if needed
	var httpClient webdav.HTTPClient = http.DefaultClient
	if username != "" && password != "" {
		httpClient = webdav.HTTPClientWithBasicAuth(httpClient, username, password)
	}

	c, err := caldav.NewClient(httpClient, baseURL.String())
	if err != nil {
		return nil, fmt.Errorf("failed to create CalDAV client: %w", err)
	}

	return &CalDAVSink{
		client:      c,
		ctx:         ctx,
		serverURL:   serverURL,
		calendarURL: calendarURL,
	}, nil
}

// EnsureCalendar verifies the configured calendar collection exists and
// returns its path. CalDAV servers rarely allow MKCALENDAR through plain
// clients, so the collection must be created server-side beforehand; the
// computed name is only used for reporting.
func (c *CalDAVSink) EnsureCalendar(name string) (string, error) {
	calURL, err := url.Parse(c.calendarURL)
	if err != nil {
		return "", fmt.Errorf("invalid calendar URL: %w", err)
	}

	// Extract the calendar home set from the URL (usually the parent path)
	homeSetPath := "/"
	if calURL.Path != "" {
		parts := strings.Split(strings.TrimRight(calURL.Path, "/"), "/")
		if len(parts) > 1 {
			homeSetPath = "/" + strings.Join(parts[:len(parts)-1], "/")
		}
	}

	calendars, err := c.client.FindCalendars(c.ctx, homeSetPath)
	if err != nil {
		return "", fmt.Errorf("failed to find calendars: %w", err)
	}

	for _, cal := range calendars {
		if cal.Path == calURL.Path {
			printVerbosely(1, "Using CalDAV calendar %s for %q\n", cal.Path, name)
			return cal.Path, nil
		}
	}

	return "", fmt.Errorf("calendar not found at path: %s", calURL.Path)
}

func (c *CalDAVSink) Find(calendarID, title string, date time.Time) (*SinkEvent, error) {
	query := &caldav.CalendarQuery{
		CompFilter: caldav.CompFilter{
			Name: "VCALENDAR",
			Comps: []caldav.CompFilter{{
				Name:  "VEVENT",
				Start: date.AddDate(0, 0, -1),
				End:   date.AddDate(0, 0, 2),
			}},
		},
	}

	objects, err := c.client.QueryCalendar(c.ctx, calendarID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}

	for _, obj := range objects {
		for _, comp := range obj.Data.Component.Children {
			if comp.Name != "VEVENT" {
				continue
			}
			if getTextProp(comp.Props, "SUMMARY") != title {
				continue
			}
			ev := sinkEventFromComponent(comp)
			if sameDate(ev.Start, date) {
				return ev, nil
			}
		}
	}
	return nil, nil
}

func (c *CalDAVSink) Create(calendarID string, desc EventDescriptor) (string, error) {
	cal := calendarObjectFromDescriptor(desc.UID, desc)

	path := strings.TrimRight(calendarID, "/") + "/" + desc.UID + ".ics"
	_, err := c.client.PutCalendarObject(c.ctx, path, cal)
	if err != nil {
		return "", fmt.Errorf("failed to create event: %w", err)
	}

	return desc.UID, nil
}

func (c *CalDAVSink) Update(calendarID, eventID string, desc EventDescriptor) error {
	cal := calendarObjectFromDescriptor(eventID, desc)

	// The eventID + .ics is the typical filename format for CalDAV events;
	// PutCalendarObject replaces the existing resource.
	path := strings.TrimRight(calendarID, "/") + "/" + eventID + ".ics"
	_, err := c.client.PutCalendarObject(c.ctx, path, cal)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	return nil
}

func (c *CalDAVSink) Clear(calendarID string) error {
	query := &caldav.CalendarQuery{
		CompFilter: caldav.CompFilter{
			Name:  "VCALENDAR",
			Comps: []caldav.CompFilter{{Name: "VEVENT"}},
		},
	}

	objects, err := c.client.QueryCalendar(c.ctx, calendarID, query)
	if err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}

	deleted := 0
	for _, obj := range objects {
		if err := c.client.Client.RemoveAll(c.ctx, obj.Path); err != nil {
			printVerbosely(2, "Could not delete %s: %v\n", obj.Path, err)
			continue
		}
		deleted++
	}
	fmt.Printf("Cleared %d events from calendar\n", deleted)
	return nil
}

func calendarObjectFromDescriptor(uid string, desc EventDescriptor) *ical.Calendar {
	icalEvent := ical.NewEvent()
	icalEvent.Component.Props.SetText("UID", uid)
	icalEvent.Component.Props.SetText("SUMMARY", desc.Title)
	if desc.Body != "" {
		icalEvent.Component.Props.SetText("DESCRIPTION", desc.Body)
	}
	if desc.AllDay {
		setDateProp(icalEvent.Component.Props, "DTSTART", desc.Start)
		setDateProp(icalEvent.Component.Props, "DTEND", desc.End)
	} else {
		icalEvent.Component.Props.SetDateTime("DTSTART", desc.Start)
		icalEvent.Component.Props.SetDateTime("DTEND", desc.End)
	}
	icalEvent.Component.Props.SetDateTime("DTSTAMP", time.Now().UTC())
	icalEvent.Component.Props.SetText("STATUS", "CONFIRMED")
	icalEvent.Component.Props.SetText("TRANSP", "TRANSPARENT")
	icalEvent.Component.Props.SetText("CATEGORIES", desc.Category)

	cal := ical.NewCalendar()
	cal.Props.SetText("PRODID", icsProductID)
	cal.Props.SetText("VERSION", "2.0")
	cal.Component.Children = append(cal.Component.Children, icalEvent.Component)
	return cal
}

func sinkEventFromComponent(comp *ical.Component) *SinkEvent {
	ev := &SinkEvent{
		ID:    getTextProp(comp.Props, "UID"),
		Title: getTextProp(comp.Props, "SUMMARY"),
	}

	if prop := comp.Props.Get("DTSTART"); prop != nil && prop.ValueType() == ical.ValueDate {
		ev.AllDay = true
	}
	ev.Start, _ = comp.Props.DateTime("DTSTART", time.UTC)
	ev.End, _ = comp.Props.DateTime("DTEND", time.UTC)
	return ev
}

func setDateProp(props ical.Props, name string, t time.Time) {
	prop := ical.NewProp(name)
	prop.SetValueType(ical.ValueDate)
	prop.Value = t.Format("20060102")
	props.Set(prop)
}

// Helper function to get text property safely
func getTextProp(props ical.Props, name string) string {
	prop := props.Get(name)
	if prop == nil {
		return ""
	}
	return prop.Value
}
