package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

type GoogleCalendarSink struct {
	service *calendar.Service
	ctx     context.Context
}

func NewGoogleCalendarSink(ctx context.Context, client *http.Client) (*GoogleCalendarSink, error) {
	service, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &GoogleCalendarSink{
		service: service,
		ctx:     ctx,
	}, nil
}

// EnsureCalendar returns the ID of the secondary calendar with the given
// summary, creating it when it does not exist yet.
func (g *GoogleCalendarSink) EnsureCalendar(name string) (string, error) {
	list, err := g.service.CalendarList.List().Do()
	if err != nil {
		return "", fmt.Errorf("failed to list calendars: %w", err)
	}
	for _, item := range list.Items {
		if item.Summary == name {
			printVerbosely(1, "Using existing calendar: %s\n", name)
			return item.Id, nil
		}
	}

	created, err := g.service.Calendars.Insert(&calendar.Calendar{Summary: name}).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create calendar: %w", err)
	}
	printVerbosely(1, "Created new calendar: %s\n", name)
	return created.Id, nil
}

func (g *GoogleCalendarSink) Find(calendarID, title string, date time.Time) (*SinkEvent, error) {
	// Window the query around the target date so the scan stays cheap.
	timeMin := date.AddDate(0, 0, -1)
	timeMax := date.AddDate(0, 0, 2)

	events, err := g.service.Events.List(calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	for _, item := range events.Items {
		if item.Summary != title {
			continue
		}
		ev := sinkEventFromGoogle(item)
		if sameDate(ev.Start, date) {
			return ev, nil
		}
	}
	return nil, nil
}

func (g *GoogleCalendarSink) Create(calendarID string, desc EventDescriptor) (string, error) {
	created, err := g.service.Events.Insert(calendarID, googleEventFromDescriptor(desc)).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create event: %w", err)
	}
	return created.Id, nil
}

func (g *GoogleCalendarSink) Update(calendarID, eventID string, desc EventDescriptor) error {
	_, err := g.service.Events.Update(calendarID, eventID, googleEventFromDescriptor(desc)).Do()
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

func (g *GoogleCalendarSink) Clear(calendarID string) error {
	// Collect all IDs first: deleting while paging invalidates the cursor
	// and can skip events.
	var ids []string
	pageToken := ""
	for {
		call := g.service.Events.List(calendarID).SingleEvents(false)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		events, err := call.Do()
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}
		for _, item := range events.Items {
			ids = append(ids, item.Id)
		}
		pageToken = events.NextPageToken
		if pageToken == "" {
			break
		}
	}

	deleted := 0
	for _, id := range ids {
		if err := g.service.Events.Delete(calendarID, id).Do(); err != nil {
			// Item may have been deleted already; keep going.
			printVerbosely(2, "Could not delete event %s: %v\n", id, err)
			continue
		}
		deleted++
	}
	fmt.Printf("Cleared %d events from calendar\n", deleted)
	return nil
}

func googleEventFromDescriptor(desc EventDescriptor) *calendar.Event {
	event := &calendar.Event{
		Summary:      desc.Title,
		Description:  desc.Body,
		Status:       "confirmed",
		Transparency: "transparent",
	}
	if desc.AllDay {
		event.Start = &calendar.EventDateTime{Date: desc.Start.Format("2006-01-02")}
		event.End = &calendar.EventDateTime{Date: desc.End.Format("2006-01-02")}
	} else {
		event.Start = &calendar.EventDateTime{DateTime: desc.Start.Format(time.RFC3339)}
		event.End = &calendar.EventDateTime{DateTime: desc.End.Format(time.RFC3339)}
	}
	return event
}

func sinkEventFromGoogle(item *calendar.Event) *SinkEvent {
	ev := &SinkEvent{
		ID:    item.Id,
		Title: item.Summary,
	}
	if item.Start != nil && item.Start.Date != "" {
		ev.AllDay = true
		ev.Start, _ = time.Parse("2006-01-02", item.Start.Date)
		if item.End != nil {
			ev.End, _ = time.Parse("2006-01-02", item.End.Date)
		}
	} else {
		if item.Start != nil {
			ev.Start, _ = time.Parse(time.RFC3339, item.Start.DateTime)
		}
		if item.End != nil {
			ev.End, _ = time.Parse(time.RFC3339, item.End.DateTime)
		}
	}
	return ev
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
