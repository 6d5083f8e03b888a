package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SinkEvent is an entry already present in a live calendar, as returned by
// Find. ID is the sink's handle for updates.
type SinkEvent struct {
	ID     string
	Title  string
	Start  time.Time
	End    time.Time
	AllDay bool
}

// CalendarSink is the capability surface the converter needs from a live
// calendar. The core never touches provider SDK objects directly.
type CalendarSink interface {
	// EnsureCalendar resolves (creating if supported) the target calendar
	// and returns the identifier the other methods expect.
	EnsureCalendar(name string) (string, error)
	// Find returns the event with the given title on the given calendar
	// date, or nil when there is none.
	Find(calendarID, title string, date time.Time) (*SinkEvent, error)
	Create(calendarID string, desc EventDescriptor) (string, error)
	Update(calendarID, eventID string, desc EventDescriptor) error
	// Clear deletes every event in the calendar.
	Clear(calendarID string) error
}

// SinkOptions selects and parameterizes the live sink backend.
type SinkOptions struct {
	Provider     string // "google" or "caldav"
	AccountName  string // token-cache key for Google
	CalDAVServer string // key into config.CalDAVs
	CalendarURL  string // CalDAV collection URL
}

// newCalendarSink wires up the requested backend: Google through the
// sqlite-cached OAuth client, CalDAV through the named server entry from
// the config file.
func newCalendarSink(ctx context.Context, config *Config, db *sql.DB, opts SinkOptions) (CalendarSink, error) {
	switch opts.Provider {
	case "google":
		if opts.AccountName == "" {
			return nil, fmt.Errorf("google provider requires -account")
		}
		client, err := getClient(ctx, config, db, opts.AccountName)
		if err != nil {
			return nil, fmt.Errorf("error authorizing account %s: %w", opts.AccountName, err)
		}
		return NewGoogleCalendarSink(ctx, client)

	case "caldav":
		serverConfig, ok := config.CalDAVs[opts.CalDAVServer]
		if !ok {
			return nil, fmt.Errorf("CalDAV server '%s' not found in configuration", opts.CalDAVServer)
		}
		if opts.CalendarURL == "" {
			return nil, fmt.Errorf("caldav provider requires -caldav-calendar")
		}
		return NewCalDAVSink(ctx, serverConfig.ServerURL, serverConfig.Username, serverConfig.Password, opts.CalendarURL)

	default:
		return nil, fmt.Errorf("unsupported provider type: %s (must be 'google' or 'caldav')", opts.Provider)
	}
}
