package main

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	statusApproved = "Approved"
	hoursIndicator = "HOURS"
	eventCategory  = "Time Off"

	// Same-day events with matching titles are treated as identical when
	// both bounds land within this tolerance.
	duplicateTolerance = 60 * time.Second
)

type Config struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`

	// UTCOffsetHours is subtracted from timed events before they are handed
	// to a live sink, compensating for the sink storing wall-clock times in
	// a different zone. A fixed offset: daylight-saving transitions are not
	// observed.
	UTCOffsetHours int `toml:"utc_offset_hours"`

	// WorkHours is the span given to each day of a multi-day request that
	// carries a start time.
	WorkHours int `toml:"work_hours"`

	VerbosityLevel int                     `toml:"verbosity_level"`
	CalDAVs        map[string]CalDAVConfig `toml:"caldavs"`
}

type CalDAVConfig struct {
	Name      string `toml:"name"`
	ServerURL string `toml:"server_url"`
	Username  string `toml:"username"`
	Password  string `toml:"password"`
}

var verbosityLevel int
var configDir string

func readConfig(filename string) (*Config, error) {
	// Try first current dir, then `$HOME/.config/timeoffcal/`
	data, err := os.ReadFile(filename)
	if err != nil {
		data, err = os.ReadFile(os.Getenv("HOME") + "/.config/timeoffcal/" + filename)
		if err != nil {
			return nil, err
		}
		configDir = os.Getenv("HOME") + "/.config/timeoffcal/"
	}

	config := Config{
		UTCOffsetHours: 6,
		WorkHours:      8,
	}
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	if config.WorkHours <= 0 {
		config.WorkHours = 8
	}

	verbosityLevel = config.VerbosityLevel

	return &config, nil
}

func printVerbosely(verbosity int, format string, a ...interface{}) {
	// Print only if verbosity is higher than verbosityLevel
	// verbosityLevel is set in the config file
	// 0 - summary and critical messages only
	// 1 - per-record progress
	// 2 - per-event created/updated/skipped reports
	// 3 - report everything
	if verbosity <= verbosityLevel {
		fmt.Printf(format, a...)
	}
}
