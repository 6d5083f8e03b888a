package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"
)

func main() {
	output := flag.String("output", "timeoff_calendar.ics", "output .ics file path")
	live := flag.Bool("live", false, "push events into a live calendar instead of writing a file")
	provider := flag.String("provider", "google", "live calendar provider: google or caldav")
	account := flag.String("account", "", "account name keying the Google token cache")
	caldavServer := flag.String("caldav-server", "", "CalDAV server name from the config file")
	caldavCalendar := flag.String("caldav-calendar", "", "CalDAV calendar collection URL")
	clear := flag.Bool("clear", false, "clear the target calendar before importing (live mode only)")
	verbose := flag.Bool("verbose", false, "include the reason code in event titles")
	descriptions := flag.Bool("descriptions", false, "include detailed event bodies in live mode (file output always has them)")
	rangeStart := flag.String("range-start", "", "only import events starting on or after this date (MM-DD-YYYY)")
	rangeEnd := flag.String("range-end", "", "only import events starting on or before this date (MM-DD-YYYY)")
	baseName := flag.String("name", "Employee Time Off", "base name for the calendar")
	flag.Parse()

	excelFile := flag.Arg(0)
	if excelFile == "" {
		excelFile = "timeoff.xlsx"
	}

	config, err := readConfig(".timeoffcal.toml")
	if err != nil {
		if *live {
			log.Fatalf("Error reading config file: %v", err)
		}
		// File output needs no credentials; run on defaults.
		config = &Config{UTCOffsetHours: 6, WorkHours: 8}
	}

	var dateRange *DateRange
	if *rangeStart != "" || *rangeEnd != "" {
		if *rangeStart == "" || *rangeEnd == "" {
			log.Fatalf("Error: -range-start and -range-end must be given together")
		}
		dateRange, err = parseDateRange(*rangeStart, *rangeEnd)
		if err != nil {
			log.Fatalf("Invalid date range: %v\nPlease use format: MM-DD-YYYY", err)
		}
		fmt.Printf("Filtering events from %s to %s\n\n",
			dateRange.Start.Format("01/02/2006"), dateRange.End.Format("01/02/2006"))
	}

	allRecords, err := loadTimeOffRecords(excelFile)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	approved := filterRecords(allRecords, dateRange)
	skipped := len(allRecords) - len(approved)

	earliest, latest := recordSpan(approved)
	calName := calendarName(*baseName, earliest, latest)
	fmt.Printf("Calendar will be named: %s\n", calName)

	eventCfg := EventConfig{
		VerboseTitles:       *verbose,
		IncludeDescriptions: *descriptions,
		WorkHours:           config.WorkHours,
	}

	if !*live {
		if *clear {
			fmt.Println("Warning: -clear only works in live mode")
		}
		eventCfg.IncludeDescriptions = true

		descriptors := expandForFile(approved, eventCfg)
		if err := writeCalendarFile(*output, calName, descriptors); err != nil {
			log.Fatalf("Error writing calendar file: %v", err)
		}

		abs, _ := filepath.Abs(*output)
		fmt.Printf("\nComplete!\n")
		fmt.Printf("  Events created: %d\n", len(descriptors))
		fmt.Printf("  Rows skipped (not approved/invalid): %d\n", skipped)
		fmt.Printf("\nCalendar saved to: %s\n", abs)
		fmt.Println("Import it into your calendar application, or double-click the file.")
		return
	}

	if *output != "timeoff_calendar.ics" {
		fmt.Println("Warning: -output is ignored in live mode")
	}

	opts := SinkOptions{
		Provider:     *provider,
		AccountName:  *account,
		CalDAVServer: *caldavServer,
		CalendarURL:  *caldavCalendar,
	}

	counts, err := importToLiveCalendar(context.Background(), config, opts, approved, calName, *clear, eventCfg)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	fmt.Printf("\nComplete!\n")
	fmt.Printf("  Events created: %d\n", counts.Created)
	fmt.Printf("  Rows skipped (not approved/invalid): %d\n", skipped)
	if counts.Duplicates > 0 {
		fmt.Printf("  Duplicates skipped: %d\n", counts.Duplicates)
	}
	if counts.Updated > 0 {
		fmt.Printf("  Events updated: %d\n", counts.Updated)
	}
	if counts.Failures > 0 {
		fmt.Printf("  Events failed: %d\n", counts.Failures)
	}
	fmt.Printf("\nCalendar %q has been created/updated.\n", calName)
}
