package main

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDateFormats(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"03/10/2026", date(2026, 3, 10)},
		{"2026-03-10", date(2026, 3, 10)},
		{"03-10-2026", date(2026, 3, 10)},
		{"25/12/2026", date(2026, 12, 25)}, // only valid as DD/MM
	}

	for _, tt := range tests {
		got := parseDate(tt.input)
		if !got.Equal(tt.want) {
			t.Errorf("parseDate(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseDateAmbiguityPrefersMonthFirst(t *testing.T) {
	// 03/04/2026 is valid under both MM/DD and DD/MM; the first layout in
	// the list wins, so this must read as March 4th.
	got := parseDate("03/04/2026")
	want := date(2026, 3, 4)
	if !got.Equal(want) {
		t.Errorf("parseDate(\"03/04/2026\") = %v, want %v", got, want)
	}
}

func TestParseDateFailures(t *testing.T) {
	for _, input := range []string{"", "not a date", "13/45/2026", "03.10.2026"} {
		if got := parseDate(input); !got.IsZero() {
			t.Errorf("parseDate(%q) = %v, want zero time", input, got)
		}
	}
}

func TestParseDateIdempotent(t *testing.T) {
	first := parseDate("03/10/2026")
	again := parseDate(first.Format("01/02/2006"))
	if !first.Equal(again) {
		t.Errorf("re-parsing formatted date: got %v, want %v", again, first)
	}
}

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"09:00 AM", 9 * time.Hour},
		{"1:30 PM", 13*time.Hour + 30*time.Minute},
		{"14:45", 14*time.Hour + 45*time.Minute},
		{"08:15:30", 8*time.Hour + 15*time.Minute + 30*time.Second},
		{"9:05:00 PM", 21*time.Hour + 5*time.Minute},
	}

	for _, tt := range tests {
		got, ok := parseClockTime(tt.input)
		if !ok {
			t.Errorf("parseClockTime(%q) not ok", tt.input)
			continue
		}
		if got != tt.want {
			t.Errorf("parseClockTime(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseClockTimeAbsent(t *testing.T) {
	for _, input := range []string{"", "  ", "noon", "25:00 PM"} {
		if _, ok := parseClockTime(input); ok {
			t.Errorf("parseClockTime(%q) ok, want absent", input)
		}
	}
}

func TestNormalizeRecordDefaults(t *testing.T) {
	rec := normalizeRecord(map[string]string{}, 7)

	if rec.Name != "Unknown" {
		t.Errorf("Name = %q, want Unknown", rec.Name)
	}
	if rec.Reason != "Time Off" {
		t.Errorf("Reason = %q, want Time Off", rec.Reason)
	}
	if rec.Policy != "" {
		t.Errorf("Policy = %q, want empty", rec.Policy)
	}
	if rec.Duration != 1 {
		t.Errorf("Duration = %v, want 1", rec.Duration)
	}
	if rec.Unit != UnitDays {
		t.Errorf("Unit = %v, want UnitDays", rec.Unit)
	}
	if rec.IsValid() {
		t.Error("record with no date should be invalid")
	}
	if rec.HasStartTime {
		t.Error("record with no start time should be all-day")
	}
	if rec.RowIndex != 7 {
		t.Errorf("RowIndex = %d, want 7", rec.RowIndex)
	}
}

func TestNormalizeDuration(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"", 1},
		{"abc", 1},
		{"0", 1},
		{"-3", 1},
		{"2", 2},
		{"4.5", 4.5},
		{" 16 ", 16},
	}

	for _, tt := range tests {
		if got := parseDuration(tt.raw); got != tt.want {
			t.Errorf("parseDuration(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeUnit(t *testing.T) {
	tests := []struct {
		raw  string
		want DurationUnit
	}{
		{"HOURS", UnitHours},
		{" hours ", UnitHours},
		{"Hours", UnitHours},
		{"DAYS", UnitDays},
		{"", UnitDays},
		{"weeks", UnitDays},
	}

	for _, tt := range tests {
		rec := normalizeRecord(map[string]string{columnDaysHours: tt.raw}, 0)
		if rec.Unit != tt.want {
			t.Errorf("unit for %q = %v, want %v", tt.raw, rec.Unit, tt.want)
		}
	}
}

func TestIsApprovedCaseSensitive(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{"Approved", true},
		{" Approved ", true}, // trimmed at construction
		{"approved", false},
		{"APPROVED", false},
		{"Pending", false},
		{"", false},
	}

	for _, tt := range tests {
		rec := normalizeRecord(map[string]string{columnStatus: tt.status}, 0)
		if rec.IsApproved() != tt.want {
			t.Errorf("IsApproved for status %q = %v, want %v", tt.status, rec.IsApproved(), tt.want)
		}
	}
}

func TestIsPartialDay(t *testing.T) {
	tests := []struct {
		duration float64
		unit     DurationUnit
		want     bool
	}{
		{4, UnitHours, true},
		{23.5, UnitHours, true},
		{24, UnitHours, false},
		{30, UnitHours, false},
		{0.5, UnitDays, true},
		{1, UnitDays, false},
		{3, UnitDays, false},
	}

	for _, tt := range tests {
		rec := TimeOffRecord{Duration: tt.duration, Unit: tt.unit}
		if got := rec.IsPartialDay(); got != tt.want {
			t.Errorf("IsPartialDay(%v, unit=%v) = %v, want %v", tt.duration, tt.unit, got, tt.want)
		}
	}
}

func TestNumDays(t *testing.T) {
	tests := []struct {
		duration float64
		unit     DurationUnit
		want     int
	}{
		{1, UnitDays, 1},
		{3, UnitDays, 3},
		{2.7, UnitDays, 2},
		{0.5, UnitDays, 1},
		{4, UnitHours, 1},   // less than a day still occupies one
		{24, UnitHours, 1},
		{48, UnitHours, 2},
		{72, UnitHours, 3},
		{100, UnitHours, 4}, // floor(100/24)
		{0.5, UnitHours, 1},
	}

	for _, tt := range tests {
		rec := TimeOffRecord{Duration: tt.duration, Unit: tt.unit}
		if got := rec.NumDays(); got != tt.want {
			t.Errorf("NumDays(%v, unit=%v) = %d, want %d", tt.duration, tt.unit, got, tt.want)
		}
	}
}

func TestFilterRecords(t *testing.T) {
	records := []TimeOffRecord{
		{RowIndex: 0, Status: "Approved", StartDate: date(2026, 3, 10)},
		{RowIndex: 1, Status: "Pending", StartDate: date(2026, 3, 11)},
		{RowIndex: 2, Status: "Approved"}, // invalid date
		{RowIndex: 3, Status: "Approved", StartDate: date(2026, 4, 20)},
	}

	got := filterRecords(records, nil)
	if len(got) != 2 {
		t.Fatalf("filtered %d records, want 2", len(got))
	}
	if got[0].RowIndex != 0 || got[1].RowIndex != 3 {
		t.Errorf("kept rows %d and %d, want 0 and 3", got[0].RowIndex, got[1].RowIndex)
	}
}

func TestFilterRecordsRangeInclusive(t *testing.T) {
	dr := &DateRange{Start: date(2026, 3, 1), End: date(2026, 3, 31)}
	records := []TimeOffRecord{
		{RowIndex: 0, Status: "Approved", StartDate: date(2026, 2, 28)},
		{RowIndex: 1, Status: "Approved", StartDate: date(2026, 3, 1)},  // on start bound
		{RowIndex: 2, Status: "Approved", StartDate: date(2026, 3, 31)}, // on end bound
		{RowIndex: 3, Status: "Approved", StartDate: date(2026, 4, 1)},
	}

	got := filterRecords(records, dr)
	if len(got) != 2 {
		t.Fatalf("filtered %d records, want 2", len(got))
	}
	if got[0].RowIndex != 1 || got[1].RowIndex != 2 {
		t.Errorf("kept rows %d and %d, want 1 and 2", got[0].RowIndex, got[1].RowIndex)
	}
}

func TestParseDateRange(t *testing.T) {
	dr, err := parseDateRange("02-01-2026", "02-14-2026")
	if err != nil {
		t.Fatalf("parseDateRange error: %v", err)
	}
	if !dr.Start.Equal(date(2026, 2, 1)) || !dr.End.Equal(date(2026, 2, 14)) {
		t.Errorf("got range %v - %v", dr.Start, dr.End)
	}

	if _, err := parseDateRange("02-14-2026", "02-01-2026"); err == nil {
		t.Error("end before start should be an error")
	}
	if _, err := parseDateRange("2026-02-01", "2026-02-14"); err == nil {
		t.Error("wrong layout should be an error")
	}
}

func TestRecordSpanAndCalendarName(t *testing.T) {
	records := []TimeOffRecord{
		{Status: "Approved", StartDate: date(2026, 4, 20)},
		{Status: "Approved", StartDate: date(2026, 3, 10)},
		{Status: "Pending", StartDate: date(2026, 1, 1)}, // ignored
		{Status: "Approved"},                             // invalid, ignored
	}

	earliest, latest := recordSpan(records)
	if !earliest.Equal(date(2026, 3, 10)) || !latest.Equal(date(2026, 4, 20)) {
		t.Errorf("span = %v - %v", earliest, latest)
	}

	name := calendarName("Employee Time Off", earliest, latest)
	want := "Employee Time Off: Mar 2026 - Apr 2026"
	if name != want {
		t.Errorf("calendarName = %q, want %q", name, want)
	}

	if got := calendarName("Employee Time Off", time.Time{}, time.Time{}); got != "Employee Time Off" {
		t.Errorf("empty span name = %q, want bare base name", got)
	}
}
