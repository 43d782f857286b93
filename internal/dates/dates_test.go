package dates

import (
	"testing"
	"time"
)

func TestKeyParseKeyRoundTrip(t *testing.T) {
	tests := []string{
		"2026-01-01",
		"2026-08-28",
		"2024-02-29",
		"1999-12-31",
	}

	for _, key := range tests {
		t.Run(key, func(t *testing.T) {
			parsed, err := ParseKey(key, time.UTC)
			if err != nil {
				t.Fatalf("ParseKey(%q) failed: %v", key, err)
			}
			if got := Key(parsed); got != key {
				t.Errorf("Key(ParseKey(%q)) = %q, want %q", key, got, key)
			}
			if parsed.Hour() != 0 || parsed.Minute() != 0 {
				t.Errorf("ParseKey(%q) = %v, want midnight", key, parsed)
			}
		})
	}
}

func TestParseKeyInvalid(t *testing.T) {
	for _, key := range []string{"", "2026-13-01", "2026-1-1", "01/02/2026", "not-a-date"} {
		if _, err := ParseKey(key, time.UTC); err == nil {
			t.Errorf("ParseKey(%q) should fail", key)
		}
	}
}

func TestIsValidKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"2026-08-28", true},
		{"2024-02-29", true},
		{"2023-02-29", false},
		{"2026-8-28", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidKey(tt.key); got != tt.want {
			t.Errorf("IsValidKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestWeekdayName(t *testing.T) {
	// 2026-08-24 is a Monday
	day := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	want := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	for i, name := range want {
		if got := WeekdayName(day.AddDate(0, 0, i)); got != name {
			t.Errorf("WeekdayName(+%d) = %q, want %q", i, got, name)
		}
	}
}

func TestStartOfWeek(t *testing.T) {
	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		day := monday.AddDate(0, 0, i).Add(15 * time.Hour)
		got := StartOfWeek(day)
		if !got.Equal(monday) {
			t.Errorf("StartOfWeek(%s) = %s, want %s", Key(day), got, monday)
		}
	}

	// Sunday belongs to the week that started six days earlier
	sunday := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	if got := StartOfWeek(sunday); Key(got) != "2026-08-17" {
		t.Errorf("StartOfWeek(Sunday) = %s, want 2026-08-17", Key(got))
	}
}

func TestMidnight(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	at := time.Date(2026, 8, 28, 18, 45, 12, 999, loc)
	got := Midnight(at)
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Errorf("Midnight(%v) = %v, not midnight", at, got)
	}
	if got.Location() != loc {
		t.Errorf("Midnight changed location to %v", got.Location())
	}
	if Key(got) != "2026-08-28" {
		t.Errorf("Midnight changed the calendar day to %s", Key(got))
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"same day", "2026-08-28", "2026-08-28", 0},
		{"one day", "2026-08-27", "2026-08-28", 1},
		{"one week", "2026-08-21", "2026-08-28", 7},
		{"negative", "2026-08-28", "2026-08-21", -7},
		{"across month", "2026-07-31", "2026-08-02", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := ParseKey(tt.a, time.UTC)
			b, _ := ParseKey(tt.b, time.UTC)
			if got := DaysBetween(a, b); got != tt.want {
				t.Errorf("DaysBetween(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDaysBetweenAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	// The US spring-forward transition in 2026 is March 8
	before := time.Date(2026, 3, 7, 12, 0, 0, 0, loc)
	after := time.Date(2026, 3, 9, 12, 0, 0, 0, loc)
	if got := DaysBetween(before, after); got != 2 {
		t.Errorf("DaysBetween across DST = %d, want 2", got)
	}
}

func TestParseTimeToMinutes(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"9:00", 540, false}, // hour is not fixed width in time.Parse
		{"nope", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseTimeToMinutes(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseTimeToMinutes(%q) should fail", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeToMinutes(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTimeToMinutes(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestValidateTimezone(t *testing.T) {
	tests := []struct {
		tz   string
		want bool
	}{
		{"", true},
		{"Local", true},
		{"UTC", true},
		{"America/New_York", true},
		{"Mars/Olympus_Mons", false},
	}

	for _, tt := range tests {
		if got := ValidateTimezone(tt.tz); got != tt.want {
			t.Errorf("ValidateTimezone(%q) = %v, want %v", tt.tz, got, tt.want)
		}
	}
}

func TestTodayKeyInvalidTimezone(t *testing.T) {
	if _, err := TodayKey("Not/AZone"); err == nil {
		t.Error("TodayKey with invalid timezone should fail")
	}
}
