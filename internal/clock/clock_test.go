package clock

import (
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/charmed/internal/shared"
)

func TestHHMM(t *testing.T) {
	tc := []struct {
		name string
		time time.Time
		want string
	}{
		{
			name: "morning zero padded",
			time: time.Date(2025, 3, 3, 8, 5, 42, 0, time.Local),
			want: "08:05",
		},
		{
			name: "midnight",
			time: time.Date(2025, 3, 3, 0, 0, 0, 0, time.Local),
			want: "00:00",
		},
		{
			name: "evening",
			time: time.Date(2025, 3, 3, 23, 59, 59, 0, time.Local),
			want: "23:59",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := HHMM(tt.time); got != tt.want {
				t.Errorf("HHMM() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseHHMM(t *testing.T) {
	t.Run("valid times", func(t *testing.T) {
		tc := []struct {
			input  string
			hour   int
			minute int
		}{
			{"00:00", 0, 0},
			{"08:30", 8, 30},
			{"23:59", 23, 59},
		}

		for _, tt := range tc {
			hour, minute, err := ParseHHMM(tt.input)
			if err != nil {
				t.Errorf("ParseHHMM(%q) unexpected error: %v", tt.input, err)
				continue
			}
			if hour != tt.hour || minute != tt.minute {
				t.Errorf("ParseHHMM(%q) = %d:%d, want %d:%d", tt.input, hour, minute, tt.hour, tt.minute)
			}
		}
	})

	t.Run("invalid times", func(t *testing.T) {
		for _, input := range []string{"", "8:05", "24:00", "12:60", "ab:cd", "12-30", "12:345", "12:3"} {
			_, _, err := ParseHHMM(input)
			if err == nil {
				t.Errorf("ParseHHMM(%q) expected error", input)
				continue
			}
			if !errors.Is(err, shared.ErrInvalidTimeFormat) {
				t.Errorf("ParseHHMM(%q) expected ErrInvalidTimeFormat, got %v", input, err)
			}
		}
	})
}

func TestSecondsUntil(t *testing.T) {
	now := time.Date(2025, 3, 3, 8, 0, 30, 0, time.Local) // Monday 08:00:30

	t.Run("later today", func(t *testing.T) {
		got, err := SecondsUntil("09:30", now)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got != 90*60 {
			t.Errorf("expected %d seconds, got %d", 90*60, got)
		}
	})

	t.Run("already passed rolls to tomorrow", func(t *testing.T) {
		got, err := SecondsUntil("07:00", now)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got != 23*3600 {
			t.Errorf("expected %d seconds, got %d", 23*3600, got)
		}
	})

	t.Run("current minute is due now", func(t *testing.T) {
		got, err := SecondsUntil("08:00", now)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got < 0 || got > 59 {
			t.Errorf("expected result in [0,59], got %d", got)
		}
	})

	t.Run("never negative", func(t *testing.T) {
		for _, timeStr := range []string{"00:00", "07:59", "08:00", "08:01", "23:59"} {
			got, err := SecondsUntil(timeStr, now)
			if err != nil {
				t.Fatalf("SecondsUntil(%q) unexpected error: %v", timeStr, err)
			}
			if got < 0 {
				t.Errorf("SecondsUntil(%q) = %d, want non-negative", timeStr, got)
			}
		}
	})

	t.Run("invalid time format", func(t *testing.T) {
		_, err := SecondsUntil("25:00", now)
		if !errors.Is(err, shared.ErrInvalidTimeFormat) {
			t.Errorf("expected ErrInvalidTimeFormat, got %v", err)
		}
	})
}

func TestFormatDuration(t *testing.T) {
	tc := []struct {
		seconds int
		want    string
	}{
		{1, "1 seconde"},
		{30, "30 secondes"},
		{59, "59 secondes"},
		{60, "1 minute"},
		{90, "1 minute"},
		{180, "3 minutes"},
		{3599, "59 minutes"},
		{3600, "1 heure"},
		{3661, "1h 1m"},
		{7200, "2 heures"},
		{7260, "2h 1m"},
	}

	for _, tt := range tc {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatDuration(tt.seconds); got != tt.want {
				t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestWeekday(t *testing.T) {
	t.Run("labels round trip", func(t *testing.T) {
		for _, day := range Weekdays() {
			parsed, ok := ParseWeekday(day.String())
			if !ok {
				t.Errorf("label %q should parse", day.String())
				continue
			}
			if parsed != day {
				t.Errorf("round trip mismatch: %v != %v", parsed, day)
			}
		}
	})

	t.Run("unrecognized label", func(t *testing.T) {
		if _, ok := ParseWeekday("Lundi"); ok {
			t.Error("expected unrecognized label to fail")
		}
	})

	t.Run("WeekdayOf", func(t *testing.T) {
		// 2025-03-03 is a Monday
		monday := time.Date(2025, 3, 3, 12, 0, 0, 0, time.Local)
		if got := WeekdayOf(monday); got != Monday {
			t.Errorf("expected Monday, got %v", got)
		}

		sunday := monday.AddDate(0, 0, 6)
		if got := WeekdayOf(sunday); got != Sunday {
			t.Errorf("expected Sunday, got %v", got)
		}
	})

	t.Run("JSON boundary", func(t *testing.T) {
		data, err := Saturday.MarshalJSON()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if string(data) != `"Saturday"` {
			t.Errorf("expected quoted label, got %s", data)
		}

		var day Weekday
		if err := day.UnmarshalJSON([]byte(`"Friday"`)); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if day != Friday {
			t.Errorf("expected Friday, got %v", day)
		}

		if err := day.UnmarshalJSON([]byte(`"Yesterday"`)); err == nil {
			t.Error("expected error for unknown label")
		}
	})
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2025, 3, 3, 8, 0, 0, 0, time.Local)
	var c Clock = FixedClock{Time: at}
	if !c.Now().Equal(at) {
		t.Error("expected fixed clock to return configured time")
	}
}
