package prayer

import (
	"testing"
	"time"
)

func TestComputeOrdering(t *testing.T) {
	calc := Calculator{}

	// a spread of latitudes and seasons; prayer instants must be strictly
	// increasing on each day
	cases := []struct {
		name     string
		lat, lon float64
		date     time.Time
	}{
		{"surabaya equinox", -7.2575, 112.7521, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)},
		{"jakarta mid year", -6.2088, 106.8456, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)},
		{"medan northern", 3.5952, 98.6722, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)},
		{"jayapura east", -2.5916, 140.6690, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			times, err := calc.Compute(tc.lat, tc.lon, tc.date)
			if err != nil {
				t.Fatalf("Compute: %v", err)
			}

			seq := []struct {
				name string
				at   time.Time
			}{
				{"fajr", times.Fajr},
				{"sunrise", times.Sunrise},
				{"dhuhr", times.Dhuhr},
				{"asr", times.Asr},
				{"maghrib", times.Maghrib},
				{"isha", times.Isha},
			}
			for i := 1; i < len(seq); i++ {
				if !seq[i-1].at.Before(seq[i].at) {
					t.Errorf("%s (%v) is not before %s (%v)", seq[i-1].name, seq[i-1].at, seq[i].name, seq[i].at)
				}
			}
		})
	}
}

func TestFormat(t *testing.T) {
	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	// fixed UTC instants so the formatted output is deterministic
	times := Times{
		Fajr:    time.Date(2026, 8, 31, 21, 30, 0, 0, time.UTC),
		Sunrise: time.Date(2026, 8, 31, 22, 45, 0, 0, time.UTC),
		Dhuhr:   time.Date(2026, 9, 1, 4, 45, 0, 0, time.UTC),
		Asr:     time.Date(2026, 9, 1, 8, 5, 0, 0, time.UTC),
		Maghrib: time.Date(2026, 9, 1, 10, 50, 0, 0, time.UTC),
		Isha:    time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}

	entry, err := Format("surabaya", times, base, "Asia/Jakarta")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}

	if entry.Date != "2026-09-01" {
		t.Errorf("Date = %q, want 2026-09-01", entry.Date)
	}
	// UTC+7 conversion
	if entry.Fajr != "04:30" {
		t.Errorf("Fajr = %q, want 04:30", entry.Fajr)
	}
	if entry.Dhuhr != "11:45" {
		t.Errorf("Dhuhr = %q, want 11:45", entry.Dhuhr)
	}
	if entry.Isha != "19:00" {
		t.Errorf("Isha = %q, want 19:00", entry.Isha)
	}
	if entry.City != "surabaya" {
		t.Errorf("City = %q, want surabaya", entry.City)
	}
}

func TestFormatRejectsUnknownTimezone(t *testing.T) {
	if _, err := Format("x", Times{}, time.Now(), "Mars/Olympus"); err == nil {
		t.Fatal("expected an error for an unknown timezone")
	}
}

func TestForMonthLength(t *testing.T) {
	calc := Calculator{}

	entries, err := calc.ForMonth(-7.2575, 112.7521, 2026, time.February, "Asia/Jakarta")
	if err != nil {
		t.Fatalf("ForMonth: %v", err)
	}
	if len(entries) != 28 {
		t.Errorf("February 2026 has %d entries, want 28", len(entries))
	}
	if entries[0].Date != "2026-02-01" {
		t.Errorf("first date = %q, want 2026-02-01", entries[0].Date)
	}
	if entries[27].Date != "2026-02-28" {
		t.Errorf("last date = %q, want 2026-02-28", entries[27].Date)
	}
}
