package timerange

import (
	"math/rand"
	"testing"
)

func TestParseField(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"5", 5, false},
		{"05", 5, false},
		{"005", 5, false},
		{"0", 0, false},
		{"23", 23, false},
		{"1a", 1, false}, // first digit run wins
		{"ab", 0, true},
		{"", 0, true},
		{"-", 0, true},
	}

	for _, c := range cases {
		got, err := ParseField(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseField(%q): expected error, got %d", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseField(%q): unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseField(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-10); got != 0 {
		t.Errorf("Clamp(-10) = %d, want 0", got)
	}
	if got := Clamp(1441); got != DayEnd {
		t.Errorf("Clamp(1441) = %d, want %d", got, DayEnd)
	}
	if got := Clamp(1440); got != 1440 {
		t.Errorf("Clamp(1440) = %d, want 1440 (24:00 is representable)", got)
	}
	if got := Clamp(720); got != 720 {
		t.Errorf("Clamp(720) = %d, want 720", got)
	}
}

func TestAdjustPreservesDurationOnStartMove(t *testing.T) {
	// 9:00-10:30 moved to start 11:00 keeps the 90 minute duration.
	from, to := Adjust(Minutes(9, 0), Minutes(11, 0), Minutes(10, 30))
	if from != Minutes(11, 0) || to != Minutes(12, 30) {
		t.Errorf("got %d-%d, want %d-%d", from, to, Minutes(11, 0), Minutes(12, 30))
	}
}

func TestAdjustEndOnlyEdit(t *testing.T) {
	// Editing only the end leaves the start alone (delta is zero).
	from, to := Adjust(Minutes(9, 0), Minutes(9, 0), Minutes(16, 0))
	if from != Minutes(9, 0) || to != Minutes(16, 0) {
		t.Errorf("got %d-%d, want 540-960", from, to)
	}

	// An end at or before the start is forced an hour past it.
	from, to = Adjust(Minutes(9, 0), Minutes(9, 0), Minutes(8, 0))
	if from != Minutes(9, 0) || to != Minutes(10, 0) {
		t.Errorf("got %d-%d, want 540-600", from, to)
	}
}

func TestAdjustDayBoundary(t *testing.T) {
	// Start dragged to exactly 24:00: the one case where the start itself
	// moves, to 23:00, keeping a 60 minute duration.
	from, to := Adjust(Minutes(9, 0), Minutes(24, 0), Minutes(10, 0))
	if from != Minutes(23, 0) || to != Minutes(24, 0) {
		t.Errorf("got %d-%d, want 1380-1440", from, to)
	}

	// Close to the boundary but not at it: end clamps to 24:00.
	from, to = Adjust(Minutes(9, 0), Minutes(23, 30), Minutes(10, 0))
	if from != Minutes(23, 30) || to != Minutes(24, 0) {
		t.Errorf("got %d-%d, want 1410-1440", from, to)
	}
}

func TestAdjustRandomizedInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 10000; i++ {
		oldFrom := rng.Intn(DayEnd) // [0, 1439]
		duration := 1 + rng.Intn(DayEnd-oldFrom)
		to := oldFrom + duration
		delta := rng.Intn(DayEnd+1) - oldFrom // newFrom stays in [0, DayEnd]
		newFrom := oldFrom + delta

		gotFrom, gotTo := Adjust(oldFrom, newFrom, to)

		if gotFrom < 0 || gotFrom > DayEnd || gotTo < 0 || gotTo > DayEnd {
			t.Fatalf("out of range: Adjust(%d, %d, %d) = %d, %d",
				oldFrom, newFrom, to, gotFrom, gotTo)
		}
		if gotTo <= gotFrom {
			t.Fatalf("non-positive duration: Adjust(%d, %d, %d) = %d, %d",
				oldFrom, newFrom, to, gotFrom, gotTo)
		}

		// Away from the boundary the shift preserves duration exactly.
		if shifted := to + delta; shifted <= DayEnd && shifted > newFrom {
			if gotFrom != newFrom || gotTo != shifted {
				t.Fatalf("duration not preserved: Adjust(%d, %d, %d) = %d, %d, want %d, %d",
					oldFrom, newFrom, to, gotFrom, gotTo, newFrom, shifted)
			}
		}

		// The start only ever moves in the 24:00 pin case.
		if gotFrom != newFrom && !(newFrom == DayEnd && gotFrom == DayEnd-MinDuration) {
			t.Fatalf("start moved unexpectedly: Adjust(%d, %d, %d) = %d, %d",
				oldFrom, newFrom, to, gotFrom, gotTo)
		}
	}
}

func TestZeroPad(t *testing.T) {
	if got := ZeroPad(5); got != "05" {
		t.Errorf("ZeroPad(5) = %q, want \"05\"", got)
	}
	if got := ZeroPad(0); got != "00" {
		t.Errorf("ZeroPad(0) = %q, want \"00\"", got)
	}
	if got := ZeroPad(23); got != "23" {
		t.Errorf("ZeroPad(23) = %q, want \"23\"", got)
	}
}

func TestSplitRoundTrip(t *testing.T) {
	for m := 0; m <= DayEnd; m++ {
		h, min := Split(m)
		if Minutes(h, min) != m {
			t.Fatalf("Split/Minutes round trip failed at %d", m)
		}
	}
}
