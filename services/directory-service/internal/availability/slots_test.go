package availability

import (
	"testing"
	"time"
)

// Mon 2026-01-05 00:00 UTC, well before opening.
var monMidnight = time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

func TestCandidateSlotsFullWeek(t *testing.T) {
	s := DefaultSchedule()
	slots := s.CandidateSlots(monMidnight)

	if len(slots) != 75 {
		t.Fatalf("expected 75 slots, got %d", len(slots))
	}

	days := map[string]int{}
	for i, slot := range slots {
		if wd := slot.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Fatalf("slot %d falls on a weekend: %v", i, slot)
		}
		if m := slot.Minute(); m != 0 && m != 30 {
			t.Fatalf("slot %d not on a half-hour boundary: %v", i, slot)
		}
		if h := slot.Hour(); h < 9 || h > 16 {
			t.Fatalf("slot %d outside business hours: %v", i, slot)
		}
		if i > 0 && !slots[i].After(slots[i-1]) {
			t.Fatalf("slots out of order at %d: %v then %v", i, slots[i-1], slots[i])
		}
		days[slot.Format("2006-01-02")]++
	}

	if len(days) != 5 {
		t.Fatalf("expected 5 distinct days, got %d", len(days))
	}
	for day, n := range days {
		if n != 15 {
			t.Fatalf("day %s has %d slots, want 15", day, n)
		}
	}

	first := slots[0]
	if first.Hour() != 9 || first.Minute() != 0 {
		t.Fatalf("first slot should be 09:00, got %v", first)
	}
}

func TestCandidateSlotsMidMorning(t *testing.T) {
	// 10:15 on Monday: 09:00, 09:30 and 10:00 are gone.
	now := time.Date(2026, time.January, 5, 10, 15, 0, 0, time.UTC)
	slots := DefaultSchedule().CandidateSlots(now)

	if len(slots) != 72 {
		t.Fatalf("expected 72 slots, got %d", len(slots))
	}
	if !slots[0].Equal(time.Date(2026, time.January, 5, 10, 30, 0, 0, time.UTC)) {
		t.Fatalf("first slot should be 10:30, got %v", slots[0])
	}
	for _, slot := range slots {
		if !slot.After(now) {
			t.Fatalf("slot %v not after now %v", slot, now)
		}
	}
}

func TestCandidateSlotsLateDayStillCounts(t *testing.T) {
	// 20:00 on Monday: Monday contributes nothing but still uses up one of
	// the five business days, so the window ends Friday, not the following
	// Monday.
	now := time.Date(2026, time.January, 5, 20, 0, 0, 0, time.UTC)
	slots := DefaultSchedule().CandidateSlots(now)

	if len(slots) != 60 {
		t.Fatalf("expected 60 slots, got %d", len(slots))
	}
	if got := slots[0].Day(); got != 6 {
		t.Fatalf("first slot should be on Tuesday the 6th, got day %d", got)
	}
	if got := slots[len(slots)-1].Day(); got != 9 {
		t.Fatalf("last slot should be on Friday the 9th, got day %d", got)
	}
}

func TestCandidateSlotsSkipsWeekend(t *testing.T) {
	// Friday morning: window is Fri + Mon-Thu, never Sat/Sun.
	now := time.Date(2026, time.January, 9, 8, 0, 0, 0, time.UTC)
	slots := DefaultSchedule().CandidateSlots(now)

	if len(slots) != 75 {
		t.Fatalf("expected 75 slots, got %d", len(slots))
	}
	wantDays := map[int]bool{9: true, 12: true, 13: true, 14: true, 15: true}
	for _, slot := range slots {
		if !wantDays[slot.Day()] {
			t.Fatalf("unexpected slot day %d (%v)", slot.Day(), slot)
		}
	}
}

func TestCandidateSlotsSaturdayStart(t *testing.T) {
	// Saturday: the weekend contributes nothing and does not consume
	// business days, so all five days next week are full.
	now := time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC)
	slots := DefaultSchedule().CandidateSlots(now)

	if len(slots) != 75 {
		t.Fatalf("expected 75 slots, got %d", len(slots))
	}
	if got := slots[0].Day(); got != 12 {
		t.Fatalf("first slot should be Monday the 12th, got day %d", got)
	}
}

func TestCandidateSlotsDeterministic(t *testing.T) {
	a := DefaultSchedule().CandidateSlots(monMidnight)
	b := DefaultSchedule().CandidateSlots(monMidnight)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			t.Fatalf("slot %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestSubtract(t *testing.T) {
	candidates := DefaultSchedule().CandidateSlots(monMidnight)
	booked := []time.Time{candidates[0], candidates[10]}

	free := Subtract(candidates, booked)
	if len(free) != len(candidates)-2 {
		t.Fatalf("expected %d free slots, got %d", len(candidates)-2, len(free))
	}
	for _, b := range booked {
		for _, f := range free {
			if f.Equal(b) {
				t.Fatalf("booked slot %v still present", b)
			}
		}
	}
}

func TestSubtractNoBookings(t *testing.T) {
	candidates := DefaultSchedule().CandidateSlots(monMidnight)
	free := Subtract(candidates, nil)
	if len(free) != len(candidates) {
		t.Fatalf("expected all %d candidates, got %d", len(candidates), len(free))
	}
}

func TestSubtractDifferentLocationSameInstant(t *testing.T) {
	candidates := DefaultSchedule().CandidateSlots(monMidnight)
	inOtherZone := candidates[3].In(time.FixedZone("X", 3*3600))

	free := Subtract(candidates, []time.Time{inOtherZone})
	if len(free) != len(candidates)-1 {
		t.Fatalf("same instant in another zone should match, got %d of %d", len(free), len(candidates))
	}
}
