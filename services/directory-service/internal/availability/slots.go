package availability

import "time"

// Provider yields candidate appointment start instants for a booking
// window. WeekdaySchedule is the only implementation today; a real
// calendar integration can replace it without touching the handlers.
type Provider interface {
	CandidateSlots(now time.Time) []time.Time
}

// WeekdaySchedule enumerates fixed-step slots on consecutive business
// days (Mon-Fri per the local calendar, holidays ignored).
type WeekdaySchedule struct {
	BusinessDays int           // business days that count toward the window
	SlotsPerDay  int
	OpeningHour  int           // local clock hour of the first slot
	Step         time.Duration
}

func DefaultSchedule() WeekdaySchedule {
	return WeekdaySchedule{
		BusinessDays: 5,
		SlotsPerDay:  15,
		OpeningHour:  9,
		Step:         30 * time.Minute,
	}
}

// CandidateSlots walks forward from now's calendar day, skipping Saturday
// and Sunday, and emits each business day's slots in ascending order.
// Only slots strictly after now are kept, so the current day may
// contribute fewer than SlotsPerDay. A business day counts toward the
// window even when every one of its slots is already in the past (a late
// "now" on the first day); weekend days never count.
func (s WeekdaySchedule) CandidateSlots(now time.Time) []time.Time {
	if s.BusinessDays <= 0 || s.SlotsPerDay <= 0 || s.Step <= 0 {
		return nil
	}

	var slots []time.Time
	day := now
	for counted := 0; counted < s.BusinessDays; day = day.AddDate(0, 0, 1) {
		wd := day.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			continue
		}
		opening := time.Date(day.Year(), day.Month(), day.Day(), s.OpeningHour, 0, 0, 0, day.Location())
		for i := 0; i < s.SlotsPerDay; i++ {
			slot := opening.Add(time.Duration(i) * s.Step)
			if slot.After(now) {
				slots = append(slots, slot)
			}
		}
		counted++
	}
	return slots
}

// Subtract returns the candidates whose instant is not present in booked,
// preserving candidate order. Instants compare at millisecond precision.
func Subtract(candidates, booked []time.Time) []time.Time {
	if len(booked) == 0 {
		return candidates
	}
	taken := make(map[int64]struct{}, len(booked))
	for _, b := range booked {
		taken[b.UnixMilli()] = struct{}{}
	}
	free := make([]time.Time, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := taken[c.UnixMilli()]; ok {
			continue
		}
		free = append(free, c)
	}
	return free
}
