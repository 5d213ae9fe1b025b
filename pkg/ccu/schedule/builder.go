package schedule

// NewSimpleSchedule builds a profile with a single heating window per
// target day: lowering until heatStart, comfort until heatEnd, lowering
// for the rest of the day. Non-target days collapse to "always lowering";
// the result always overwrites a full profile, it never merges with what
// is currently on the device.
//
// days accepts short ("mon") or long ("monday") names, case-insensitive;
// unknown tokens are passed through upper-cased. A nil slice means every
// day. heatStart and heatEnd are not checked against each other; an
// inverted window yields out-of-order boundaries the device will not
// interpret sensibly, which is left to the caller to validate.
func NewSimpleSchedule(profile int, heatStart, heatEnd string, comfort, lowering float64, days []string) (*WeekSchedule, error) {
	startMinutes, err := ParseTime(heatStart)
	if err != nil {
		return nil, err
	}
	endMinutes, err := ParseTime(heatEnd)
	if err != nil {
		return nil, err
	}

	target := canonicalDays(days)
	s := NewWeekSchedule(profile, comfort, lowering)

	for _, day := range Weekdays {
		ds := &DaySchedule{Day: day, Slots: make([]TimeSlot, 0, MaxSlots)}

		if target[day] {
			ds.Slots = append(ds.Slots,
				TimeSlot{Number: 1, EndMinutes: startMinutes, Temperature: lowering},
				TimeSlot{Number: 2, EndMinutes: endMinutes, Temperature: comfort},
				TimeSlot{Number: 3, EndMinutes: EndOfDay, Temperature: lowering},
			)
			for n := 4; n <= MaxSlots; n++ {
				ds.Slots = append(ds.Slots, TimeSlot{Number: n, EndMinutes: EndOfDay, Temperature: lowering})
			}
		} else {
			for n := 1; n <= MaxSlots; n++ {
				ds.Slots = append(ds.Slots, TimeSlot{Number: n, EndMinutes: EndOfDay, Temperature: lowering})
			}
		}

		s.Days[day] = ds
	}

	return s, nil
}

// NewConstantSchedule builds a profile that holds one temperature all week
// (no night setback). Slot 1 covers the whole day; the remaining twelve
// slots are placeholders at the same temperature. Since the single
// temperature serves as both comfort and lowering level, target and
// non-target days end up encoded identically; the days filter only matters
// for symmetry with NewSimpleSchedule.
func NewConstantSchedule(profile int, temperature float64, days []string) *WeekSchedule {
	target := canonicalDays(days)
	s := NewWeekSchedule(profile, temperature, temperature)

	for _, day := range Weekdays {
		ds := &DaySchedule{Day: day, Slots: make([]TimeSlot, 0, MaxSlots)}

		if target[day] {
			ds.Slots = append(ds.Slots, TimeSlot{Number: 1, EndMinutes: EndOfDay, Temperature: temperature})
			for n := 2; n <= MaxSlots; n++ {
				ds.Slots = append(ds.Slots, TimeSlot{Number: n, EndMinutes: EndOfDay, Temperature: temperature})
			}
		} else {
			for n := 1; n <= MaxSlots; n++ {
				ds.Slots = append(ds.Slots, TimeSlot{Number: n, EndMinutes: EndOfDay, Temperature: temperature})
			}
		}

		s.Days[day] = ds
	}

	return s
}
