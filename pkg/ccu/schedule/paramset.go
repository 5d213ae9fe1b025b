package schedule

import "fmt"

// ParseParamset decodes one profile's weekly program from a MASTER
// paramset. Missing keys never fail the decode: absent end times fall back
// to the 24:00 placeholder and absent temperatures to the lowering
// temperature, so partially populated or older firmware paramsets still
// produce a complete 7x13 schedule.
//
// TEMPERATURE_COMFORT and TEMPERATURE_LOWERING are shared between all
// three profiles and are therefore not profile-prefixed.
func ParseParamset(params map[string]any, profile int) *WeekSchedule {
	s := NewWeekSchedule(
		profile,
		floatOrDefault(params["TEMPERATURE_COMFORT"], DefaultComfortTemp),
		floatOrDefault(params["TEMPERATURE_LOWERING"], DefaultLoweringTemp),
	)

	prefix := fmt.Sprintf("P%d_", profile)
	for _, day := range Weekdays {
		ds := &DaySchedule{Day: day, Slots: make([]TimeSlot, 0, MaxSlots)}
		for n := 1; n <= MaxSlots; n++ {
			endKey := fmt.Sprintf("%sENDTIME_%s_%d", prefix, day, n)
			tempKey := fmt.Sprintf("%sTEMPERATURE_%s_%d", prefix, day, n)
			ds.Slots = append(ds.Slots, TimeSlot{
				Number:      n,
				EndMinutes:  intOrDefault(params[endKey], EndOfDay),
				Temperature: floatOrDefault(params[tempKey], s.LoweringTemp),
			})
		}
		s.Days[day] = ds
	}

	return s
}

// BuildParamset flattens a schedule back into the key/value form expected
// by putParamset. Only slots actually held by the schedule are emitted.
func BuildParamset(s *WeekSchedule) map[string]any {
	prefix := fmt.Sprintf("P%d_", s.Profile)
	params := make(map[string]any)

	for day, ds := range s.Days {
		for _, slot := range ds.Slots {
			params[fmt.Sprintf("%sENDTIME_%s_%d", prefix, day, slot.Number)] = slot.EndMinutes
			params[fmt.Sprintf("%sTEMPERATURE_%s_%d", prefix, day, slot.Number)] = slot.Temperature
		}
	}

	return params
}

// Paramset values arrive as float64 from JSON transports and as int from
// XML-RPC; accept either shape.

func intOrDefault(v any, def int) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return def
}

func floatOrDefault(v any, def float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return def
}
