package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotIsActive(t *testing.T) {
	assert.True(t, TimeSlot{Number: 1, EndMinutes: 1440}.IsActive(), "slot 1 is always real")
	assert.True(t, TimeSlot{Number: 5, EndMinutes: 300}.IsActive())
	assert.False(t, TimeSlot{Number: 2, EndMinutes: 1440}.IsActive(), "parked non-first slot is a placeholder")
}

func TestActiveSlotsPrefixLaw(t *testing.T) {
	day := &DaySchedule{Day: "MONDAY"}
	for n := 1; n <= MaxSlots; n++ {
		end := EndOfDay
		switch n {
		case 1:
			end = 300
		case 2:
			end = 1320
		case 3:
			end = EndOfDay
		case 4:
			// Data after the first end-of-day boundary must never be
			// returned, even when it looks meaningful.
			end = 600
		}
		day.Slots = append(day.Slots, TimeSlot{Number: n, EndMinutes: end})
	}

	active := day.ActiveSlots()
	require.Len(t, active, 3)
	for i, slot := range active {
		assert.Equal(t, i+1, slot.Number, "active slots form an ordered prefix")
	}
	assert.Equal(t, EndOfDay, active[2].EndMinutes, "scan includes the terminating boundary")
}

func TestActiveSlotsNeverEmpty(t *testing.T) {
	s := NewConstantSchedule(1, 21.0, nil)
	for _, day := range Weekdays {
		active := s.Days[day].ActiveSlots()
		require.Len(t, active, 1, "day %s", day)
		assert.Equal(t, EndOfDay, active[0].EndMinutes)
		assert.Equal(t, 21.0, active[0].Temperature)
	}
}

func TestNewWeekSchedulePopulatesAllDays(t *testing.T) {
	s := NewWeekSchedule(2, 21.0, 17.0)
	require.Len(t, s.Days, 7)
	for _, day := range Weekdays {
		require.NotNil(t, s.Days[day])
		assert.Equal(t, day, s.Days[day].Day)
	}
}

func TestParseParamsetSparse(t *testing.T) {
	params := map[string]any{
		"P1_ENDTIME_MONDAY_1":     300,
		"P1_TEMPERATURE_MONDAY_1": 17.0,
	}

	s := ParseParamset(params, 1)

	monday := s.Days["MONDAY"].Slots
	require.Len(t, monday, MaxSlots)
	assert.Equal(t, 300, monday[0].EndMinutes)
	assert.Equal(t, 17.0, monday[0].Temperature)

	// Missing keys default to placeholder at the lowering temperature.
	assert.Equal(t, EndOfDay, monday[1].EndMinutes)
	assert.Equal(t, DefaultLoweringTemp, monday[1].Temperature)

	for _, day := range Weekdays[1:] {
		for _, slot := range s.Days[day].Slots {
			assert.Equal(t, EndOfDay, slot.EndMinutes)
			assert.Equal(t, DefaultLoweringTemp, slot.Temperature)
		}
	}
}

func TestParseParamsetHeaders(t *testing.T) {
	s := ParseParamset(map[string]any{
		"TEMPERATURE_COMFORT":  22.5,
		"TEMPERATURE_LOWERING": 16.0,
	}, 2)

	assert.Equal(t, 22.5, s.ComfortTemp)
	assert.Equal(t, 16.0, s.LoweringTemp)
	// Slot temperatures default to the decoded lowering temperature, not
	// the package default.
	assert.Equal(t, 16.0, s.Days["FRIDAY"].Slots[0].Temperature)
}

func TestParseParamsetJSONNumbers(t *testing.T) {
	// JSON transports deliver every number as float64.
	s := ParseParamset(map[string]any{
		"P1_ENDTIME_MONDAY_1":     float64(360),
		"P1_TEMPERATURE_MONDAY_1": float64(19),
	}, 1)

	assert.Equal(t, 360, s.Days["MONDAY"].Slots[0].EndMinutes)
	assert.Equal(t, 19.0, s.Days["MONDAY"].Slots[0].Temperature)
}

func TestParamsetRoundTrip(t *testing.T) {
	orig, err := NewSimpleSchedule(2, "06:00", "21:30", 22.0, 16.5, nil)
	require.NoError(t, err)

	params := BuildParamset(orig)
	// 7 days x 13 slots x (ENDTIME + TEMPERATURE)
	require.Len(t, params, 7*MaxSlots*2)

	// Headers are not emitted by the flattener; carry them alongside as
	// the device does.
	params["TEMPERATURE_COMFORT"] = orig.ComfortTemp
	params["TEMPERATURE_LOWERING"] = orig.LoweringTemp

	decoded := ParseParamset(params, 2)
	assert.Equal(t, orig.ComfortTemp, decoded.ComfortTemp)
	assert.Equal(t, orig.LoweringTemp, decoded.LoweringTemp)
	for _, day := range Weekdays {
		for i, slot := range orig.Days[day].Slots {
			got := decoded.Days[day].Slots[i]
			assert.Equal(t, slot.EndMinutes, got.EndMinutes, "%s slot %d", day, slot.Number)
			assert.Equal(t, slot.Temperature, got.Temperature, "%s slot %d", day, slot.Number)
		}
	}
}

func TestNewSimpleSchedule(t *testing.T) {
	s, err := NewSimpleSchedule(1, "05:00", "22:00", 21.0, 17.0, nil)
	require.NoError(t, err)

	active := s.Days["MONDAY"].ActiveSlots()
	require.Len(t, active, 3)
	assert.Equal(t, TimeSlot{Number: 1, EndMinutes: 300, Temperature: 17.0}, active[0])
	assert.Equal(t, TimeSlot{Number: 2, EndMinutes: 1320, Temperature: 21.0}, active[1])
	assert.Equal(t, TimeSlot{Number: 3, EndMinutes: 1440, Temperature: 17.0}, active[2])

	require.Len(t, s.Days["MONDAY"].Slots, MaxSlots)
}

func TestNewSimpleScheduleDayFilter(t *testing.T) {
	s, err := NewSimpleSchedule(1, "06:00", "20:00", 21.0, 17.0,
		[]string{"mon", "tue", "wed", "thu", "fri"})
	require.NoError(t, err)

	monday := s.Days["MONDAY"].ActiveSlots()
	assert.Equal(t, 360, monday[0].EndMinutes)

	// Weekend days collapse to always-lowering placeholders.
	saturday := s.Days["SATURDAY"].ActiveSlots()
	require.Len(t, saturday, 1)
	assert.Equal(t, EndOfDay, saturday[0].EndMinutes)
	assert.Equal(t, 17.0, saturday[0].Temperature)
}

func TestNewSimpleScheduleLongDayNames(t *testing.T) {
	s, err := NewSimpleSchedule(1, "06:00", "20:00", 21.0, 17.0,
		[]string{"Monday", "SUNDAY"})
	require.NoError(t, err)

	assert.Len(t, s.Days["MONDAY"].ActiveSlots(), 3)
	assert.Len(t, s.Days["SUNDAY"].ActiveSlots(), 3)
	assert.Len(t, s.Days["TUESDAY"].ActiveSlots(), 1)
}

func TestNewSimpleScheduleUnknownDayToken(t *testing.T) {
	// Unknown tokens pass through upper-cased instead of failing; they
	// simply match no weekday, so every real day stays at lowering.
	s, err := NewSimpleSchedule(1, "06:00", "20:00", 21.0, 17.0, []string{"holiday"})
	require.NoError(t, err)

	for _, day := range Weekdays {
		assert.Len(t, s.Days[day].ActiveSlots(), 1, "day %s", day)
	}
}

func TestNewSimpleScheduleBadTime(t *testing.T) {
	_, err := NewSimpleSchedule(1, "25:00", "22:00", 21.0, 17.0, nil)
	require.Error(t, err)
	_, err = NewSimpleSchedule(1, "05:00", "12:60", 21.0, 17.0, nil)
	require.Error(t, err)
}

func TestNewConstantSchedule(t *testing.T) {
	s := NewConstantSchedule(1, 21.0, nil)

	assert.Equal(t, 21.0, s.ComfortTemp)
	assert.Equal(t, 21.0, s.LoweringTemp)
	for _, day := range Weekdays {
		active := s.Days[day].ActiveSlots()
		require.Len(t, active, 1, "day %s", day)
		assert.Equal(t, TimeSlot{Number: 1, EndMinutes: EndOfDay, Temperature: 21.0}, active[0])
	}
}

func TestSlotEndTime(t *testing.T) {
	assert.Equal(t, "05:00", TimeSlot{Number: 1, EndMinutes: 300}.EndTime())
	assert.Equal(t, "24:00", TimeSlot{Number: 13, EndMinutes: 1440}.EndTime())
}
