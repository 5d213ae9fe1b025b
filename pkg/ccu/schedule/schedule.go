// Package schedule models the weekly heating program (Wochenprogramm) of
// HomeMatic wall and radiator thermostats such as HM-TC-IT-WM-W-EU and
// HM-CC-RT-DN.
//
// A thermostat stores three independent profiles (P1..P3) in its MASTER
// paramset. Each profile holds 13 time slots per weekday; slot N is valid
// from slot N-1's end time (midnight for slot 1) until its own ENDTIME,
// given in minutes since midnight. Slots past the last real boundary are
// parked at 1440 (24:00) and act as placeholders. The profile used by the
// device is selected via the separate WEEK_PROGRAM_POINTER parameter,
// which this package does not interpret.
package schedule

import "strings"

// Weekdays in HomeMatic parameter naming order.
var Weekdays = []string{
	"MONDAY",
	"TUESDAY",
	"WEDNESDAY",
	"THURSDAY",
	"FRIDAY",
	"SATURDAY",
	"SUNDAY",
}

const (
	// MaxSlots is the fixed number of time slots per day and profile.
	MaxSlots = 13
	// EndOfDay is 24:00 in minutes since midnight. It doubles as the
	// placeholder end time for unused slots.
	EndOfDay = 1440

	DefaultComfortTemp  = 21.0
	DefaultLoweringTemp = 17.0
)

// dayNames maps CLI day tokens (short and long, lower-case) to the
// parameter naming used on the wire.
var dayNames = map[string]string{
	"mon": "MONDAY",
	"tue": "TUESDAY",
	"wed": "WEDNESDAY",
	"thu": "THURSDAY",
	"fri": "FRIDAY",
	"sat": "SATURDAY",
	"sun": "SUNDAY",

	"monday":    "MONDAY",
	"tuesday":   "TUESDAY",
	"wednesday": "WEDNESDAY",
	"thursday":  "THURSDAY",
	"friday":    "FRIDAY",
	"saturday":  "SATURDAY",
	"sunday":    "SUNDAY",
}

// TimeSlot is a single entry of a day program. The slot's temperature
// applies until EndMinutes.
type TimeSlot struct {
	Number      int     `json:"slot" yaml:"slot"`
	EndMinutes  int     `json:"end_minutes" yaml:"end_minutes"`
	Temperature float64 `json:"temperature" yaml:"temperature"`
}

// EndTime returns the slot boundary as HH:MM.
func (s TimeSlot) EndTime() string {
	return FormatTime(s.EndMinutes)
}

// IsActive reports whether the slot carries real schedule data. Slot 1 is
// always real; any later slot parked at 24:00 is a placeholder.
func (s TimeSlot) IsActive() bool {
	return s.EndMinutes < EndOfDay || s.Number == 1
}

// DaySchedule holds the 13 slots of one weekday.
type DaySchedule struct {
	Day   string     `json:"day" yaml:"day"`
	Slots []TimeSlot `json:"slots" yaml:"slots"`
}

// ActiveSlots returns the meaningful prefix of the day's slots: everything
// up to and including the first slot that reaches 24:00. Slots after that
// boundary are placeholders and are not inspected.
func (d *DaySchedule) ActiveSlots() []TimeSlot {
	var active []TimeSlot
	for _, slot := range d.Slots {
		active = append(active, slot)
		if slot.EndMinutes >= EndOfDay {
			break
		}
	}
	return active
}

// WeekSchedule is one complete profile of a thermostat's weekly program.
type WeekSchedule struct {
	Profile      int                     `json:"profile" yaml:"profile"`
	Days         map[string]*DaySchedule `json:"days" yaml:"days"`
	ComfortTemp  float64                 `json:"comfort_temp" yaml:"comfort_temp"`
	LoweringTemp float64                 `json:"lowering_temp" yaml:"lowering_temp"`
}

// NewWeekSchedule returns a schedule for the given profile with every
// weekday present. Days start out empty; codecs and builders fill them.
func NewWeekSchedule(profile int, comfort, lowering float64) *WeekSchedule {
	s := &WeekSchedule{
		Profile:      profile,
		Days:         make(map[string]*DaySchedule, len(Weekdays)),
		ComfortTemp:  comfort,
		LoweringTemp: lowering,
	}
	for _, day := range Weekdays {
		s.Days[day] = &DaySchedule{Day: day}
	}
	return s
}

// canonicalDays maps user-supplied day tokens to wire day names. Unknown
// tokens are passed through upper-cased rather than rejected, matching the
// permissive CLI contract. A nil or empty input selects all seven days.
func canonicalDays(days []string) map[string]bool {
	target := make(map[string]bool, len(Weekdays))
	if len(days) == 0 {
		for _, day := range Weekdays {
			target[day] = true
		}
		return target
	}
	for _, token := range days {
		if day, ok := dayNames[strings.ToLower(token)]; ok {
			target[day] = true
		} else {
			target[strings.ToUpper(token)] = true
		}
	}
	return target
}
