package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Weekday is the label a weekly schedule entry is keyed by.
type Weekday uint8

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayLabels = map[Weekday]string{
	Monday:    "Mon",
	Tuesday:   "Tue",
	Wednesday: "Wed",
	Thursday:  "Thu",
	Friday:    "Fri",
	Saturday:  "Sat",
	Sunday:    "Sun",
}

// AllWeekdays lists the weekdays in calendar order starting on Monday.
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// WeekdayOf resolves the weekday label of a calendar date.
func WeekdayOf(t time.Time) Weekday {
	if t.Weekday() == time.Sunday {
		return Sunday
	}
	return Weekday(t.Weekday())
}

func ParseWeekday(s string) (Weekday, error) { return parseEnum(weekdayLabels, "weekday", s) }

func (d Weekday) String() string                { return enumString(weekdayLabels, d) }
func (d Weekday) MarshalText() ([]byte, error)  { return marshalEnum(weekdayLabels, "weekday", d) }
func (d *Weekday) UnmarshalText(b []byte) error { return unmarshalInto(d, weekdayLabels, "weekday", b) }

// DaySchedule is the working window of a doctor on one weekday.
type DaySchedule struct {
	Day       Weekday `json:"day"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	IsWorking bool    `json:"is_working"`
}

// WeeklySchedule holds at most one entry per weekday.
type WeeklySchedule []DaySchedule

// Lookup returns the entry for day, if any.
func (ws WeeklySchedule) Lookup(day Weekday) (DaySchedule, bool) {
	for _, d := range ws {
		if d.Day == day {
			return d, true
		}
	}
	return DaySchedule{}, false
}

// Validate checks labels, uniqueness and the working windows.
func (ws WeeklySchedule) Validate() error {
	seen := make(map[Weekday]bool, len(ws))
	for _, d := range ws {
		if _, ok := weekdayLabels[d.Day]; !ok {
			return fmt.Errorf("%w: unknown weekday %d", ErrInvalidSchedule, d.Day)
		}
		if seen[d.Day] {
			return fmt.Errorf("%w: duplicate entry for %s", ErrInvalidSchedule, d.Day)
		}
		seen[d.Day] = true

		if !d.IsWorking {
			continue
		}
		start, err := ParseClock(d.StartTime)
		if err != nil {
			return fmt.Errorf("%w: %s start: %v", ErrInvalidSchedule, d.Day, err)
		}
		end, err := ParseClock(d.EndTime)
		if err != nil {
			return fmt.Errorf("%w: %s end: %v", ErrInvalidSchedule, d.Day, err)
		}
		if start >= end {
			return fmt.Errorf("%w: %s starts at or after it ends", ErrInvalidSchedule, d.Day)
		}
	}
	return nil
}

// Normalize returns a schedule with exactly one entry per weekday in
// calendar order; missing days become non-working.
func (ws WeeklySchedule) Normalize() WeeklySchedule {
	out := make(WeeklySchedule, 0, len(AllWeekdays))
	for _, day := range AllWeekdays {
		if d, ok := ws.Lookup(day); ok {
			out = append(out, d)
			continue
		}
		out = append(out, DaySchedule{Day: day, StartTime: "09:00", EndTime: "17:00"})
	}
	return out
}

// Doctor represents a clinician that appointments are booked against.
type Doctor struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Specialty       string          `json:"specialty"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	Schedule        WeeklySchedule  `json:"schedule"`
	Bio             string          `json:"bio,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
