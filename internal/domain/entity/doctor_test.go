package entity

import (
	"errors"
	"testing"
	"time"
)

func TestWeeklyScheduleValidate(t *testing.T) {
	tests := []struct {
		name    string
		ws      WeeklySchedule
		wantErr bool
	}{
		{name: "empty", ws: nil},
		{name: "valid", ws: WeeklySchedule{{Day: Monday, StartTime: "09:00", EndTime: "17:00", IsWorking: true}}},
		{name: "until midnight", ws: WeeklySchedule{{Day: Friday, StartTime: "20:00", EndTime: "24:00", IsWorking: true}}},
		{name: "off day ignores times", ws: WeeklySchedule{{Day: Sunday, StartTime: "", EndTime: "", IsWorking: false}}},
		{name: "duplicate day", ws: WeeklySchedule{{Day: Monday}, {Day: Monday}}, wantErr: true},
		{name: "unknown day", ws: WeeklySchedule{{Day: Weekday(9)}}, wantErr: true},
		{name: "start after end", ws: WeeklySchedule{{Day: Monday, StartTime: "17:00", EndTime: "09:00", IsWorking: true}}, wantErr: true},
		{name: "bad clock", ws: WeeklySchedule{{Day: Monday, StartTime: "9am", EndTime: "17:00", IsWorking: true}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ws.Validate()
			if tt.wantErr != (err != nil) {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidSchedule) {
				t.Errorf("Validate() error = %v, want ErrInvalidSchedule", err)
			}
		})
	}
}

func TestNormalizeFillsEveryDay(t *testing.T) {
	ws := WeeklySchedule{{Day: Wednesday, StartTime: "10:00", EndTime: "12:00", IsWorking: true}}.Normalize()
	if len(ws) != 7 {
		t.Fatalf("len = %d, want 7", len(ws))
	}
	for i, d := range ws {
		if d.Day != AllWeekdays[i] {
			t.Errorf("ws[%d].Day = %s, want %s", i, d.Day, AllWeekdays[i])
		}
		if d.IsWorking != (d.Day == Wednesday) {
			t.Errorf("%s IsWorking = %v", d.Day, d.IsWorking)
		}
	}
}

func TestWeekdayOf(t *testing.T) {
	cases := map[string]Weekday{
		"2024-06-10": Monday,
		"2024-06-15": Saturday,
		"2024-06-16": Sunday,
	}
	for date, want := range cases {
		d, err := time.ParseInLocation(DateLayout, date, time.Local)
		if err != nil {
			t.Fatal(err)
		}
		if got := WeekdayOf(d); got != want {
			t.Errorf("WeekdayOf(%s) = %s, want %s", date, got, want)
		}
	}
}

func TestParseClock(t *testing.T) {
	valid := map[string]int{"00:00": 0, "09:30": 570, "23:59": 1439, "24:00": 1440}
	for in, want := range valid {
		got, err := ParseClock(in)
		if err != nil || got != want {
			t.Errorf("ParseClock(%q) = %d, %v, want %d", in, got, err, want)
		}
	}
	for _, in := range []string{"", "9:30", "24:30", "12:60", "ab:cd", "12-30", "-1:00", "+9:00", "09:+5", " 9:00"} {
		if _, err := ParseClock(in); !errors.Is(err, ErrInvalidTime) {
			t.Errorf("ParseClock(%q) error = %v, want ErrInvalidTime", in, err)
		}
	}
	if IsSlotTime("24:00") {
		t.Error("IsSlotTime(24:00) = true, want false")
	}
}
