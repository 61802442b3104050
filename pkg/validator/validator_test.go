package validator

import "testing"

type sample struct {
	Date string `json:"date" validate:"required,isodate"`
	Time string `json:"time" validate:"required,slot"`
	End  string `json:"end" validate:"omitempty,hhmm"`
	Day  string `json:"day" validate:"omitempty,weekday"`
}

func TestCustomTags(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		in      sample
		wantErr string
	}{
		{"valid", sample{Date: "2024-06-10", Time: "09:30", End: "24:00", Day: "Mon"}, ""},
		{"bad date", sample{Date: "10/06/2024", Time: "09:30"}, "Date"},
		{"24:00 is not a slot", sample{Date: "2024-06-10", Time: "24:00"}, "Time"},
		{"bad end", sample{Date: "2024-06-10", Time: "09:00", End: "9am"}, "End"},
		{"bad weekday", sample{Date: "2024-06-10", Time: "09:00", Day: "Monday"}, "Day"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.in)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() error = nil")
			}
			if _, ok := v.FormatValidationErrors(err)[tt.wantErr]; !ok {
				t.Errorf("FormatValidationErrors() = %v, want key %s", v.FormatValidationErrors(err), tt.wantErr)
			}
		})
	}
}
