package entity

import "time"

// Gender of a patient
type Gender uint8

const (
	GenderMale Gender = iota + 1
	GenderFemale
	GenderOther
)

var genderLabels = map[Gender]string{
	GenderMale:   "Male",
	GenderFemale: "Female",
	GenderOther:  "Other",
}

func ParseGender(s string) (Gender, error) { return parseEnum(genderLabels, "gender", s) }

func (g Gender) String() string                { return enumString(genderLabels, g) }
func (g Gender) MarshalText() ([]byte, error)  { return marshalEnum(genderLabels, "gender", g) }
func (g *Gender) UnmarshalText(b []byte) error { return unmarshalInto(g, genderLabels, "gender", b) }

// MedicalRecord is one entry of a patient's history
type MedicalRecord struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Condition   string `json:"condition"`
	Treatment   string `json:"treatment"`
	Allergies   string `json:"allergies,omitempty"`
	Medications string `json:"medications,omitempty"`
}

// Patient represents a person receiving care at the clinic
type Patient struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Age         int             `json:"age"`
	Gender      Gender          `json:"gender,omitempty"`
	Address     string          `json:"address"`
	DateOfBirth string          `json:"date_of_birth,omitempty"`
	History     []MedicalRecord `json:"history"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
