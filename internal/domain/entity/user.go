package entity

// Role represents what a staff account may do
type Role uint8

const (
	RoleAdmin Role = iota + 1
	RoleReceptionist
	RoleDoctor
	RoleNurse
	RoleBilling
)

var roleLabels = map[Role]string{
	RoleAdmin:        "Admin",
	RoleReceptionist: "Receptionist",
	RoleDoctor:       "Doctor",
	RoleNurse:        "Nurse",
	RoleBilling:      "Billing",
}

func ParseRole(s string) (Role, error) { return parseEnum(roleLabels, "role", s) }

func (r Role) String() string                { return enumString(roleLabels, r) }
func (r Role) MarshalText() ([]byte, error)  { return marshalEnum(roleLabels, "role", r) }
func (r *Role) UnmarshalText(b []byte) error { return unmarshalInto(r, roleLabels, "role", b) }

// User represents a staff login
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	Role         Role   `json:"role"`
	// RelatedID links Doctor accounts to their doctor record.
	RelatedID string `json:"related_id,omitempty"`
}
