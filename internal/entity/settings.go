package entity

type PasswordPolicy string

const (
	PolicyBasic   PasswordPolicy = "basic"
	PolicyStrong  PasswordPolicy = "strong"
	PolicyComplex PasswordPolicy = "complex"
)

type Settings struct {
	CompanyName           string         `json:"company_name" toml:"company_name" validate:"required"`
	WorkingHours          int            `json:"working_hours" toml:"working_hours" validate:"oneof=7 8 9"`
	PasswordPolicy        PasswordPolicy `json:"password_policy" toml:"password_policy" validate:"oneof=basic strong complex"`
	SessionTimeoutMinutes int            `json:"session_timeout_minutes" toml:"session_timeout_minutes" validate:"gt=0"`
}
