package entity

type UserStatus string

const (
	UserStatusActive UserStatus = "active"
	UserStatusAbsent UserStatus = "absent"
	UserStatusBreak  UserStatus = "break"
)

type User struct {
	ID         uint64     `json:"id"`
	EmployeeID string     `json:"employee_id"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Email      string     `json:"email"`
	Role       Role       `json:"role"`
	Department string     `json:"department"`
	Status     UserStatus `json:"status"`
}

func (u User) Key() uint64 { return u.ID }

func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

type CreateUserRequest struct {
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Role       Role   `json:"role" validate:"required,oneof=employee hr admin"`
	Department string `json:"department" validate:"required"`
}
