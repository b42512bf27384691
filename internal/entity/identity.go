package entity

import "github.com/golang-jwt/jwt/v5"

type Role string

const (
	RoleEmployee Role = "employee"
	RoleHR       Role = "hr"
	RoleAdmin    Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleEmployee, RoleHR, RoleAdmin:
		return true
	}
	return false
}

// Identity is the logged-in actor. It never changes for the lifetime of a session.
type Identity struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	Department string `json:"department"`
	EmployeeID string `json:"employee_id"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	ExpiresIn   int64    `json:"expires_in"`
	Identity    Identity `json:"identity"`
	View        string   `json:"view"`
}

type Claims struct {
	jwt.RegisteredClaims

	UserID  string `json:"uid"`
	Email   string `json:"email"`
	Role    Role   `json:"role"`
	TokenID string `json:"token_id"`
}
