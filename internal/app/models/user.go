package models

import (
	"encoding/json"
	"time"
)

// Role is one of the three portal roles.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleLecturer Role = "lecturer"
	RoleStudent  Role = "student"
)

// Roles lists the valid roles in display order.
var Roles = []Role{RoleAdmin, RoleLecturer, RoleStudent}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleLecturer, RoleStudent:
		return true
	}
	return false
}

// HomePath is where a session of this role lands after login.
func (r Role) HomePath() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleLecturer:
		return "/lecturer"
	case RoleStudent:
		return "/student"
	}
	return "/"
}

// Session is the identity decoded from the stored credential.
// It is a pure projection of the token and is never edited in place.
type Session struct {
	ID        string
	Email     string
	FullName  string
	Role      Role
	ExpiresAt *time.Time
}

// AuthResult is the backend's answer to POST /auth/login.
type AuthResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	Role        Role   `json:"role"`
}

// Session builds the session-shaped value handed back to the login caller.
func (r AuthResult) Session() *Session {
	return &Session{
		ID:       r.UserID,
		Email:    r.Email,
		FullName: r.FullName,
		Role:     r.Role,
	}
}

// User is a portal account as listed by the backend.
type User struct {
	ID        string
	FullName  string
	Email     string
	Role      Role
	CreatedAt *time.Time
}

type userWire struct {
	ID        string `json:"id"`
	MongoID   string `json:"_id"`
	FullName  string `json:"full_name"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	CreatedAt string `json:"created_at"`
}

// UnmarshalJSON accepts both id spellings and a loose created_at.
func (u *User) UnmarshalJSON(data []byte) error {
	var w userWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	u.ID = firstNonEmpty(w.ID, w.MongoID)
	u.FullName = firstNonEmpty(w.FullName, w.Name)
	u.Email = w.Email
	u.Role = w.Role
	u.CreatedAt = parseLooseTime(w.CreatedAt)
	return nil
}

// CreateUserPayload is the role-tagged body for POST /users/create.
type CreateUserPayload struct {
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Role           Role   `json:"role"`
	Department     string `json:"department,omitempty"`
	Specialization string `json:"specialization,omitempty"`
	Year           int    `json:"year,omitempty"`
	Semester       int    `json:"semester,omitempty"`
}

// UpdateUserPayload is the body for PUT /users/{id}.
type UpdateUserPayload struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

type ProfileUpdate struct {
	FullName string `json:"full_name"`
}

type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// DashboardStats summarises the admin overview.
type DashboardStats struct {
	Students    int
	Lecturers   int
	Courses     int
	Departments int
}

// AdminOverview is everything the admin dashboard shows.
type AdminOverview struct {
	Stats       DashboardStats
	RecentUsers []User
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func parseLooseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
