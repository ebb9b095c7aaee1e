package domain

import "time"

type Role string

const (
	RoleAnonymous Role = ""
	RoleUser      Role = "User"
	RoleAdmin     Role = "Admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	FullName     string
	BirthDate    time.Time
	Country      string
	PassportNo   string
	CreatedAt    time.Time
}

// Caller is the resolved identity behind a request. The zero value is anonymous.
type Caller struct {
	UserID   int64
	Username string
	Email    string
	Role     Role
}

func (c Caller) Authenticated() bool {
	return c.Role != RoleAnonymous
}
