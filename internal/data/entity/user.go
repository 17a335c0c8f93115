package entity

import "time"

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	Base
	FirstName    string     `db:"first_name"`
	LastName     string     `db:"last_name"`
	Email        string     `db:"email"` // always lower-cased
	PasswordHash string     `db:"password"`
	Phone        string     `db:"phone"`
	BirthDate    *time.Time `db:"birth_date"`
	Gender       string     `db:"gender"`
	Role         UserRole   `db:"role"`
	IsActive     bool       `db:"is_active"`
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
