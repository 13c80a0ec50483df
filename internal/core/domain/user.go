package domain

import "time"

// User models a storefront customer account.
type User struct {
	ID           string    `json:"-"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// Profile is the public view of a user. It is the only user shape that
// leaves the service.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) Profile() Profile {
	return Profile{Name: u.Name, Email: u.Email}
}
