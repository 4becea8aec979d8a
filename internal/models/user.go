package models

// User is a registered blog account.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // don’t expose hash
}

// Registration carries validated sign-up input.
type Registration struct {
	Name     string
	Email    string
	Username string
	Password string
}
