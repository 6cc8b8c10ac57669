package models

// User is an operator account allowed to upload exports and manage the store.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
