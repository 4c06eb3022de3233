// Package models defines the persistent entities of the server side.
package models

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
}
