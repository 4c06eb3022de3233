package models

import "time"

type Note struct {
	ID        string
	Title     string
	Content   string
	CreatedAt time.Time
	OwnerID   string
	IsPublic  bool
}
