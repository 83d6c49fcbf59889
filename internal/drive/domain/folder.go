package domain

import "time"

// Folder is a named container of files. UserID never changes after creation.
type Folder struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
