package domain

import (
	"time"
)

// Comment represents a message posted on an incident.
// UserName is the author's display name at posting time.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewComment creates a comment authored by author
func NewComment(id string, author User, content string, now time.Time) Comment {
	return Comment{
		ID:        id,
		UserID:    author.ID,
		UserName:  author.Name,
		Content:   content,
		CreatedAt: now,
	}
}
