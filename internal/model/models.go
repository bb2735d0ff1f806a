// Package model defines shared data structures for the marketplace service.
package model

import "time"

// User is a registered marketplace user. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Job is a posted task on the marketplace. Mutable only by its owner.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Budget      float64   `json:"budget"`
	Category    string    `json:"category"`
	Skills      []string  `json:"skills"`
	Status      string    `json:"status"`
	OwnerUserID string    `json:"ownerUserId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Comment is a top-level discussion entry attached to a job. Replies are
// carried inline, oldest first.
type Comment struct {
	ID           string    `json:"id"`
	JobID        string    `json:"jobId"`
	AuthorUserID string    `json:"authorUserId"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Replies      []Reply   `json:"replies"`
}

// Reply is a second-level discussion entry attached to a comment.
type Reply struct {
	ID           string    `json:"id"`
	CommentID    string    `json:"commentId"`
	AuthorUserID string    `json:"authorUserId"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
