// Package models defines the client-side data exchanged with the Radiologix
// backend.
package models

// User is the identity returned by the identity fetch (GET /api/auth/me).
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt Timestamp `json:"created_at"`
}
