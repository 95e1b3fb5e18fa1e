package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// UserID is the opaque authenticated identity supplied by the auth gateway.
// The core never interprets or validates it.
type UserID string

// Player represents a persistent per-user game profile
type Player struct {
	ID        PlayerID
	UserID    UserID
	Nickname  string
	CreatedAt time.Time
}
