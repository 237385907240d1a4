package domain

import "time"

// LikeAction records that a user currently likes a poll. At most one row
// exists per (user, poll) pair; absence means "not liked".
type LikeAction struct {
	ID        string    `json:"id"`
	PollID    string    `json:"poll_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// VoteAction records a user's single active vote within a poll. At most one
// row exists per (user, poll) pair, regardless of which option it points at.
type VoteAction struct {
	ID        string    `json:"id"`
	PollID    string    `json:"poll_id"`
	OptionID  string    `json:"option_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
