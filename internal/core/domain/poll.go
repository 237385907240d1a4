package domain

import "time"

// Poll.Likes and PollOption.Votes are cached aggregates. The like/vote
// action records are the source of truth; the counters are kept in sync
// inside the same transaction that mutates the actions.
type Poll struct {
	ID        string       `json:"id"`
	Text      string       `json:"text"`
	Likes     int64        `json:"likes"`
	CreatorID string       `json:"creator_id"`
	CreatedAt time.Time    `json:"created_at"`
	Options   []PollOption `json:"options,omitempty"`
}

type PollOption struct {
	ID        string    `json:"id"`
	PollID    string    `json:"poll_id"`
	Text      string    `json:"text"`
	Votes     int64     `json:"votes"`
	CreatedAt time.Time `json:"created_at"`
}
