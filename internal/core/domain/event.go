package domain

const (
	EventPollCreated   = "poll.created"
	EventPollLiked     = "poll.liked"
	EventOptionCreated = "option.created"
	EventOptionVoted   = "option.voted"
)

// Event is the payload broadcast to every connected websocket client when
// poll state changes. Option events carry every option whose counter moved,
// so a vote switch reports both the old and the new option.
type Event struct {
	Type    string       `json:"type"`
	Poll    *Poll        `json:"poll,omitempty"`
	PollID  string       `json:"poll_id,omitempty"`
	Option  *PollOption  `json:"option,omitempty"`
	Options []PollOption `json:"options,omitempty"`
}
