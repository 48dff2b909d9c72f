package model

import "time"

// Text length bounds in runes. The validate tag on Thought.Text cannot
// reference constants, so it repeats them; TestTextTagMatchesBounds keeps the
// two in step. The SQL stores build their CHECK clauses from these values.
const (
	TextMinLength = 6
	TextMaxLength = 140
)

// Thought is a short text post with a creation time and a like counter.
// The JSON shape mirrors the stored document: the id travels as "_id" and the
// document version key "__v" is always zero.
type Thought struct {
	ID        string    `json:"_id"`
	Text      string    `json:"text" validate:"required,min=6,max=140"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int       `json:"__v"`
}

// NewThought returns an unsaved thought with server-assigned defaults.
// Timestamps are kept at millisecond precision so every backend round-trips
// them unchanged.
func NewThought(text string, now time.Time) Thought {
	return Thought{
		Text:      text,
		Likes:     0,
		CreatedAt: now.UTC().Truncate(time.Millisecond),
	}
}

// Route is an entry of the public route listing.
type Route struct {
	Path   string `json:"path"`
	Method string `json:"method"`
}
