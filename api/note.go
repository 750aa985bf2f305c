package api

import "time"

// Note is the wire form of a note, shared by the client and the
// collection service. IDs are assigned server-side; CreatedAt never
// changes after creation, UpdatedAt is refreshed on every save.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Event is one change-feed record broadcast by the collection service
// to websocket subscribers. A "sync" event carries the full collection
// and is sent once when a subscriber connects; the mutation events
// carry the single note they touched.
type Event struct {
	Type  string `json:"type"` // "sync", "create", "update", "delete"
	Note  *Note  `json:"note,omitempty"`
	Notes []Note `json:"notes,omitempty"`
}
