// Package analytics turns raw twin conversation records into dashboard metrics,
// chart series, retention cohorts and a classified activity feed
//
// Everything here is a pure read over a Source. Callers pass the reference time
// explicitly so results depend only on the data and the arguments
package analytics

import "time"

// Sender is who wrote a message
type Sender string

const (
	// SenderUser is the human side of a thread
	SenderUser Sender = "user"
	// SenderTwin is the AI twin side of a thread
	SenderTwin Sender = "twin"
)

// MessageType tags what a message asked the twin to do
type MessageType string

const (
	MessageGeneral  MessageType = "general"
	MessageDocument MessageType = "document"
	MessageQuery    MessageType = "query"
)

// Kind is the classified activity type of a session
type Kind string

const (
	// KindAll disables the type filter on the feed
	KindAll          Kind = "all"
	KindConversation Kind = "conversation"
	KindDocument     Kind = "document"
	KindQuery        Kind = "query"
	KindShared       Kind = "shared"
)

// Session is one conversation thread between a user and a twin
// user and twin display fields are denormalized by the Source; the counts
// cover every message, document and query attached to the session
type Session struct {
	ID        string
	UserID    string
	TwinID    string
	StartedAt time.Time

	Title           string
	Topic           string
	Platform        string
	Device          string
	DurationSeconds *int64 // nil while the session is unfinished

	UserEmail    string
	UserName     string
	Organization string
	Department   string

	TwinName       string
	TwinOwnerID    string
	TwinOwnerEmail string
	TwinOwnerName  string

	Messages  int
	Documents int
	Queries   int
}

// SharedTwin reports whether the initiator is someone other than the twin owner
func (s Session) SharedTwin() bool {
	return s.TwinOwnerID != "" && s.TwinOwnerID != s.UserID
}

// Message is a single entry in a session thread
type Message struct {
	ID        string
	SessionID string
	Sender    Sender
	Content   string
	Type      MessageType
	CreatedAt time.Time
}

// Document is a draft the twin produced during a session
// MessageID is empty when no message triggered it
type Document struct {
	ID        string
	SessionID string
	MessageID string
	Type      string
	Title     string
	Content   string
	WordCount int
	CreatedAt time.Time
}

// Query is an information retrieval the twin ran during a session
type Query struct {
	ID          string
	SessionID   string
	MessageID   string
	Text        string
	Type        string
	ResultCount int
	CreatedAt   time.Time
}

// SessionStart is the minimal lifetime history row used for cohorts and first use
type SessionStart struct {
	UserID    string
	TwinID    string
	StartedAt time.Time
}

// Thread holds everything attached to one session
type Thread struct {
	Messages  []Message
	Documents []Document
	Queries   []Query
}
