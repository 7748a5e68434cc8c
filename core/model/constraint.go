package model

import "time"

// ConstraintType classifies how strict a user preference is. The
// classification is advisory metadata; the transformer applies the
// resulting action the same way for both types.
type ConstraintType string

const (
	ConstraintHard ConstraintType = "hard"
	ConstraintSoft ConstraintType = "soft"
)

// Constraint records one user preference for display and audit. The
// mutation itself is carried by the Action produced for it.
type Constraint struct {
	ID        string         `json:"id"`
	Text      string         `json:"text"`
	Type      ConstraintType `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
}

// Sender identifies who produced a transcript message.
type Sender string

const (
	SenderUser   Sender = "user"
	SenderSystem Sender = "system"
)

// Message is one entry of the session transcript.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// Teacher is a roster entry owned by external collaborators. The core
// only reads it to resolve default assignments.
type Teacher struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Subjects []string `json:"subjects"`
}

// ClassGroup is a class roster entry, read-only for the core.
type ClassGroup struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Subjects []string `json:"subjects"`
}
