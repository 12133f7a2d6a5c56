package model

import "time"

// NotificationStatus is the lifecycle state of a notification.
type NotificationStatus string

const (
	StatusDraft NotificationStatus = "draft"
	StatusSent  NotificationStatus = "sent"
)

// Valid reports whether s is a known status.
func (s NotificationStatus) Valid() bool {
	return s == StatusDraft || s == StatusSent
}

// Notification is a message targeted at the participants of a phase, or of the
// whole project when Phase is nil.
type Notification struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Body        string             `json:"body"`
	Phase       *PhaseRef          `json:"phase,omitempty"`
	PhaseID     *string            `json:"phase_id,omitempty"`
	Sender      *User              `json:"sender,omitempty"`
	Attachments []Attachment       `json:"attachments"`
	Status      NotificationStatus `json:"status"`
}

// TargetPhaseID returns the targeted phase id, or "" for a broadcast.
func (n Notification) TargetPhaseID() string {
	if n.PhaseID != nil {
		return *n.PhaseID
	}
	if n.Phase != nil {
		return n.Phase.ID
	}
	return ""
}

// Attachment is a file uploaded onto a notification.
type Attachment struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	URL      string `json:"url,omitempty"`
}

// NotifyParticipantsDTO is the create/update payload for a notification.
// An empty PhaseID broadcasts to every participant of the project.
type NotifyParticipantsDTO struct {
	Title   string `json:"title"`
	Body    string `json:"body"`
	PhaseID string `json:"phase_id,omitempty"`
}

// NoticeLevel distinguishes success from error notices.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is a user-facing outcome message raised once per completed or failed operation.
type Notice struct {
	ID        string      `json:"id"`
	Level     NoticeLevel `json:"level"`
	Text      string      `json:"text"`
	CreatedAt time.Time   `json:"created_at"`
}
