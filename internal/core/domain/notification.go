package domain

import (
	"time"
	"unicode/utf8"
)

// NotificationType enumerates the events a user can be notified about.
type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationRepost  NotificationType = "repost"
)

const NotificationTextMaxLen = 255

// Valid reports whether t is one of the known notification types.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationLike, NotificationComment, NotificationRepost:
		return true
	}
	return false
}

// Notification is an event owned by exactly one user.
type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id"`
	Type      NotificationType `json:"type"`
	Text      string           `json:"text"`
	CreatedAt time.Time        `json:"created_at"`
}

// Validate checks type and text length before persistence.
func (n *Notification) Validate() error {
	if !n.Type.Valid() {
		return Validationf("type must be one of: like comment repost")
	}
	if utf8.RuneCountInString(n.Text) > NotificationTextMaxLen {
		return Validationf("text must be at most %d characters", NotificationTextMaxLen)
	}
	return nil
}
