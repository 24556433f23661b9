package manager

import (
	"github.com/firefly-engineering/profilectl/internal/profile"
	"github.com/firefly-engineering/profilectl/internal/session"
)

// EventType identifies a change notification.
type EventType string

const (
	EventProfileAdded    EventType = "profile_added"
	EventProfileRemoved  EventType = "profile_removed"
	EventProfileChanged  EventType = "profile_changed"
	EventFavoriteChanged EventType = "favorite_changed"
	EventShortcutChanged EventType = "shortcut_changed"
	EventSessionUpdated  EventType = "session_updated"
)

// Event is delivered to subscribers after the change has been made.
type Event struct {
	Type    EventType
	Profile *profile.Profile

	// Session is set for EventSessionUpdated.
	Session session.Session

	// Favorite is the new state for EventFavoriteChanged.
	Favorite bool

	// Shortcut is the key sequence for EventShortcutChanged. It is empty
	// when the profile's shortcut was removed.
	Shortcut string
}

// Subscribe registers fn to receive every subsequent event. Subscribers
// are called synchronously in registration order.
func (m *Manager) Subscribe(fn func(Event)) {
	m.subscribers = append(m.subscribers, fn)
}

func (m *Manager) emit(e Event) {
	for _, fn := range m.subscribers {
		fn(e)
	}
}
