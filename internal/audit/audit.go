// Package audit records manager change notifications in a journal.
// Entries are stored as JSON Lines (JSONL) in a single file.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/firefly-engineering/profilectl/internal/logging"
	"github.com/firefly-engineering/profilectl/internal/manager"
	"github.com/firefly-engineering/profilectl/internal/profile"
)

// Event represents a single journal entry.
type Event struct {
	Timestamp time.Time         `json:"timestamp"`
	Type      manager.EventType `json:"type"`
	Profile   string            `json:"profile"`
	Path      string            `json:"path,omitempty"`
	Details   string            `json:"details,omitempty"`
}

// Logger appends events to and reads events from a journal file.
type Logger struct {
	path string
}

// NewLogger creates a logger for the journal at path.
func NewLogger(path string) *Logger {
	return &Logger{path: path}
}

// Path returns the journal file.
func (l *Logger) Path() string {
	return l.path
}

// Log appends an event to the journal.
func (l *Logger) Log(event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create journal directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	return nil
}

// LogEvent is a convenience method that creates and logs an event.
func (l *Logger) LogEvent(eventType manager.EventType, p *profile.Profile, details string) error {
	return l.Log(Event{
		Timestamp: time.Now(),
		Type:      eventType,
		Profile:   p.Name(),
		Path:      p.Path(),
		Details:   details,
	})
}

// Record journals a manager notification. Failures are logged, never
// returned, so a broken journal cannot interrupt the change being made.
// Pass it to Manager.Subscribe.
func (l *Logger) Record(e manager.Event) {
	if e.Profile == nil {
		return
	}
	// loading an existing file is not a change, and session overlays are
	// runtime state
	switch {
	case e.Type == manager.EventProfileAdded && e.Profile.Path() != "":
		return
	case e.Type == manager.EventSessionUpdated:
		return
	}
	if err := l.LogEvent(e.Type, e.Profile, details(e)); err != nil {
		logging.Warn("failed to journal event", "type", e.Type, "error", err)
	}
}

func details(e manager.Event) string {
	switch e.Type {
	case manager.EventFavoriteChanged:
		if e.Favorite {
			return "favorite=true"
		}
		return "favorite=false"
	case manager.EventShortcutChanged:
		if e.Shortcut == "" {
			return "shortcut removed"
		}
		return "shortcut=" + e.Shortcut
	case manager.EventProfileChanged:
		if e.Profile.Hidden() {
			return "hidden"
		}
	}
	return ""
}

// Events reads the journal in chronological order. A non-empty profile
// keeps only that profile's events.
func (l *Logger) Events(profileName string) ([]Event, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			continue // Skip malformed lines
		}
		if profileName != "" && event.Profile != profileName {
			continue
		}
		events = append(events, event)
	}

	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("error reading journal: %w", err)
	}

	return events, nil
}

// Remove deletes the journal.
func (l *Logger) Remove() error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
