// Package notify surfaces short-lived error messages to the user.
package notify

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/speedx/internal/emoji"
)

// Sink displays an error message for roughly duration. Implementations must
// not block and give no acknowledgment.
type Sink interface {
	NotifyError(message string, duration time.Duration)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(message string, duration time.Duration)

// NotifyError calls f
func (f SinkFunc) NotifyError(message string, duration time.Duration) {
	f(message, duration)
}

// Toast is one queued notification
type Toast struct {
	ID        uint64
	Message   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Toaster keeps notifications until they expire. The TUI renders Active()
// on every frame and calls Prune from its tick.
type Toaster struct {
	mu     sync.Mutex
	toasts []Toast
	nextID uint64
	now    func() time.Time
}

// NewToaster creates an empty toaster
func NewToaster() *Toaster {
	return &Toaster{now: time.Now}
}

// NewToasterWithClock creates a toaster driven by a custom clock
func NewToasterWithClock(now func() time.Time) *Toaster {
	return &Toaster{now: now}
}

// NotifyError queues message until now+duration
func (t *Toaster) NotifyError(message string, duration time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	created := t.now()
	t.toasts = append(t.toasts, Toast{
		ID:        t.nextID,
		Message:   message,
		CreatedAt: created,
		ExpiresAt: created.Add(duration),
	})
}

// Active returns the toasts that have not expired, oldest first
func (t *Toaster) Active() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	active := make([]Toast, 0, len(t.toasts))
	for _, toast := range t.toasts {
		if now.Before(toast.ExpiresAt) {
			active = append(active, toast)
		}
	}
	return active
}

// Prune drops expired toasts and reports how many were removed
func (t *Toaster) Prune() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	kept := t.toasts[:0]
	for _, toast := range t.toasts {
		if now.Before(toast.ExpiresAt) {
			kept = append(kept, toast)
		}
	}
	removed := len(t.toasts) - len(kept)
	t.toasts = kept
	return removed
}

// WriterSink prints each notification as a single styled line. The duration
// is ignored since a terminal line cannot be withdrawn.
type WriterSink struct {
	mu      sync.Mutex
	w       io.Writer
	noColor bool
}

// NewWriterSink creates a sink writing to w
func NewWriterSink(w io.Writer, noColor bool) *WriterSink {
	return &WriterSink{w: w, noColor: noColor}
}

// NotifyError writes message to the underlying writer
func (s *WriterSink) NotifyError(message string, _ time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := emoji.GetEmoji("error") + " " + message
	if !s.noColor {
		line = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}).
			Bold(true).
			Render(line)
	}
	_, _ = fmt.Fprintln(s.w, line)
}
