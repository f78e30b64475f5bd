package gesture

import (
	"sync"
	"time"

	"github.com/ayusman/pinchflap/internal/landmark"
)

// Reading is one processed camera frame: the detected hands plus the pixel
// dimensions of the frame they were detected in.
type Reading struct {
	Hands      []landmark.Hand
	Width      int
	Height     int
	CapturedAt time.Time
}

// Mailbox is a single-slot handoff between the camera pipeline and the game
// loop. Put overwrites any unread reading; Take never blocks.
type Mailbox struct {
	mu      sync.Mutex
	reading *Reading
	dropped uint64
}

// NewMailbox creates an empty Mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{}
}

// Put stores r, replacing an unread reading if one is waiting.
func (m *Mailbox) Put(r Reading) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.reading != nil {
		m.dropped++
	}
	m.reading = &r
}

// Take removes and returns the newest reading. ok is false when nothing new
// has arrived since the last Take.
func (m *Mailbox) Take() (r Reading, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.reading == nil {
		return Reading{}, false
	}
	r = *m.reading
	m.reading = nil
	return r, true
}

// Dropped returns how many readings were overwritten before being taken.
func (m *Mailbox) Dropped() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dropped
}
