package flow

import (
	"sync"
	"time"
)

// Banner display durations.
const (
	CreateBannerDuration = 3 * time.Second
	UpdateBannerDuration = 3 * time.Second
	DeleteBannerDuration = 4 * time.Second
)

// Timer is a pending one-shot action.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Banner is a success indicator that hides itself after a delay.
type Banner struct {
	scheduler Scheduler

	mu      sync.Mutex
	message string
	visible bool
	timer   Timer
	gen     uint64
}

// NewBanner returns a hidden banner using s for auto-dismiss.
func NewBanner(s Scheduler) *Banner {
	if s == nil {
		s = realScheduler{}
	}
	return &Banner{scheduler: s}
}

// Show displays message and schedules it to hide after d. Any pending hide
// from a previous Show is cancelled.
func (b *Banner) Show(message string, d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopLocked()
	b.message = message
	b.visible = true
	b.gen++
	gen := b.gen
	b.timer = b.scheduler.AfterFunc(d, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		// A newer Show or Clear owns the banner now.
		if b.gen != gen {
			return
		}
		b.visible = false
		b.message = ""
		b.timer = nil
	})
}

// Clear hides the banner and cancels any pending hide.
func (b *Banner) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopLocked()
	b.gen++
	b.visible = false
	b.message = ""
}

// Visible reports whether the banner is showing.
func (b *Banner) Visible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.visible
}

// Message returns the banner text, or "" when hidden.
func (b *Banner) Message() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.visible {
		return ""
	}
	return b.message
}

func (b *Banner) stopLocked() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
