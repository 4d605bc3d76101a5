package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/socialhook/support-bot/internal/errs"
)

// sectionFlags is the transient capture signal: per-user section markers that
// live only as long as the process.
type sectionFlags struct {
	mu       sync.RWMutex
	sections map[int64]string
}

func newSectionFlags() *sectionFlags {
	return &sectionFlags{sections: make(map[int64]string)}
}

func (f *sectionFlags) set(userID int64, section string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sections[userID] = section
}

func (f *sectionFlags) clear(userID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sections, userID)
}

func (f *sectionFlags) get(userID int64) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	s, ok := f.sections[userID]
	return s, ok
}

// enterCapture moves the user to Capturing(section): both the transient flag
// and the durable session are set in the same transition.
func (b *Bot) enterCapture(ctx context.Context, userID int64, section string) error {
	if err := b.store.StartOrRefreshSession(ctx, userID, section); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	b.flags.set(userID, section)
	return nil
}

// exitCapture moves the user back to Idle, clearing both signals together.
func (b *Bot) exitCapture(ctx context.Context, userID int64) error {
	b.flags.clear(userID)
	if err := b.store.EndSession(ctx, userID); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}

// captureSection resolves whether the user is in capture mode. The transient
// flag wins; the durable session covers restarts, subject to its read-time
// freshness window. Empty section means not capturing.
func (b *Bot) captureSection(ctx context.Context, userID int64) (string, error) {
	if section, ok := b.flags.get(userID); ok {
		return section, nil
	}
	section, err := b.store.ActiveSession(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNoActiveSession) {
			return "", nil
		}
		return "", fmt.Errorf("active session: %w", err)
	}
	return section, nil
}
