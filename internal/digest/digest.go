package digest

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/socialhook/support-bot/internal/telegram"
)

// Store is the slice of the durable store the digest needs.
type Store interface {
	CountStartsBetween(ctx context.Context, from, to time.Time) (int64, error)
	PurgeStaleSessions(ctx context.Context) (int64, error)
}

// Sender delivers the digest line to the operator chat.
type Sender interface {
	SendMessage(ctx context.Context, p telegram.SendMessageParams) (*telegram.Message, error)
}

// Reporter sends the operator a daily start-count digest and runs session
// cleanup off the hot path.
type Reporter struct {
	store       Store
	api         Sender
	adminChatID int64
	loc         *time.Location
	hour        int
	now         func() time.Time
}

func New(store Store, api Sender, adminChatID int64, loc *time.Location, hour int) *Reporter {
	return &Reporter{
		store:       store,
		api:         api,
		adminChatID: adminChatID,
		loc:         loc,
		hour:        hour,
		now:         time.Now,
	}
}

// NextFire returns the next occurrence of hour o'clock in loc at or after now.
func NextFire(now time.Time, hour int, loc *time.Location) time.Time {
	local := now.In(loc)
	fire := time.Date(local.Year(), local.Month(), local.Day(), hour, 0, 0, 0, loc)
	if !fire.After(local) {
		fire = fire.AddDate(0, 0, 1)
	}
	return fire
}

// Run fires the digest daily until ctx is cancelled. Failures are logged and
// the loop keeps going.
func (r *Reporter) Run(ctx context.Context) error {
	for {
		next := NextFire(r.now(), r.hour, r.loc)
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		if err := r.SendOnce(ctx); err != nil {
			log.Printf("digest: %v", err)
		}
		if n, err := r.store.PurgeStaleSessions(ctx); err != nil {
			log.Printf("digest: purge stale sessions: %v", err)
		} else if n > 0 {
			log.Printf("digest: purged %d stale sessions", n)
		}
	}
}

// SendOnce reports starts since local midnight and the full previous day.
func (r *Reporter) SendOnce(ctx context.Context) error {
	local := r.now().In(r.loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, r.loc)

	today, err := r.store.CountStartsBetween(ctx, midnight, local)
	if err != nil {
		return fmt.Errorf("count today: %w", err)
	}
	yesterday, err := r.store.CountStartsBetween(ctx, midnight.AddDate(0, 0, -1), midnight)
	if err != nil {
		return fmt.Errorf("count yesterday: %w", err)
	}

	text := fmt.Sprintf("Daily digest (%s): %d starts so far today, %d yesterday.",
		local.Format("2006-01-02"), today, yesterday)
	if _, err := r.api.SendMessage(ctx, telegram.SendMessageParams{
		ChatID: r.adminChatID,
		Text:   text,
	}); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}
	return nil
}
