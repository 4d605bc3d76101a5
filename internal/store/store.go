package store

import (
	"context"
	"errors"
	"time"

	"github.com/socialhook/support-bot/internal/errs"
	"github.com/socialhook/support-bot/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SessionFreshness is the window after which a durable session is treated as
// absent by ActiveSession. The row itself is not touched on expiry.
const SessionFreshness = 24 * time.Hour

type Store struct {
	db  *gorm.DB
	now func() time.Time
}

func New(db *gorm.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// SaveTicket inserts a ticket for a delivered header message and returns the
// store-assigned ticket id. A duplicate admin_msg_id is rejected by the
// unique index and surfaces as an error.
func (s *Store) SaveTicket(ctx context.Context, userID int64, section string, adminMsgID int64) (int64, error) {
	t := model.Ticket{
		UserID:     userID,
		Section:    section,
		AdminMsgID: adminMsgID,
		Status:     model.TicketStatusOpen,
	}
	if err := s.db.WithContext(ctx).Create(&t).Error; err != nil {
		return 0, err
	}
	return t.TicketID, nil
}

// TicketByAdminMsgID resolves the delivered header message id back to its
// ticket. Returns errs.ErrTicketNotFound on a miss.
func (s *Store) TicketByAdminMsgID(ctx context.Context, adminMsgID int64) (*model.Ticket, error) {
	var t model.Ticket
	err := s.db.WithContext(ctx).Where("admin_msg_id = ?", adminMsgID).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTicketNotFound
		}
		return nil, err
	}
	return &t, nil
}

// StartOrRefreshSession upserts the user's capture session: a fresh row on
// first entry, otherwise section replaced and last_activity reset.
func (s *Store) StartOrRefreshSession(ctx context.Context, userID int64, section string) error {
	now := s.now().UTC()
	sess := model.SupportSession{
		UserID:       userID,
		Section:      section,
		StartedAt:    now,
		LastActivity: now,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"section", "last_activity"}),
	}).Create(&sess).Error
}

// ActiveSession returns the session's section if last_activity is within the
// freshness window. A stale row behaves as absent (errs.ErrNoActiveSession)
// without being deleted.
func (s *Store) ActiveSession(ctx context.Context, userID int64) (string, error) {
	var sess model.SupportSession
	err := s.db.WithContext(ctx).First(&sess, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errs.ErrNoActiveSession
		}
		return "", err
	}
	if !Fresh(sess.LastActivity, s.now()) {
		return "", errs.ErrNoActiveSession
	}
	return sess.Section, nil
}

// EndSession deletes the user's session row. Deleting an absent row is fine.
func (s *Store) EndSession(ctx context.Context, userID int64) error {
	return s.db.WithContext(ctx).Delete(&model.SupportSession{}, "user_id = ?", userID).Error
}

// LogStart appends a start event.
func (s *Store) LogStart(ctx context.Context, userID int64) error {
	return s.db.WithContext(ctx).Create(&model.StartEvent{UserID: userID, StartedAt: s.now().UTC()}).Error
}

// CountStartsBetween counts start events in [from, to); used by the digest only.
func (s *Store) CountStartsBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.StartEvent{}).
		Where("started_at >= ? AND started_at < ?", from, to).
		Count(&n).Error
	return n, err
}

// PurgeStaleSessions deletes session rows outside the freshness window.
// Correctness never depends on this; ActiveSession filters at read time.
func (s *Store) PurgeStaleSessions(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-SessionFreshness)
	res := s.db.WithContext(ctx).Delete(&model.SupportSession{}, "last_activity < ?", cutoff)
	return res.RowsAffected, res.Error
}

// Fresh reports whether a session touched at last is still active at now.
func Fresh(last, now time.Time) bool {
	return now.Sub(last) <= SessionFreshness
}
