package store_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/socialhook/support-bot/internal/database"
	"github.com/socialhook/support-bot/internal/errs"
	"github.com/socialhook/support-bot/internal/model"
	"github.com/socialhook/support-bot/internal/store"
)

func TestFreshWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if !store.Fresh(now.Add(-time.Minute), now) {
		t.Fatal("1m old should be fresh")
	}
	if !store.Fresh(now.Add(-store.SessionFreshness), now) {
		t.Fatal("exactly 24h should still be fresh")
	}
	if store.Fresh(now.Add(-store.SessionFreshness-time.Second), now) {
		t.Fatal("24h+1s should be stale")
	}
	if !store.Fresh(now, now) {
		t.Fatal("just-touched should be fresh")
	}
}

// Integration tests below need a real postgres; they resolve the DSN from
// SUPPORT_BOT_TEST_DSN and skip when unset.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	dsn := os.Getenv("SUPPORT_BOT_TEST_DSN")
	if dsn == "" {
		t.Skip("SUPPORT_BOT_TEST_DSN not set")
	}
	db, err := database.Open(dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.Ticket{}, &model.SupportSession{}, &model.StartEvent{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store.New(db)
}

func uniqueID(t *testing.T) int64 {
	t.Helper()
	return time.Now().UnixNano()
}

func TestSaveTicketRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	userID := uniqueID(t)
	adminMsgID := uniqueID(t) + 1
	id, err := s.SaveTicket(ctx, userID, "Talk To Support", adminMsgID)
	if err != nil {
		t.Fatalf("SaveTicket: %v", err)
	}
	if id == 0 {
		t.Fatal("expected assigned ticket id")
	}

	got, err := s.TicketByAdminMsgID(ctx, adminMsgID)
	if err != nil {
		t.Fatalf("TicketByAdminMsgID: %v", err)
	}
	if got.UserID != userID || got.Section != "Talk To Support" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.Status != model.TicketStatusOpen {
		t.Fatalf("expected open status, got %q", got.Status)
	}
}

func TestSaveTicketRejectsDuplicateAdminMsgID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	adminMsgID := uniqueID(t)
	if _, err := s.SaveTicket(ctx, 1, "Talk To Support", adminMsgID); err != nil {
		t.Fatalf("first SaveTicket: %v", err)
	}
	if _, err := s.SaveTicket(ctx, 2, "Talk To Support", adminMsgID); err == nil {
		t.Fatal("expected unique violation on duplicate admin_msg_id")
	}
}

func TestTicketLookupMiss(t *testing.T) {
	s := newTestStore(t)
	_, err := s.TicketByAdminMsgID(context.Background(), -uniqueID(t))
	if !errors.Is(err, errs.ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
}

func TestSessionUpsertKeepsOneRow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	userID := uniqueID(t)

	for i := 0; i < 3; i++ {
		if err := s.StartOrRefreshSession(ctx, userID, "Schedule a Call"); err != nil {
			t.Fatalf("StartOrRefreshSession %d: %v", i, err)
		}
	}
	section, err := s.ActiveSession(ctx, userID)
	if err != nil {
		t.Fatalf("ActiveSession: %v", err)
	}
	if section != "Schedule a Call" {
		t.Fatalf("expected Schedule a Call, got %q", section)
	}

	// Section replaced on refresh, same primary key.
	if err := s.StartOrRefreshSession(ctx, userID, "Talk To Support"); err != nil {
		t.Fatalf("refresh with new section: %v", err)
	}
	section, err = s.ActiveSession(ctx, userID)
	if err != nil {
		t.Fatalf("ActiveSession after refresh: %v", err)
	}
	if section != "Talk To Support" {
		t.Fatalf("expected Talk To Support, got %q", section)
	}
}

func TestEndSessionIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	userID := uniqueID(t)

	if err := s.StartOrRefreshSession(ctx, userID, "Talk To Support"); err != nil {
		t.Fatalf("StartOrRefreshSession: %v", err)
	}
	if err := s.EndSession(ctx, userID); err != nil {
		t.Fatalf("EndSession: %v", err)
	}
	if _, err := s.ActiveSession(ctx, userID); !errors.Is(err, errs.ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}
	// Absent row: still no error.
	if err := s.EndSession(ctx, userID); err != nil {
		t.Fatalf("EndSession on absent row: %v", err)
	}
}

func TestCountStartsBetween(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	userID := uniqueID(t)

	before := time.Now().UTC().Add(-time.Second)
	for i := 0; i < 2; i++ {
		if err := s.LogStart(ctx, userID); err != nil {
			t.Fatalf("LogStart: %v", err)
		}
	}
	n, err := s.CountStartsBetween(ctx, before, time.Now().UTC().Add(time.Second))
	if err != nil {
		t.Fatalf("CountStartsBetween: %v", err)
	}
	if n < 2 {
		t.Fatalf("expected at least 2 starts, got %d", n)
	}
}
