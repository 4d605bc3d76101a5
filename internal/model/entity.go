package model

import "time"

type TicketStatus string

const (
	TicketStatusOpen   TicketStatus = "open"
	TicketStatusClosed TicketStatus = "closed"
)

// Ticket links a header message delivered into the operator chat back to the
// user whose captured message it summarizes. AdminMsgID is the reverse-lookup
// key used when the operator replies.
type Ticket struct {
	TicketID   int64        `gorm:"column:ticket_id;primaryKey" json:"ticket_id"`
	UserID     int64        `gorm:"not null;index" json:"user_id"`
	Section    string       `gorm:"type:text;not null" json:"section"`
	AdminMsgID int64        `gorm:"column:admin_msg_id;not null;uniqueIndex" json:"admin_msg_id"`
	Status     TicketStatus `gorm:"type:text;not null;default:open" json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
}

func (Ticket) TableName() string { return "tickets" }

// SupportSession is the durable capture-mode record, one row per user.
// Staleness is evaluated at read time against LastActivity; a stale row
// lingers until overwritten or explicitly deleted.
type SupportSession struct {
	UserID       int64     `gorm:"primaryKey" json:"user_id"`
	Section      string    `gorm:"type:text;not null" json:"section"`
	StartedAt    time.Time `json:"started_at"`
	LastActivity time.Time `gorm:"not null" json:"last_activity"`
}

func (SupportSession) TableName() string { return "support_sessions" }

// StartEvent is an append-only record of a top-level /start; the core never
// reads it back, only the daily digest does.
type StartEvent struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null" json:"user_id"`
	StartedAt time.Time `json:"started_at"`
}

func (StartEvent) TableName() string { return "starts" }
