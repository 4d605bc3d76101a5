package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/socialhook/support-bot/internal/model"
	"github.com/socialhook/support-bot/internal/telegram"
)

// ticketHeader formats the message delivered to the operator chat. Prefers
// the public @handle, falls back to the display name, always carries the
// numeric id so replies are attributable even if the user renames.
func ticketHeader(section string, from *telegram.User, text string) string {
	name := "Unknown"
	id := "unknown"
	if from != nil {
		if from.Username != "" {
			name = "@" + from.Username
		} else {
			name = from.FullName()
		}
		id = fmt.Sprintf("%d", from.ID)
	}
	return fmt.Sprintf("[%s] From %s (id %s):\n%s", section, name, id, text)
}

// relayCapturedText forwards a captured message to the operator chat,
// persists the ticket keyed by the delivered message id, and acknowledges to
// the user. Delivery is strictly ordered before the write; a failure at any
// step aborts the rest with no user-visible error.
func (b *Bot) relayCapturedText(ctx context.Context, section string, msg *telegram.Message) error {
	header := ticketHeader(section, msg.From, msg.Text)
	delivered, err := b.api.SendMessage(ctx, telegram.SendMessageParams{
		ChatID: b.adminChatID,
		Text:   header,
	})
	if err != nil {
		return fmt.Errorf("deliver header: %w", err)
	}

	ticketID, err := b.store.SaveTicket(ctx, msg.From.ID, section, delivered.MessageID)
	if err != nil {
		return fmt.Errorf("save ticket (admin_msg_id=%d): %w", delivered.MessageID, err)
	}

	b.produceTicketCreated(&model.Ticket{
		TicketID:   ticketID,
		UserID:     msg.From.ID,
		Section:    section,
		AdminMsgID: delivered.MessageID,
		Status:     model.TicketStatusOpen,
	})

	_, err = b.api.SendMessage(ctx, telegram.SendMessageParams{
		ChatID:           msg.Chat.ID,
		Text:             ackText,
		ReplyToMessageID: msg.MessageID,
	})
	if err != nil {
		return fmt.Errorf("acknowledge: %w", err)
	}
	return nil
}

func (b *Bot) produceTicketCreated(t *model.Ticket) {
	if b.producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	b.producer.ProduceTicketEvent(ctx, "ticket.created", t)
}

// handleUserText is the capture path for inbound free text: private chats
// only, capture mode only, everything else silently left to menu navigation.
func (b *Bot) handleUserText(ctx context.Context, msg *telegram.Message) error {
	if msg.Chat == nil || msg.Chat.Type != "private" || msg.From == nil {
		return nil
	}
	section, err := b.captureSection(ctx, msg.From.ID)
	if err != nil {
		return err
	}
	if section == "" {
		return nil
	}
	// An empty body is still relayed; the header alone is the ticket content.
	return b.relayCapturedText(ctx, section, msg)
}
