package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/socialhook/support-bot/internal/analytics"
	"github.com/socialhook/support-bot/internal/errs"
	"github.com/socialhook/support-bot/internal/telegram"
)

const (
	replyToTicketHint = "Please reply to a ticket message with /reply <text>."
	replyUsageHint    = "Usage: /reply <message to user>"
	ticketNotFoundMsg = "Couldn't find the ticket mapping. Please reply to the original ticket header."
)

// handleReply resolves an operator's contextual reply back to the
// originating user: /reply <text> sent as a reply to a ticket header.
func (b *Bot) handleReply(ctx context.Context, msg *telegram.Message, args string) error {
	// Silent no-op outside the operator chat.
	if msg.Chat == nil || msg.Chat.ID != b.adminChatID {
		return nil
	}
	if msg.ReplyToMessage == nil {
		return b.reply(ctx, msg, replyToTicketHint)
	}

	ticket, err := b.store.TicketByAdminMsgID(ctx, msg.ReplyToMessage.MessageID)
	if err != nil {
		if errors.Is(err, errs.ErrTicketNotFound) {
			return b.reply(ctx, msg, ticketNotFoundMsg)
		}
		return fmt.Errorf("ticket lookup: %w", err)
	}

	text := strings.TrimSpace(args)
	if text == "" {
		return b.reply(ctx, msg, replyUsageHint)
	}

	if _, err := b.api.SendMessage(ctx, telegram.SendMessageParams{
		ChatID: ticket.UserID,
		Text:   text,
	}); err != nil {
		return fmt.Errorf("deliver reply to user %d: %w", ticket.UserID, err)
	}

	return b.reply(ctx, msg, fmt.Sprintf("Sent to user %d.", ticket.UserID))
}

// handleStart restarts the top-level flow: both capture signals cleared, the
// start logged, analytics notified, main menu shown.
func (b *Bot) handleStart(ctx context.Context, msg *telegram.Message) error {
	if msg.From == nil || msg.Chat == nil {
		return nil
	}
	if err := b.exitCapture(ctx, msg.From.ID); err != nil {
		return err
	}
	if err := b.store.LogStart(ctx, msg.From.ID); err != nil {
		// Analytics-only row; the menu still has to come up.
		log.Printf("bot: log start for user %d: %v", msg.From.ID, err)
	}
	b.analytics.LogStartAsync(analytics.StartPayload{
		UserID:    msg.From.ID,
		Username:  msg.From.Username,
		StartedAt: time.Now().UTC(),
	})
	_, err := b.api.SendMessage(ctx, telegram.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        welcomeText,
		ReplyMarkup: mainMenuKeyboard(),
	})
	return err
}

// handleEndSupport explicitly ends the caller's capture session.
func (b *Bot) handleEndSupport(ctx context.Context, msg *telegram.Message) error {
	if msg.From == nil || msg.Chat == nil {
		return nil
	}
	if err := b.exitCapture(ctx, msg.From.ID); err != nil {
		return err
	}
	return b.reply(ctx, msg, endSupportText)
}

// handleID reports the caller's private chat id (operator onboarding helper).
func (b *Bot) handleID(ctx context.Context, msg *telegram.Message) error {
	if msg.Chat == nil {
		return nil
	}
	if msg.Chat.Type == "private" {
		return b.reply(ctx, msg, fmt.Sprintf("Your chat_id is: %d", msg.Chat.ID))
	}
	return b.reply(ctx, msg, "Please DM me /id to receive your private chat_id.")
}

func (b *Bot) reply(ctx context.Context, to *telegram.Message, text string) error {
	_, err := b.api.SendMessage(ctx, telegram.SendMessageParams{
		ChatID: to.Chat.ID,
		Text:   text,
	})
	return err
}
