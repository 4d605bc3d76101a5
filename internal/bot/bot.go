package bot

import (
	"context"
	"log"
	"strings"
	"time"
	"unicode"

	"github.com/socialhook/support-bot/internal/analytics"
	"github.com/socialhook/support-bot/internal/kafka"
	"github.com/socialhook/support-bot/internal/model"
	"github.com/socialhook/support-bot/internal/telegram"
)

// API is the outbound messaging capability the bot consumes.
type API interface {
	SendMessage(ctx context.Context, p telegram.SendMessageParams) (*telegram.Message, error)
	EditMessageText(ctx context.Context, p telegram.EditMessageTextParams) error
	AnswerCallbackQuery(ctx context.Context, callbackQueryID string) error
}

// Store is the durable store contract (implemented by internal/store).
type Store interface {
	SaveTicket(ctx context.Context, userID int64, section string, adminMsgID int64) (int64, error)
	TicketByAdminMsgID(ctx context.Context, adminMsgID int64) (*model.Ticket, error)
	StartOrRefreshSession(ctx context.Context, userID int64, section string) error
	ActiveSession(ctx context.Context, userID int64) (string, error)
	EndSession(ctx context.Context, userID int64) error
	LogStart(ctx context.Context, userID int64) error
}

// StartLogger is the best-effort analytics capability.
type StartLogger interface {
	LogStartAsync(p analytics.StartPayload)
}

// Poller pulls updates (long polling mode).
type Poller interface {
	GetUpdates(ctx context.Context, offset int64, timeoutSec int) ([]telegram.Update, error)
}

type Bot struct {
	api         API
	store       Store
	analytics   StartLogger
	producer    kafka.TicketEventProducer
	adminChatID int64
	flags       *sectionFlags
}

type Deps struct {
	API         API
	Store       Store
	Analytics   StartLogger
	Producer    kafka.TicketEventProducer
	AdminChatID int64
}

func New(deps Deps) *Bot {
	return &Bot{
		api:         deps.API,
		store:       deps.Store,
		analytics:   deps.Analytics,
		producer:    deps.Producer,
		adminChatID: deps.AdminChatID,
		flags:       newSectionFlags(),
	}
}

// Dispatch handles one update in its own goroutine. A panic or error in a
// handler is logged and never takes down the dispatcher or other in-flight
// updates.
func (b *Bot) Dispatch(upd telegram.Update) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("bot: panic handling update %d: %v", upd.UpdateID, r)
			}
		}()
		if err := b.HandleUpdate(context.Background(), upd); err != nil {
			log.Printf("bot: update %d: %v", upd.UpdateID, err)
		}
	}()
}

// HandleUpdate routes one update synchronously.
func (b *Bot) HandleUpdate(ctx context.Context, upd telegram.Update) error {
	switch {
	case upd.CallbackQuery != nil:
		return b.handleCallback(ctx, upd.CallbackQuery)
	case upd.Message != nil:
		return b.handleMessage(ctx, upd.Message)
	}
	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *telegram.Message) error {
	if msg.Chat == nil || (msg.From != nil && msg.From.IsBot) {
		return nil
	}
	if cmd, args, ok := parseCommand(msg.Text); ok {
		switch cmd {
		case "start":
			return b.handleStart(ctx, msg)
		case "id":
			return b.handleID(ctx, msg)
		case "reply":
			return b.handleReply(ctx, msg, args)
		case "endsupport":
			return b.handleEndSupport(ctx, msg)
		}
		// Unknown commands are ignored.
		return nil
	}
	return b.handleUserText(ctx, msg)
}

func (b *Bot) handleCallback(ctx context.Context, cq *telegram.CallbackQuery) error {
	// Answer first so the client stops its spinner even if navigation fails.
	if err := b.api.AnswerCallbackQuery(ctx, cq.ID); err != nil {
		log.Printf("bot: answer callback %s: %v", cq.ID, err)
	}
	if cq.Message == nil || cq.Message.Chat == nil || cq.From == nil {
		return nil
	}

	edit := func(text string, kb *telegram.InlineKeyboardMarkup) error {
		return b.api.EditMessageText(ctx, telegram.EditMessageTextParams{
			ChatID:      cq.Message.Chat.ID,
			MessageID:   cq.Message.MessageID,
			Text:        text,
			ReplyMarkup: kb,
		})
	}

	switch cq.Data {
	case cbMainAgency:
		return edit(agencyMenuText, agencyMenuKeyboard())
	case cbMainCloaking:
		return edit(cloakingText, cloakingMenuKeyboard())
	case cbBackMain:
		// Root menu: leaving capture mode clears both signals.
		if err := b.exitCapture(ctx, cq.From.ID); err != nil {
			return err
		}
		return edit(welcomeText, mainMenuKeyboard())
	case cbBackAgency:
		return edit(agencyMenuText, agencyMenuKeyboard())
	case cbAgencyAbout:
		return edit(aboutText, backWithRegisterKeyboard())
	case cbAgencyHowTo:
		return edit(howToText, backWithRegisterKeyboard())
	case cbAgencyFAQ:
		return edit(faqText, backWithRegisterKeyboard())
	case cbAgencySched:
		if err := b.enterCapture(ctx, cq.From.ID, SectionSchedule); err != nil {
			return err
		}
		return edit(scheduleText, backWithRegisterKeyboard())
	case cbAgencySupp:
		if err := b.enterCapture(ctx, cq.From.ID, SectionSupport); err != nil {
			return err
		}
		return edit(supportText, backWithRegisterKeyboard())
	}
	// Unknown data: fall back to the menu it came from, keyed by namespace.
	if strings.HasPrefix(cq.Data, "agency:") || strings.HasPrefix(cq.Data, "nav:back:agency") {
		return edit(agencyMenuText, agencyMenuKeyboard())
	}
	return edit(welcomeText, mainMenuKeyboard())
}

// parseCommand splits "/cmd@BotName args" into ("cmd", "args", true). The
// command token ends at any whitespace, not just a space, so a newline after
// the command (shift-enter in Telegram clients) still parses.
func parseCommand(text string) (cmd, args string, ok bool) {
	if !strings.HasPrefix(text, "/") {
		return "", "", false
	}
	head := text[1:]
	if i := strings.IndexFunc(head, unicode.IsSpace); i >= 0 {
		head, args = head[:i], strings.TrimSpace(head[i:])
	}
	if i := strings.IndexByte(head, '@'); i >= 0 {
		head = head[:i]
	}
	if head == "" {
		return "", "", false
	}
	return head, args, true
}

// Poll long-polls updates until ctx is cancelled, dispatching each one
// concurrently. Transient poll errors back off briefly and keep going.
func (b *Bot) Poll(ctx context.Context, poller Poller) error {
	var offset int64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		updates, err := poller.GetUpdates(ctx, offset, 30)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("bot: get updates: %v", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(3 * time.Second):
			}
			continue
		}
		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			b.Dispatch(upd)
		}
	}
}
