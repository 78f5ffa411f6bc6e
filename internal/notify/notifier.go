package notify

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"trade_desk/internal/confirm"
	"trade_desk/pkg/logger"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier shows toast-like outcomes and presents confirmation prompts.
// Prompt only presents the question; the answer arrives through Pending.Confirm/Decline.
type Notifier interface {
	Success(msg string)
	Failure(msg string)
	Prompt(ctx context.Context, p *confirm.Pending) error
}

const (
	verbConfirm = "CONF"
	verbReject  = "REJ"
)

// Telegram sends notifications to one chat and resolves prompts from inline-keyboard callbacks.
type Telegram struct {
	bot    *tgbot.BotAPI
	chatID int64
	broker *confirm.Broker

	mu       sync.Mutex
	messages map[string]int // pending id -> prompt message id
}

func NewTelegram(token string, chatID int64, broker *confirm.Broker) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Telegram{
		bot:      b,
		chatID:   chatID,
		broker:   broker,
		messages: make(map[string]int),
	}, nil
}

func (t *Telegram) send(msg string) {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return
	}
	if _, err := t.bot.Send(tgbot.NewMessage(t.chatID, msg)); err != nil {
		logger.Error("telegram send: %v", err)
	}
}

func (t *Telegram) Success(msg string) { t.send("✅ " + msg) }
func (t *Telegram) Failure(msg string) { t.send("❌ " + msg) }

// Prompt posts the question with "Yes, Delete" / "Cancel" buttons.
// The message is updated once the decision settles, whichever way.
func (t *Telegram) Prompt(ctx context.Context, p *confirm.Pending) error {
	btnYes := tgbot.NewInlineKeyboardButtonData("Yes, Delete", verbConfirm+"::"+p.ID)
	btnNo := tgbot.NewInlineKeyboardButtonData("Cancel", verbReject+"::"+p.ID)
	kb := tgbot.NewInlineKeyboardMarkup(tgbot.NewInlineKeyboardRow(btnYes, btnNo))

	msg := tgbot.NewMessage(t.chatID, "⚠️ "+p.Prompt)
	msg.ReplyMarkup = kb

	sent, err := t.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("send prompt: %w", err)
	}

	t.mu.Lock()
	t.messages[p.ID] = sent.MessageID
	t.mu.Unlock()

	go func() {
		<-p.Done()
		t.mu.Lock()
		msgID := t.messages[p.ID]
		delete(t.messages, p.ID)
		t.mu.Unlock()

		status := "⛔️ Cancelled"
		if p.Accepted() {
			status = "✅ Confirmed"
		}
		_ = t.editReplyMarkupRemove(t.chatID, msgID)
		_ = t.editText(t.chatID, msgID, fmt.Sprintf("%s\n\n%s", p.Prompt, status))
	}()
	return nil
}

// HandleCallback must be called from Start for every callback_query.
func (t *Telegram) HandleCallback(cb *tgbot.CallbackQuery) {
	if t == nil || t.bot == nil || cb == nil {
		return
	}

	// stops the client-side spinner
	_, _ = t.bot.Request(tgbot.NewCallback(cb.ID, ""))

	verb, id, ok := parseCallbackData(cb.Data)
	if !ok {
		return
	}
	if !t.broker.Resolve(id, verb == verbConfirm) {
		logger.Debug("telegram callback for unknown prompt %s", id)
	}
}

// parseCallbackData splits "CONF::<id>" / "REJ::<id>".
func parseCallbackData(data string) (verb, id string, ok bool) {
	verb, id, found := strings.Cut(data, "::")
	if !found || id == "" {
		return "", "", false
	}
	switch verb {
	case verbConfirm, verbReject:
		return verb, id, true
	default:
		return "", "", false
	}
}

func (t *Telegram) editReplyMarkupRemove(chatID int64, msgID int) error {
	rm := tgbot.InlineKeyboardMarkup{InlineKeyboard: [][]tgbot.InlineKeyboardButton{}}
	edit := tgbot.NewEditMessageReplyMarkup(chatID, msgID, rm)
	_, err := t.bot.Request(edit)
	return err
}

func (t *Telegram) editText(chatID int64, msgID int, text string) error {
	edit := tgbot.NewEditMessageText(chatID, msgID, text)
	_, err := t.bot.Request(edit)
	return err
}

// Start long-polls callback queries until ctx is done.
func (t *Telegram) Start(ctx context.Context) error {
	if t == nil || t.bot == nil {
		return nil
	}

	u := tgbot.NewUpdate(0)
	u.Timeout = 30
	u.AllowedUpdates = []string{"callback_query"}

	updates := t.bot.GetUpdatesChan(u)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case upd, ok := <-updates:
				if !ok {
					return
				}
				if upd.CallbackQuery != nil {
					t.HandleCallback(upd.CallbackQuery)
				}
			}
		}
	}()
	return nil
}

func (t *Telegram) Stop() {
	if t == nil || t.bot == nil {
		return
	}
	t.bot.StopReceivingUpdates()
}

// Console prints notifications and asks for confirmation on a terminal.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

func (c *Console) Success(msg string) { fmt.Fprintln(c.out, "✅ "+msg) }
func (c *Console) Failure(msg string) { fmt.Fprintln(c.out, "❌ "+msg) }

// Prompt reads one line; "y" or "yes" confirms, anything else (EOF included) declines.
func (c *Console) Prompt(_ context.Context, p *confirm.Pending) error {
	fmt.Fprintf(c.out, "⚠️  %s [y/N]: ", p.Prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && err != io.EOF {
		p.Decline()
		return fmt.Errorf("read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		p.Confirm()
	default:
		p.Decline()
	}
	return nil
}

// Log writes notifications to the process log and declines every prompt.
// Used when no interactive surface is configured, so nothing destructive runs unattended.
type Log struct{}

func NewLog() *Log { return &Log{} }

func (Log) Success(msg string) { logger.Info("%s", msg) }
func (Log) Failure(msg string) { logger.Error("%s", msg) }
func (Log) Prompt(_ context.Context, p *confirm.Pending) error {
	logger.Warn("confirmation %q declined: no prompt surface configured", p.Prompt)
	p.Decline()
	return nil
}
