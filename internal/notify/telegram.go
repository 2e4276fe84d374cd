package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/ilindan-dev/order-notifier/internal/config"
	"github.com/ilindan-dev/order-notifier/internal/domain/model"
	"github.com/rs/zerolog"
)

// Ensure TelegramSender implements the interface
var _ Sender = (*TelegramSender)(nil)

// TelegramSender delivers notifications via the Telegram Bot API.
type TelegramSender struct {
	bot    *tgbotapi.BotAPI
	logger zerolog.Logger
}

// NewTelegramSender creates a new instance of TelegramSender.
func NewTelegramSender(cfg config.TelegramConfig, logger *zerolog.Logger) (*TelegramSender, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot api: %w", err)
	}
	return &TelegramSender{
		bot:    bot,
		logger: logger.With().Str("component", "telegram_sender").Logger(),
	}, nil
}

// SendMessage implements the Sender interface for plain text messages.
func (s *TelegramSender) SendMessage(ctx context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	return s.request(ctx, msg)
}

// SendReceipt implements the Sender interface for receipt attachments.
// Images go through sendPhoto; PDFs and anything unrecognized go through
// sendDocument. The message rides along as the caption.
func (s *TelegramSender) SendReceipt(ctx context.Context, chatID int64, receipt *model.Receipt, caption string) error {
	file := tgbotapi.FileBytes{Name: receipt.Filename, Bytes: receipt.Data}

	var msg tgbotapi.Chattable
	if classifyReceipt(receipt.Filename, receipt.ContentType) == receiptImage {
		photo := tgbotapi.NewPhoto(chatID, file)
		photo.Caption = caption
		photo.ParseMode = tgbotapi.ModeMarkdown
		msg = photo
	} else {
		doc := tgbotapi.NewDocument(chatID, file)
		doc.Caption = caption
		doc.ParseMode = tgbotapi.ModeMarkdown
		msg = doc
	}

	return s.request(ctx, msg)
}

// request executes the API call in a goroutine so the context deadline
// bounds the wall-clock time of the send; tgbotapi itself has no context
// support. A deadline hit is reported as the context error.
func (s *TelegramSender) request(ctx context.Context, c tgbotapi.Chattable) error {
	done := make(chan error, 1)
	go func() {
		_, err := s.bot.Request(c)
		done <- err
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}
