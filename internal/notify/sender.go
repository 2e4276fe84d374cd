package notify

import (
	"context"

	"github.com/ilindan-dev/order-notifier/internal/config"
	"github.com/ilindan-dev/order-notifier/internal/domain/model"
	"github.com/rs/zerolog"
)

// Sender defines the interface for the delivery calls to the messaging
// provider. This keeps the dispatch logic independent of the transport
// and lets development environments run without a bot token.
type Sender interface {
	// SendMessage delivers a plain text message to a chat.
	SendMessage(ctx context.Context, chatID int64, text string) error

	// SendReceipt delivers a receipt file with the message as its caption.
	SendReceipt(ctx context.Context, chatID int64, receipt *model.Receipt, caption string) error
}

// NewSender picks the Sender implementation from the configuration mode.
// Outside production every send is logged instead of delivered; in
// production a missing bot token yields a nil Sender, which the Service
// treats as "notifications disabled".
func NewSender(cfg *config.Config, logger *zerolog.Logger) (Sender, error) {
	log := logger.With().Str("component", "sender").Logger()

	if cfg.Notifiers.Mode != "production" {
		log.Info().Str("mode", cfg.Notifiers.Mode).Msg("telegram sends are logged only")
		return NewLogSender(logger), nil
	}

	if cfg.Notifiers.Telegram.BotToken == "" {
		log.Warn().Msg("no telegram bot token configured, notifications disabled")
		return nil, nil
	}

	return NewTelegramSender(cfg.Notifiers.Telegram, logger)
}

// LogSender is a mock sender that logs deliveries instead of performing
// them. Useful for development and tests.
type LogSender struct {
	logger zerolog.Logger
}

// NewLogSender creates a new instance of LogSender.
func NewLogSender(logger *zerolog.Logger) *LogSender {
	return &LogSender{
		logger: logger.With().Str("component", "log_sender").Logger(),
	}
}

// SendMessage implements the Sender interface.
func (s *LogSender) SendMessage(_ context.Context, chatID int64, text string) error {
	s.logger.Info().
		Int64("chat_id", chatID).
		Str("text", text).
		Msg(">>> MOCK SEND: text message dispatched")
	return nil
}

// SendReceipt implements the Sender interface.
func (s *LogSender) SendReceipt(_ context.Context, chatID int64, receipt *model.Receipt, caption string) error {
	s.logger.Info().
		Int64("chat_id", chatID).
		Str("filename", receipt.Filename).
		Int("size", len(receipt.Data)).
		Str("caption", caption).
		Msg(">>> MOCK SEND: receipt dispatched")
	return nil
}
