package notify

import (
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// failureKind is the outcome of classifying a delivery error.
type failureKind int

const (
	// failureTransient covers everything that may succeed next time:
	// timeouts, rate limits, malformed requests, unknown errors.
	failureTransient failureKind = iota
	// failureInvalidRecipient means the chat id does not correspond to any
	// reachable endpoint.
	failureInvalidRecipient
	// failureBlocked means the recipient blocked the bot or was deactivated.
	failureBlocked
)

// Fixed phrase sets scanned against the provider's error description.
// The Bot API reports permanently-unreachable recipients only through
// wording, not through a dedicated code, so text matching is the primary
// signal here.
var (
	invalidRecipientPhrases = []string{
		"chat not found",
		"user not found",
		"receiver not found",
		"chat_id is empty",
		"peer_id_invalid",
	}
	blockedPhrases = []string{
		"blocked",
		"bot blocked",
		"bot was blocked",
		"user is deactivated",
	}
)

// classifyDeliveryError inspects a failed Telegram send and reports
// whether the recipient is permanently unreachable, plus a human label
// for diagnostics. The numeric error code never changes the kind, it
// only refines the label.
func classifyDeliveryError(err error) (failureKind, string) {
	var tgErr *tgbotapi.Error
	if !errors.As(err, &tgErr) {
		return failureTransient, "неизвестная ошибка"
	}

	desc := strings.ToLower(tgErr.Message)
	for _, phrase := range invalidRecipientPhrases {
		if strings.Contains(desc, phrase) {
			return failureInvalidRecipient, "невалидный пользователь"
		}
	}
	for _, phrase := range blockedPhrases {
		if strings.Contains(desc, phrase) {
			return failureBlocked, "пользователь заблокировал бота"
		}
	}

	switch tgErr.Code {
	case 429:
		return failureTransient, "rate limit (слишком много запросов)"
	case 400:
		return failureTransient, "неверный запрос"
	case 403:
		return failureTransient, "доступ запрещен"
	default:
		return failureTransient, "неизвестная ошибка"
	}
}
