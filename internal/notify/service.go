package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ilindan-dev/order-notifier/internal/config"
	"github.com/ilindan-dev/order-notifier/internal/domain/model"
	repo "github.com/ilindan-dev/order-notifier/internal/domain/repository"
	"github.com/rs/zerolog"
)

const (
	// adminSendTimeout bounds the whole concurrent admin batch.
	adminSendTimeout = 30 * time.Second
	// customerSendTimeout bounds the single customer send.
	customerSendTimeout = 10 * time.Second

	// fallbackProductName is shown when a line item arrives without a name.
	fallbackProductName = "Товар"
)

// Service is the notification dispatch core. Its public operations never
// return errors: delivery is best-effort and outcomes are communicated
// through logs only, so a notification failure can never fail the order
// flow that triggered it.
type Service struct {
	sender    Sender
	admins    []int64
	receipts  repo.ReceiptStore
	catalog   repo.ProductCatalog
	customers repo.CustomerRegistry
	logger    zerolog.Logger
}

// NewService creates a new notification dispatch service.
// A nil sender disables all notifications.
func NewService(
	cfg *config.Config,
	sender Sender,
	receipts repo.ReceiptStore,
	catalog repo.ProductCatalog,
	customers repo.CustomerRegistry,
	logger *zerolog.Logger,
) *Service {
	return &Service{
		sender:    sender,
		admins:    cfg.Notifiers.Telegram.AdminChatIDs,
		receipts:  receipts,
		catalog:   catalog,
		customers: customers,
		logger:    logger.With().Str("layer", "notify_service").Logger(),
	}
}

// NotifyAdminsNewOrder sends the terse new-order ping to every configured
// administrator. No sender or an empty admin list is a silent no-op.
func (s *Service) NotifyAdminsNewOrder(ctx context.Context, order *model.Order) {
	if s.sender == nil || len(s.admins) == 0 {
		return
	}
	log := s.dispatchLogger(order.ID)

	message := composeNewOrderAlert(order.ID)
	s.fanOut(ctx, log, message, nil)
}

// NotifyAdminOrderAccepted sends the full accepted-order notification,
// with the itemized list, money lines and the receipt attachment when one
// can be resolved, to every configured administrator.
func (s *Service) NotifyAdminOrderAccepted(ctx context.Context, order *model.Order) {
	if s.sender == nil || len(s.admins) == 0 {
		return
	}
	log := s.dispatchLogger(order.ID)

	items := s.resolveItems(ctx, order.Items)
	message := composeAcceptedAlert(order, items)
	receipt := s.fetchReceipt(ctx, order.ReceiptFileID)

	s.fanOut(ctx, log, message, receipt)
}

// NotifyCustomerOrderStatus sends the status-change message to the
// customer who owns the order. A failed send is classified: permanently
// unreachable recipients are pruned from the customer registry, anything
// transient is only logged.
func (s *Service) NotifyCustomerOrderStatus(ctx context.Context, order *model.Order) {
	if s.sender == nil {
		return
	}
	log := s.dispatchLogger(order.ID)

	message := composeCustomerStatus(order)

	ctx, cancel := context.WithTimeout(ctx, customerSendTimeout)
	defer cancel()

	err := s.sender.SendMessage(ctx, order.CustomerChatID, message)
	if err == nil {
		return
	}

	kind, label := classifyDeliveryError(err)
	log.Warn().
		Err(err).
		Int64("chat_id", order.CustomerChatID).
		Str("status", string(order.Status)).
		Str("error_type", label).
		Msg("failed to send customer notification")

	if kind == failureTransient || s.customers == nil {
		return
	}

	deleted, delErr := s.customers.DeleteByChatID(ctx, order.CustomerChatID)
	if delErr != nil {
		log.Error().Err(delErr).Int64("chat_id", order.CustomerChatID).Msg("failed to remove unreachable customer from registry")
		return
	}
	if deleted {
		log.Info().Int64("chat_id", order.CustomerChatID).Str("reason", label).Msg("removed unreachable customer from registry")
	}
}

// fanOut delivers one message to all admins concurrently and reports
// failures as a single aggregate line, so a partial outage does not flood
// the log with one error per recipient.
func (s *Service) fanOut(ctx context.Context, log zerolog.Logger, message string, receipt *model.Receipt) {
	ctx, cancel := context.WithTimeout(ctx, adminSendTimeout)
	defer cancel()

	results := make([]bool, len(s.admins))
	var wg sync.WaitGroup
	for i, chatID := range s.admins {
		wg.Add(1)
		go func(i int, chatID int64) {
			defer wg.Done()
			results[i] = s.deliver(ctx, log, chatID, message, receipt)
		}(i, chatID)
	}
	wg.Wait()

	failed := 0
	for _, ok := range results {
		if !ok {
			failed++
		}
	}
	if failed > 0 {
		log.Error().Int("failed", failed).Int("admins", len(s.admins)).Msg("failed to deliver admin notification")
	}
}

// deliver sends to a single recipient. The receipt attempt, when there is
// one, always precedes the text fallback; the recipient counts as reached
// if either call succeeds.
func (s *Service) deliver(ctx context.Context, log zerolog.Logger, chatID int64, message string, receipt *model.Receipt) bool {
	if receipt != nil {
		err := s.sender.SendReceipt(ctx, chatID, receipt, message)
		if err == nil {
			return true
		}
		log.Debug().Err(err).Int64("chat_id", chatID).Msg("receipt send failed, falling back to text")
	}

	if err := s.sender.SendMessage(ctx, chatID, message); err != nil {
		log.Debug().Err(err).Int64("chat_id", chatID).Msg("text send failed")
		return false
	}
	return true
}

// resolveItems prepares line items for display. Items that arrive without
// a variant name but with both product and variant ids get the name
// backfilled from the catalog; every lookup failure is swallowed and
// leaves the name blank.
func (s *Service) resolveItems(ctx context.Context, items []model.LineItem) []itemDetail {
	details := make([]itemDetail, 0, len(items))
	for _, item := range items {
		name := item.ProductName
		variant := item.VariantName

		if variant == "" && item.VariantID != "" && item.ProductID != "" && s.catalog != nil {
			if product, err := s.catalog.GetByID(ctx, item.ProductID); err == nil {
				for _, v := range product.Variants {
					if v.ID == item.VariantID {
						variant = v.Name
						break
					}
				}
				if name == "" {
					name = product.Name
				}
			}
		}

		if name == "" {
			name = fallbackProductName
		}

		details = append(details, itemDetail{name: name, variant: variant, qty: item.Quantity})
	}
	return details
}

// dispatchLogger tags every log line of one dispatch with a correlation id.
func (s *Service) dispatchLogger(orderID string) zerolog.Logger {
	return s.logger.With().
		Str("dispatch_id", uuid.NewString()).
		Str("order_id", orderID).
		Logger()
}
