package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/ilindan-dev/order-notifier/internal/config"
	"github.com/ilindan-dev/order-notifier/internal/domain/model"
	repo "github.com/ilindan-dev/order-notifier/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSender records deliveries and fails on command. It is exercised
// concurrently by the fan-out, so every field is guarded.
type fakeSender struct {
	mu sync.Mutex

	messages        map[int64]int // chat id -> text sends
	receipts        map[int64]int // chat id -> receipt sends
	failMessageFor  map[int64]error
	failReceiptFor  map[int64]error
	failAllMessages error
}

func newFakeSender() *fakeSender {
	return &fakeSender{
		messages:       make(map[int64]int),
		receipts:       make(map[int64]int),
		failMessageFor: make(map[int64]error),
		failReceiptFor: make(map[int64]error),
	}
}

func (f *fakeSender) SendMessage(_ context.Context, chatID int64, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages[chatID]++
	if f.failAllMessages != nil {
		return f.failAllMessages
	}
	return f.failMessageFor[chatID]
}

func (f *fakeSender) SendReceipt(_ context.Context, chatID int64, _ *model.Receipt, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.receipts[chatID]++
	return f.failReceiptFor[chatID]
}

func (f *fakeSender) messageCount(chatID int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.messages[chatID]
}

func (f *fakeSender) receiptCount(chatID int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.receipts[chatID]
}

// fakeRegistry simulates the customer store: deleting a present entry
// succeeds once, deleting an absent one is a no-op.
type fakeRegistry struct {
	mu      sync.Mutex
	entries map[int64]bool
	deletes []int64
	err     error
}

func (f *fakeRegistry) DeleteByChatID(_ context.Context, chatID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	f.deletes = append(f.deletes, chatID)
	if f.entries[chatID] {
		delete(f.entries, chatID)
		return true, nil
	}
	return false, nil
}

type fakeCatalog struct {
	products map[string]*model.Product
	err      error
}

func (f *fakeCatalog) GetByID(_ context.Context, id string) (*model.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.products[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return p, nil
}

type fakeReceiptStore struct {
	receipt *model.Receipt
	err     error
}

func (f *fakeReceiptStore) GetByID(_ context.Context, _ string) (*model.Receipt, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.receipt, nil
}

func newTestService(sender Sender, admins []int64, receipts repo.ReceiptStore, catalog repo.ProductCatalog, customers repo.CustomerRegistry) *Service {
	cfg := &config.Config{}
	cfg.Notifiers.Telegram.AdminChatIDs = admins
	logger := zerolog.Nop()
	return NewService(cfg, sender, receipts, catalog, customers, &logger)
}

func TestNotifyAdminsNewOrder_FanOut(t *testing.T) {
	t.Parallel()

	sender := newFakeSender()
	admins := []int64{1, 2, 3, 4, 5}
	svc := newTestService(sender, admins, nil, nil, nil)

	svc.NotifyAdminsNewOrder(context.Background(), &model.Order{ID: "order-1"})

	for _, chatID := range admins {
		assert.Equal(t, 1, sender.messageCount(chatID), "admin %d should receive exactly one message", chatID)
	}
}

func TestNotifyAdminsNewOrder_PartialFailureDoesNotAbortBatch(t *testing.T) {
	t.Parallel()

	sender := newFakeSender()
	sender.failMessageFor[2] = errors.New("boom")
	sender.failMessageFor[4] = errors.New("boom")
	admins := []int64{1, 2, 3, 4, 5}
	svc := newTestService(sender, admins, nil, nil, nil)

	svc.NotifyAdminsNewOrder(context.Background(), &model.Order{ID: "order-1"})

	// Every admin is still attempted despite two simulated failures.
	for _, chatID := range admins {
		assert.Equal(t, 1, sender.messageCount(chatID))
	}
}

func TestNotifyAdminsNewOrder_DisabledIsNoOp(t *testing.T) {
	t.Parallel()

	t.Run("nil sender", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(nil, []int64{1}, nil, nil, nil)
		// Must not panic.
		svc.NotifyAdminsNewOrder(context.Background(), &model.Order{ID: "order-1"})
	})

	t.Run("empty admin list", func(t *testing.T) {
		t.Parallel()
		sender := newFakeSender()
		svc := newTestService(sender, nil, nil, nil, nil)
		svc.NotifyAdminsNewOrder(context.Background(), &model.Order{ID: "order-1"})
		assert.Empty(t, sender.messages)
	})
}

func TestNotifyAdminOrderAccepted_ReceiptWithTextFallback(t *testing.T) {
	t.Parallel()

	receipt := &model.Receipt{Data: []byte("img"), Filename: "receipt.jpg"}
	store := &fakeReceiptStore{receipt: receipt}

	sender := newFakeSender()
	sender.failReceiptFor[2] = errors.New("upload failed")
	admins := []int64{1, 2}
	svc := newTestService(sender, admins, store, nil, nil)

	svc.NotifyAdminOrderAccepted(context.Background(), &model.Order{ID: "order-1", ReceiptFileID: "abc"})

	// Admin 1: receipt delivered, no text fallback needed.
	assert.Equal(t, 1, sender.receiptCount(1))
	assert.Equal(t, 0, sender.messageCount(1))

	// Admin 2: receipt failed, text fallback sent.
	assert.Equal(t, 1, sender.receiptCount(2))
	assert.Equal(t, 1, sender.messageCount(2))
}

func TestNotifyAdminOrderAccepted_ReceiptFetchFailureDegradesToText(t *testing.T) {
	t.Parallel()

	store := &fakeReceiptStore{err: errors.New("gridfs down")}
	sender := newFakeSender()
	svc := newTestService(sender, []int64{1}, store, nil, nil)

	svc.NotifyAdminOrderAccepted(context.Background(), &model.Order{ID: "order-1", ReceiptFileID: "abc"})

	assert.Equal(t, 0, sender.receiptCount(1))
	assert.Equal(t, 1, sender.messageCount(1))
}

func TestNotifyCustomerOrderStatus_PrunesBlockedRecipient(t *testing.T) {
	t.Parallel()

	sender := newFakeSender()
	sender.failAllMessages = &tgbotapi.Error{Code: 403, Message: "Forbidden: bot was blocked by the user"}
	registry := &fakeRegistry{entries: map[int64]bool{42: true}}
	svc := newTestService(sender, nil, nil, nil, registry)

	svc.NotifyCustomerOrderStatus(context.Background(), &model.Order{ID: "order-1", CustomerChatID: 42, Status: model.StatusAccepted})

	require.Len(t, registry.deletes, 1)
	assert.Equal(t, int64(42), registry.deletes[0])
}

func TestNotifyCustomerOrderStatus_RateLimitDoesNotPrune(t *testing.T) {
	t.Parallel()

	sender := newFakeSender()
	sender.failAllMessages = &tgbotapi.Error{Code: 429, Message: "Too Many Requests"}
	registry := &fakeRegistry{entries: map[int64]bool{42: true}}
	svc := newTestService(sender, nil, nil, nil, registry)

	svc.NotifyCustomerOrderStatus(context.Background(), &model.Order{ID: "order-1", CustomerChatID: 42, Status: model.StatusAccepted})

	assert.Empty(t, registry.deletes)
}

func TestNotifyCustomerOrderStatus_SecondPruneIsNoOp(t *testing.T) {
	t.Parallel()

	sender := newFakeSender()
	sender.failAllMessages = &tgbotapi.Error{Code: 400, Message: "Bad Request: chat not found"}
	registry := &fakeRegistry{entries: map[int64]bool{42: true}}
	svc := newTestService(sender, nil, nil, nil, registry)

	order := &model.Order{ID: "order-1", CustomerChatID: 42, Status: model.StatusNew}
	svc.NotifyCustomerOrderStatus(context.Background(), order)
	// The entry is gone now; a duplicate notification must not blow up.
	svc.NotifyCustomerOrderStatus(context.Background(), order)

	assert.Len(t, registry.deletes, 2)
}

func TestNotifyCustomerOrderStatus_RegistryFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	sender := newFakeSender()
	sender.failAllMessages = &tgbotapi.Error{Code: 403, Message: "Forbidden: bot was blocked by the user"}
	registry := &fakeRegistry{err: errors.New("mongo down")}
	svc := newTestService(sender, nil, nil, nil, registry)

	// Must not panic or propagate.
	svc.NotifyCustomerOrderStatus(context.Background(), &model.Order{ID: "order-1", CustomerChatID: 42, Status: model.StatusNew})
}

func TestResolveItems_BackfillsVariantName(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{products: map[string]*model.Product{
		"p1": {
			ID:   "p1",
			Name: "Торт",
			Variants: []model.ProductVariant{
				{ID: "v1", Name: "Ванильный"},
				{ID: "v2", Name: "Шоколадный"},
			},
		},
	}}
	svc := newTestService(newFakeSender(), []int64{1}, nil, catalog, nil)

	details := svc.resolveItems(context.Background(), []model.LineItem{
		{ProductID: "p1", VariantID: "v2", ProductName: "Торт", Quantity: 1},
	})

	require.Len(t, details, 1)
	assert.Equal(t, "Шоколадный", details[0].variant)
}

func TestResolveItems_LookupFailureLeavesVariantBlank(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{err: errors.New("catalog unavailable")}
	svc := newTestService(newFakeSender(), []int64{1}, nil, catalog, nil)

	details := svc.resolveItems(context.Background(), []model.LineItem{
		{ProductID: "p1", VariantID: "v2", ProductName: "Торт", Quantity: 2},
	})

	require.Len(t, details, 1)
	assert.Empty(t, details[0].variant)
	assert.Equal(t, "Торт", details[0].name)
}

func TestResolveItems_MissingNameFallsBack(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeSender(), []int64{1}, nil, nil, nil)

	details := svc.resolveItems(context.Background(), []model.LineItem{{Quantity: 1}})

	require.Len(t, details, 1)
	assert.Equal(t, fallbackProductName, details[0].name)
}
