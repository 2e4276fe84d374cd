package notify

import (
	"strings"
	"testing"

	"github.com/ilindan-dev/order-notifier/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateOrderID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   string
		want string
	}{
		{"64f1c2d3e4a5b6c7d8e9f0a1", "e9f0a1"},
		{"abcdef", "abcdef"},
		{"abc", "abc"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TruncateOrderID(tt.id))
	}
}

func TestComposeNewOrderAlert(t *testing.T) {
	t.Parallel()

	msg := composeNewOrderAlert("64f1c2d3e4a5b6c7d8e9f0a1")

	assert.Contains(t, msg, "`e9f0a1`")
	assert.NotContains(t, msg, "64f1c2d3")
	// The new-order ping is deliberately terse: no customer or money data.
	assert.NotContains(t, msg, "₸")
	assert.NotContains(t, msg, "Адрес")

	// Same input, same output.
	assert.Equal(t, msg, composeNewOrderAlert("64f1c2d3e4a5b6c7d8e9f0a1"))
}

func TestComposeAcceptedAlert(t *testing.T) {
	t.Parallel()

	order := &model.Order{
		ID:              "order-123456",
		CustomerName:    "Айгерим",
		CustomerPhone:   "+7 700 000 00 00",
		DeliveryAddress: "пр. Абая 10/5",
		TotalAmount:     1500,
		Items: []model.LineItem{
			{ProductName: "Торт", Quantity: 2, Price: 500},
		},
		DeliveryTimeSlot: "13:00-14:00",
	}
	items := []itemDetail{{name: "Торт", variant: "Шоколадный", qty: 2}}

	msg := composeAcceptedAlert(order, items)

	assert.Contains(t, msg, "`123456`")
	assert.Contains(t, msg, "⏰ Время доставки: *13:00-14:00*")
	assert.Contains(t, msg, "👤 Клиент: Айгерим")
	assert.Contains(t, msg, "📞 Телефон: +7 700 000 00 00")

	// Delivery fee is derived: 1500 total - 1000 items = 500.
	assert.Contains(t, msg, "💰 Товары: 1000 ₸")
	assert.Contains(t, msg, "🚚 Доставка: 500 ₸")
	assert.Contains(t, msg, "💰 *Итого: 1500 ₸*")

	assert.Contains(t, msg, "1. Торт (Шоколадный) × 2")

	// The map link percent-encodes every reserved character of the raw address.
	assert.Contains(t, msg, "https://2gis.kz/search/%D0%BF%D1%80.%20%D0%90%D0%B1%D0%B0%D1%8F%2010%2F5")
}

func TestComposeAcceptedAlert_MissingPrices(t *testing.T) {
	t.Parallel()

	order := &model.Order{
		ID:          "abc",
		TotalAmount: 700,
		Items: []model.LineItem{
			{ProductName: "Товар", Quantity: 3}, // no price, counts as 0
		},
	}

	msg := composeAcceptedAlert(order, []itemDetail{{name: "Товар", qty: 3}})

	assert.Contains(t, msg, "💰 Товары: 0 ₸")
	assert.Contains(t, msg, "🚚 Доставка: 700 ₸")
}

func TestComposeCustomerStatus(t *testing.T) {
	t.Parallel()

	base := model.Order{ID: "order-654321", CustomerChatID: 42}

	t.Run("new order", func(t *testing.T) {
		t.Parallel()
		order := base
		order.Status = model.StatusNew

		msg := composeCustomerStatus(&order)
		assert.Contains(t, msg, "Ваш заказ получен")
		assert.Contains(t, msg, "`654321`")
		assert.Contains(t, msg, "📊 Статус: *новый*")
	})

	t.Run("accepted with time slot", func(t *testing.T) {
		t.Parallel()
		order := base
		order.Status = model.StatusAccepted
		order.DeliveryTimeSlot = "13:00-14:00"

		msg := composeCustomerStatus(&order)
		assert.Contains(t, msg, "Доставка будет осуществлена в период *13:00-14:00*")
	})

	t.Run("accepted without time slot", func(t *testing.T) {
		t.Parallel()
		order := base
		order.Status = model.StatusAccepted

		msg := composeCustomerStatus(&order)
		assert.Contains(t, msg, "✅ Ваш заказ принят!")
		assert.NotContains(t, msg, "период")
	})

	t.Run("rejected with reason", func(t *testing.T) {
		t.Parallel()
		order := base
		order.Status = model.StatusRejected
		order.RejectionReason = "нет курьера"

		msg := composeCustomerStatus(&order)
		assert.Contains(t, msg, "❌ Ваш заказ отклонен")
		assert.Contains(t, msg, "Причина: нет курьера")
	})

	t.Run("rejected without reason", func(t *testing.T) {
		t.Parallel()
		order := base
		order.Status = model.StatusRejected

		msg := composeCustomerStatus(&order)
		assert.Contains(t, msg, "❌ Ваш заказ отклонен")
		assert.NotContains(t, msg, "Причина")
	})

	t.Run("unknown status falls back", func(t *testing.T) {
		t.Parallel()
		order := base
		order.Status = "в пути"

		msg := composeCustomerStatus(&order)
		assert.Contains(t, msg, "Статус вашего заказа изменён: в пути")
		assert.Contains(t, msg, "📊 Статус: *в пути*")
	})
}

func TestComposeCustomerStatus_TruncatedIDRoundTrip(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"64f1c2d3e4a5b6c7d8e9f0a1", "123456", "42"} {
		order := &model.Order{ID: id, Status: model.StatusNew}
		msg := composeCustomerStatus(order)

		// The footer embeds the truncated id between backticks; parsing it
		// back must yield the last six characters (or the whole short id).
		start := strings.Index(msg, "`")
		require.GreaterOrEqual(t, start, 0)
		end := strings.Index(msg[start+1:], "`")
		require.Greater(t, end, 0)

		assert.Equal(t, TruncateOrderID(id), msg[start+1:start+1+end])
	}
}
