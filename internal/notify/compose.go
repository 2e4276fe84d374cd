package notify

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ilindan-dev/order-notifier/internal/domain/model"
)

// truncatedIDLength is how much of an order id is shown in messages.
const truncatedIDLength = 6

// TruncateOrderID returns the compact display form of an order id: its
// last six characters, or the whole id when it is shorter than that.
func TruncateOrderID(id string) string {
	if len(id) <= truncatedIDLength {
		return id
	}
	return id[len(id)-truncatedIDLength:]
}

// itemDetail is a line item prepared for display, after variant-name
// backfill.
type itemDetail struct {
	name    string
	variant string
	qty     int
}

// composeNewOrderAlert builds the terse admin ping for a freshly placed
// order. It deliberately carries nothing but the truncated id: the full
// details follow once the order is accepted.
func composeNewOrderAlert(orderID string) string {
	return fmt.Sprintf("🆕 *Новый заказ!*\n\n📋 Заказ: `%s`", TruncateOrderID(orderID))
}

// composeAcceptedAlert builds the full admin notification for an accepted
// order: customer contacts, a map link for the address, the itemized
// product list and the money lines.
//
// The delivery fee is not stored anywhere: it is derived as the order
// total minus the sum of the item prices. Items without a price count as
// zero, so the fee can come out negative when prices are stale.
func composeAcceptedAlert(order *model.Order, items []itemDetail) string {
	var itemsText strings.Builder
	itemsText.WriteString("📦 *Товары:*\n")
	for i, it := range items {
		variantInfo := ""
		if it.variant != "" {
			variantInfo = fmt.Sprintf(" (%s)", it.variant)
		}
		fmt.Fprintf(&itemsText, "%d. %s%s × %d\n", i+1, it.name, variantInfo, it.qty)
	}

	var itemsTotal float64
	for _, item := range order.Items {
		itemsTotal += item.Price * float64(item.Quantity)
	}
	deliveryFee := order.TotalAmount - itemsTotal

	addressLink := fmt.Sprintf("[%s](%s)", order.DeliveryAddress, mapSearchURL(order.DeliveryAddress))

	return fmt.Sprintf(
		"✅ *Заказ принят!*\n\n"+
			"📋 Заказ: `%s`\n"+
			"⏰ Время доставки: *%s*\n\n"+
			"👤 Клиент: %s\n"+
			"📞 Телефон: %s\n"+
			"📍 Адрес: %s\n"+
			"💰 Товары: %s ₸\n"+
			"🚚 Доставка: %s ₸\n"+
			"💰 *Итого: %s ₸*\n\n"+
			"%s",
		TruncateOrderID(order.ID),
		order.DeliveryTimeSlot,
		order.CustomerName,
		order.CustomerPhone,
		addressLink,
		FormatAmount(itemsTotal),
		FormatAmount(deliveryFee),
		FormatAmount(order.TotalAmount),
		itemsText.String(),
	)
}

// composeCustomerStatus builds the customer-facing message for an order
// status change. Known statuses get a dedicated template; anything else
// falls through to a generic "status changed" text. The footer with the
// truncated id and the raw status is always appended.
func composeCustomerStatus(order *model.Order) string {
	var statusMessage string
	switch order.Status {
	case model.StatusNew:
		statusMessage = "✅ Ваш заказ получен. Вы получите уведомление о времени доставки."
	case model.StatusAccepted:
		if order.DeliveryTimeSlot != "" {
			statusMessage = fmt.Sprintf("✅ Ваш заказ принят! Доставка будет осуществлена в период *%s*.", order.DeliveryTimeSlot)
		} else {
			statusMessage = "✅ Ваш заказ принят!"
		}
	case model.StatusRejected:
		reasonText := ""
		if order.RejectionReason != "" {
			reasonText = "\n\nПричина: " + order.RejectionReason
		}
		statusMessage = "❌ Ваш заказ отклонен по какой-то причине." + reasonText
	default:
		statusMessage = fmt.Sprintf("Статус вашего заказа изменён: %s", order.Status)
	}

	return fmt.Sprintf("%s\n\n📋 Заказ: `%s`\n📊 Статус: *%s*", statusMessage, TruncateOrderID(order.ID), order.Status)
}

// mapSearchURL builds a 2GIS search link for the raw delivery address.
// Every reserved character, including "/", is percent-encoded so the
// address survives as a single search term.
func mapSearchURL(address string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(address), "+", "%20")
	return "https://2gis.kz/search/" + encoded
}
