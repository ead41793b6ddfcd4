package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"scentora-be/internal/order"
)

const currency = "AZN"

// BuildWhatsAppMessage renders the human-readable order summary that is
// handed off to the business WhatsApp channel.
func BuildWhatsAppMessage(o *order.Order) string {
	var b strings.Builder

	b.WriteString("*New Order*\n\n")
	fmt.Fprintf(&b, "*Order ID:* %d\n", o.ID)
	fmt.Fprintf(&b, "*Total Amount:* %s %s\n", o.TotalAmount.StringFixed(2), currency)
	fmt.Fprintf(&b, "*WhatsApp:* %s\n", o.WhatsappNumber)
	fmt.Fprintf(&b, "*Delivery Address:* %s\n\n", o.DeliveryAddress)

	b.WriteString("*Products:*\n")
	for _, item := range o.Items {
		fmt.Fprintf(&b, "- %s (%s) - %d pcs - %s %s\n",
			item.ProductName,
			item.BrandName,
			item.Quantity,
			item.UnitPrice.StringFixed(2),
			currency,
		)
	}

	if notes := strings.TrimSpace(o.CustomerNotes); notes != "" {
		fmt.Fprintf(&b, "\n*Additional Notes:* %s", notes)
	}

	return b.String()
}

// BuildWhatsAppLink wraps the rendered message in a wa.me deep link for the
// given destination number. Pure function, no side effects.
func BuildWhatsAppLink(businessNumber, message string) string {
	if message == "" {
		return fmt.Sprintf("https://wa.me/%s", businessNumber)
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", businessNumber, url.QueryEscape(message))
}

// BuildEmailBody renders the plain-text order confirmation sent to the
// buyer.
func BuildEmailBody(o *order.Order) string {
	var b strings.Builder

	for _, item := range o.Items {
		fmt.Fprintf(&b, "- %s (%s) - Quantity: %d - Unit Price: %s %s - Total: %s %s\n",
			item.ProductName,
			item.BrandName,
			item.Quantity,
			item.UnitPrice.StringFixed(2),
			currency,
			item.Subtotal.StringFixed(2),
			currency,
		)
	}

	fmt.Fprintf(&b, "\nTotal Amount: %s %s", o.TotalAmount.StringFixed(2), currency)
	fmt.Fprintf(&b, "\nDelivery Address: %s", o.DeliveryAddress)
	fmt.Fprintf(&b, "\nWhatsApp Number: %s", o.WhatsappNumber)

	if notes := strings.TrimSpace(o.CustomerNotes); notes != "" {
		fmt.Fprintf(&b, "\nAdditional Notes: %s", notes)
	}

	return b.String()
}
