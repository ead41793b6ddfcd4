package checkout

import "scentora-be/internal/order"

// DeliveryDetails is the contact information the buyer supplies with a
// checkout request.
type DeliveryDetails struct {
	WhatsappNumber  string
	DeliveryAddress string
	CustomerNotes   string
}

// Result is what a successful checkout hands back: the persisted order, the
// rendered hand-off summary and the wa.me link that carries it.
type Result struct {
	Order        *order.Order
	Message      string
	WhatsappLink string
}
