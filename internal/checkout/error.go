package checkout

import "errors"

var (
	ErrEmptyCart              = errors.New("cart is empty")
	ErrUserNotFound           = errors.New("user not found")
	ErrMissingWhatsappNumber  = errors.New("whatsapp number is required")
	ErrMissingDeliveryAddress = errors.New("delivery address is required")
)
