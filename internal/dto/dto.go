package dto

import "time"

type ItemRequest struct {
	Title       string `json:"title"`
	ImageURL    string `json:"imageUrl"`
	Description string `json:"description"`
	DriveLink   string `json:"driveLink"`
	PriceVND    int64  `json:"priceVND"`
}

type CreateOrderRequest struct {
	ItemID     uint   `json:"itemId"`
	BuyerName  string `json:"buyerName"`
	BuyerEmail string `json:"buyerEmail"`
}

type CreateOrderResponse struct {
	OrderID     uint   `json:"orderId"`
	OrderCode   int64  `json:"orderCode"`
	CheckoutURL string `json:"checkoutUrl"`
}

type ActivateRequest struct {
	OrderCode int64  `json:"orderCode"`
	DeviceID  string `json:"deviceId,omitempty"`
}

type ActivateResponse struct {
	OK          bool       `json:"ok"`
	OrderID     uint       `json:"orderId"`
	OrderCode   int64      `json:"orderCode"`
	DeviceID    *string    `json:"deviceId"`
	ActivatedAt *time.Time `json:"activatedAt"`
	DriveLink   string     `json:"driveLink"`
}

type ValidateRequest struct {
	OrderCode int64  `json:"orderCode"`
	DeviceID  string `json:"deviceId"`
}

type ResetActivationRequest struct {
	OrderCode int64 `json:"orderCode"`
}
