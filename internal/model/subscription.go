package model

import "time"

// PromoCode grants premium access for a fixed number of days when redeemed.
type PromoCode struct {
	ID        int        `json:"id"`
	Code      string     `json:"code"`
	DaysGrant int        `json:"days_grant"`
	MaxUses   int        `json:"max_uses"`
	UsedCount int        `json:"used_count"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// RedeemPromoRequest is the payload for redeeming a promo code.
type RedeemPromoRequest struct {
	Code string `json:"code" binding:"required,min=4,max=40"`
}

// CreatePromoRequest is the admin payload for creating a promo code.
type CreatePromoRequest struct {
	Code      string     `json:"code" binding:"required,min=4,max=40"`
	DaysGrant int        `json:"days_grant" binding:"required,min=1,max=3650"`
	MaxUses   int        `json:"max_uses" binding:"required,min=1"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// PaymentWebhookPayload is the body posted by the payment provider when a
// subscription changes. Verification is a shared-secret header comparison;
// full signature checking stays with the provider SDK outside this service.
type PaymentWebhookPayload struct {
	Event      string `json:"event" binding:"required,oneof=subscription.activated subscription.cancelled"`
	UserID     int    `json:"user_id" binding:"required"`
	PeriodDays int    `json:"period_days" binding:"omitempty,min=1"`
}
