package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/opjlab/opj-backend/internal/middleware"
	"github.com/opjlab/opj-backend/internal/model"
	"github.com/opjlab/opj-backend/internal/repository"
	"github.com/opjlab/opj-backend/internal/response"
	"github.com/opjlab/opj-backend/internal/service"
	"github.com/opjlab/opj-backend/internal/validator"
)

// BillingHandler handles promo codes and payment webhooks.
type BillingHandler struct {
	accessService *service.AccessService
}

// NewBillingHandler creates a new BillingHandler.
func NewBillingHandler(accessService *service.AccessService) *BillingHandler {
	return &BillingHandler{accessService: accessService}
}

// RedeemPromo godoc
// POST /api/v1/billing/promo/redeem
// Redeems a promo code, extending the user's premium period.
func (h *BillingHandler) RedeemPromo(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.RedeemPromoRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	promo, err := h.accessService.RedeemPromo(c.Request.Context(), claims.UserID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPromoInvalid):
			response.Fail(c, http.StatusBadRequest, response.ErrPromoInvalid)
		case errors.Is(err, service.ErrPromoExhausted):
			response.Fail(c, http.StatusConflict, response.ErrPromoExhausted)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"days_granted": promo.DaysGrant,
	})
}

// PaymentWebhook godoc
// POST /api/v1/billing/webhook
// Applies a payment provider event. Authenticated by the X-Webhook-Secret
// header, not a JWT.
func (h *BillingHandler) PaymentWebhook(c *gin.Context) {
	if err := h.accessService.VerifyWebhookSecret(c.GetHeader("X-Webhook-Secret")); err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrWebhookInvalid)
		return
	}

	var payload model.PaymentWebhookPayload
	if fields := validator.Bind(c, &payload); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.accessService.HandlePaymentEvent(c.Request.Context(), &payload); err != nil {
		if errors.Is(err, service.ErrUnknownEvent) {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// CreatePromo godoc
// POST /api/v1/admin/promo-codes
// Creates a promo code.
func (h *BillingHandler) CreatePromo(c *gin.Context) {
	var req model.CreatePromoRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	promo, err := h.accessService.CreatePromo(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateCode) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"promo_code": promo})
}

// ListPromos godoc
// GET /api/v1/admin/promo-codes
// Lists promo codes with pagination.
func (h *BillingHandler) ListPromos(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	codes, total, err := h.accessService.ListPromos(c.Request.Context(), page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if codes == nil {
		codes = []model.PromoCode{}
	}

	totalPages := (total + perPage - 1) / perPage
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"promo_codes": codes}, &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	})
}
