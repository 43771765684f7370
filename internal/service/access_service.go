package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/opjlab/opj-backend/internal/config"
	"github.com/opjlab/opj-backend/internal/model"
	"github.com/opjlab/opj-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Access errors.
var (
	ErrPromoInvalid   = errors.New("promo code invalid or expired")
	ErrPromoExhausted = errors.New("promo code has no uses left")
	ErrBadWebhookSig  = errors.New("webhook secret mismatch")
	ErrUnknownEvent   = errors.New("unknown webhook event")
)

// AccessService enforces the free-tier daily quota and handles premium
// grants from promo codes and payment webhooks.
type AccessService struct {
	cfg      *config.Config
	userRepo *repository.UserRepository
	subRepo  *repository.SubscriptionRepository
	rdb      *redis.Client
	log      zerolog.Logger
}

// NewAccessService creates a new AccessService.
func NewAccessService(
	cfg *config.Config,
	userRepo *repository.UserRepository,
	subRepo *repository.SubscriptionRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *AccessService {
	return &AccessService{
		cfg:      cfg,
		userRepo: userRepo,
		subRepo:  subRepo,
		rdb:      rdb,
		log:      log.With().Str("component", "access_service").Logger(),
	}
}

// ConsumeDailyQuota counts one document open against the user's daily
// allowance. Premium users always pass. The counter lives in Redis keyed by
// (user, UTC date) and expires after 48h.
func (s *AccessService) ConsumeDailyQuota(ctx context.Context, userID int) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("get user: %w", err)
	}
	if user.IsPremium(time.Now()) {
		return true, nil
	}

	key := config.CacheKey.DailyQuotaKey(userID, time.Now().UTC().Format("2006-01-02"))
	count, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("incr quota: %w", err)
	}
	if count == 1 {
		// First open of the day sets the expiry.
		s.rdb.Expire(ctx, key, 48*time.Hour)
	}

	if count > int64(s.cfg.FreeDailyDocs) {
		s.log.Debug().Int("user_id", userID).Int64("count", count).Msg("Daily quota exceeded")
		return false, nil
	}
	return true, nil
}

// RemainingQuota reports how many document opens a free user has left today.
// Premium users get -1 (unlimited).
func (s *AccessService) RemainingQuota(ctx context.Context, userID int) (int, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if user.IsPremium(time.Now()) {
		return -1, nil
	}

	key := config.CacheKey.DailyQuotaKey(userID, time.Now().UTC().Format("2006-01-02"))
	count, err := s.rdb.Get(ctx, key).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, err
	}

	remaining := s.cfg.FreeDailyDocs - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// RedeemPromo consumes one use of a promo code and extends the user's
// premium period by the code's grant.
func (s *AccessService) RedeemPromo(ctx context.Context, userID int, code string) (*model.PromoCode, error) {
	promo, err := s.subRepo.GetByCode(ctx, code)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrPromoInvalid
		}
		return nil, err
	}
	if promo.ExpiresAt != nil && promo.ExpiresAt.Before(time.Now()) {
		return nil, ErrPromoInvalid
	}

	redeemed, err := s.subRepo.Redeem(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrCodeExhausted) {
			return nil, ErrPromoExhausted
		}
		return nil, err
	}

	if err := s.userRepo.ExtendPremium(ctx, userID, redeemed.DaysGrant); err != nil {
		return nil, fmt.Errorf("extend premium: %w", err)
	}

	s.log.Info().
		Int("user_id", userID).
		Str("code", redeemed.Code).
		Int("days", redeemed.DaysGrant).
		Msg("Promo redeemed")
	return redeemed, nil
}

// VerifyWebhookSecret compares the provider's shared secret header in
// constant time.
func (s *AccessService) VerifyWebhookSecret(got string) error {
	if s.cfg.WebhookSecret == "" ||
		subtle.ConstantTimeCompare([]byte(got), []byte(s.cfg.WebhookSecret)) != 1 {
		return ErrBadWebhookSig
	}
	return nil
}

// HandlePaymentEvent applies a payment provider event to the user's tier.
func (s *AccessService) HandlePaymentEvent(ctx context.Context, payload *model.PaymentWebhookPayload) error {
	switch payload.Event {
	case "subscription.activated":
		days := payload.PeriodDays
		if days == 0 {
			days = 30
		}
		if err := s.userRepo.ExtendPremium(ctx, payload.UserID, days); err != nil {
			return fmt.Errorf("extend premium: %w", err)
		}
		s.log.Info().Int("user_id", payload.UserID).Int("days", days).Msg("Subscription activated")
		return nil

	case "subscription.cancelled":
		if err := s.userRepo.ClearPremium(ctx, payload.UserID); err != nil {
			return fmt.Errorf("clear premium: %w", err)
		}
		s.log.Info().Int("user_id", payload.UserID).Msg("Subscription cancelled")
		return nil
	}
	return ErrUnknownEvent
}

// CreatePromo creates a new promo code (admin only).
func (s *AccessService) CreatePromo(ctx context.Context, req *model.CreatePromoRequest) (*model.PromoCode, error) {
	promo := &model.PromoCode{
		Code:      req.Code,
		DaysGrant: req.DaysGrant,
		MaxUses:   req.MaxUses,
		ExpiresAt: req.ExpiresAt,
	}
	if err := s.subRepo.Create(ctx, promo); err != nil {
		return nil, err
	}
	return promo, nil
}

// ListPromos retrieves promo codes with pagination (admin only).
func (s *AccessService) ListPromos(ctx context.Context, page, perPage int) ([]model.PromoCode, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return s.subRepo.ListPaginated(ctx, perPage, (page-1)*perPage)
}
