package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/opjlab/opj-backend/internal/model"
)

var (
	ErrDuplicateCode = errors.New("promo code already exists")
	ErrCodeExhausted = errors.New("promo code has no uses left")
)

// SubscriptionRepository handles promo code data access.
type SubscriptionRepository struct {
	pool *pgxpool.Pool
}

// NewSubscriptionRepository creates a new SubscriptionRepository.
func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{pool: pool}
}

// GetByCode retrieves a promo code by its unique code string.
func (r *SubscriptionRepository) GetByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	p := &model.PromoCode{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, code, days_grant, max_uses, used_count, expires_at, created_at
		 FROM promo_codes WHERE code = $1`, code,
	).Scan(&p.ID, &p.Code, &p.DaysGrant, &p.MaxUses, &p.UsedCount, &p.ExpiresAt, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a new promo code.
func (r *SubscriptionRepository) Create(ctx context.Context, p *model.PromoCode) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO promo_codes (code, days_grant, max_uses, expires_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, used_count, created_at`,
		p.Code, p.DaysGrant, p.MaxUses, p.ExpiresAt,
	).Scan(&p.ID, &p.UsedCount, &p.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateCode
		}
		return err
	}
	return nil
}

// Redeem atomically consumes one use of the code. The guard in the WHERE
// clause makes concurrent redemptions safe without a lock.
func (r *SubscriptionRepository) Redeem(ctx context.Context, code string) (*model.PromoCode, error) {
	p := &model.PromoCode{}
	err := r.pool.QueryRow(ctx,
		`UPDATE promo_codes
		 SET used_count = used_count + 1
		 WHERE code = $1 AND used_count < max_uses
		 RETURNING id, code, days_grant, max_uses, used_count, expires_at, created_at`,
		code,
	).Scan(&p.ID, &p.Code, &p.DaysGrant, &p.MaxUses, &p.UsedCount, &p.ExpiresAt, &p.CreatedAt)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrCodeExhausted
		}
		return nil, err
	}
	return p, nil
}

// ListPaginated retrieves promo codes ordered by creation date.
func (r *SubscriptionRepository) ListPaginated(ctx context.Context, limit, offset int) ([]model.PromoCode, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM promo_codes`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, code, days_grant, max_uses, used_count, expires_at, created_at
		 FROM promo_codes ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var codes []model.PromoCode
	for rows.Next() {
		var p model.PromoCode
		if err := rows.Scan(&p.ID, &p.Code, &p.DaysGrant, &p.MaxUses, &p.UsedCount, &p.ExpiresAt, &p.CreatedAt); err != nil {
			return nil, 0, err
		}
		codes = append(codes, p)
	}
	return codes, total, rows.Err()
}

// Delete removes a promo code by ID.
func (r *SubscriptionRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM promo_codes WHERE id = $1`, id)
	return err
}
