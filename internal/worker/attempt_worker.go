package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/opjlab/opj-backend/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	AttemptBatchSize    = 50
	AttemptBatchTimeout = 2 * time.Second
	AttemptPollTimeout  = 1 * time.Second
)

// AttemptWorker consumes persist_attempts_queue and bulk-inserts attempt
// records to PostgreSQL. Attempts are append-only; the worker never updates.
type AttemptWorker struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
	log  zerolog.Logger
}

// NewAttemptWorker creates a new AttemptWorker.
func NewAttemptWorker(pool *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) *AttemptWorker {
	return &AttemptWorker{
		pool: pool,
		rdb:  rdb,
		log:  log.With().Str("component", "attempt_worker").Logger(),
	}
}

// AttemptPayload is the queue message for one graded submission.
type AttemptPayload struct {
	UserID    int             `json:"user_id"`
	BlockID   string          `json:"block_id"`
	SessionID *string         `json:"session_id,omitempty"`
	Mode      string          `json:"mode"`
	Level     int             `json:"level"`
	Score     int             `json:"score"`
	Answers   json.RawMessage `json:"answers"`
}

// ----------------------------------------------------------------
// Worker loop with batching
// ----------------------------------------------------------------

func (w *AttemptWorker) Start(ctx context.Context) {
	w.log.Info().Msg("AttemptWorker started")

	batch := make([]*AttemptPayload, 0, AttemptBatchSize)
	lastFlush := time.Now()

	for {
		// Should flush?
		if len(batch) > 0 &&
			(len(batch) >= AttemptBatchSize || time.Since(lastFlush) >= AttemptBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, AttemptPollTimeout, config.WorkerKey.PersistAttemptsQueue()).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var p AttemptPayload
			if err := json.Unmarshal([]byte(item[1]), &p); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, &p)
		}
	}
}

// ----------------------------------------------------------------
// Batch insert wrapper
// ----------------------------------------------------------------

func (w *AttemptWorker) flushSafe(ctx context.Context, batch []*AttemptPayload) {
	if len(batch) == 0 {
		return
	}

	if err := w.bulkInsertAttempts(ctx, batch); err != nil {
		w.log.Warn().Err(err).Msg("bulk attempt insert failed, using fallback")

		for _, p := range batch {
			if err := w.persistSingle(ctx, p); err != nil {
				w.log.Error().Err(err).Msg("persistSingle failed — requeueing")
				raw, _ := json.Marshal(p)
				w.rdb.RPush(ctx, config.WorkerKey.PersistAttemptsQueue(), raw)
			}
		}
	}
}

// ----------------------------------------------------------------
// BULK PostgreSQL INSERT using UNNEST
// ----------------------------------------------------------------

func (w *AttemptWorker) bulkInsertAttempts(ctx context.Context, batch []*AttemptPayload) error {
	n := len(batch)

	userIDs := make([]int, 0, n)
	blockIDs := make([]uuid.UUID, 0, n)
	sessionIDs := make([]*uuid.UUID, 0, n)
	modes := make([]string, 0, n)
	levels := make([]int, 0, n)
	scores := make([]int, 0, n)
	answers := make([][]byte, 0, n)

	for _, p := range batch {
		bID, err := uuid.Parse(p.BlockID)
		if err != nil {
			return err
		}
		var sID *uuid.UUID
		if p.SessionID != nil {
			parsed, err := uuid.Parse(*p.SessionID)
			if err != nil {
				return err
			}
			sID = &parsed
		}
		userIDs = append(userIDs, p.UserID)
		blockIDs = append(blockIDs, bID)
		sessionIDs = append(sessionIDs, sID)
		modes = append(modes, p.Mode)
		levels = append(levels, p.Level)
		scores = append(scores, p.Score)
		answers = append(answers, []byte(p.Answers))
	}

	query := `
		INSERT INTO attempts (user_id, block_id, session_id, mode, level, score, answers)
		SELECT u.user_id, u.block_id, u.session_id, u.mode, u.level, u.score, u.answers
		FROM UNNEST(
			$1::int[],
			$2::uuid[],
			$3::uuid[],
			$4::text[],
			$5::int[],
			$6::int[],
			$7::jsonb[]
		) AS u (user_id, block_id, session_id, mode, level, score, answers)
	`

	_, err := w.pool.Exec(ctx, query, userIDs, blockIDs, sessionIDs, modes, levels, scores, answers)
	return err
}

// ----------------------------------------------------------------
// FALLBACK single insert
// ----------------------------------------------------------------

func (w *AttemptWorker) persistSingle(ctx context.Context, p *AttemptPayload) error {
	bID, err := uuid.Parse(p.BlockID)
	if err != nil {
		return err
	}

	var sID *uuid.UUID
	if p.SessionID != nil {
		parsed, err := uuid.Parse(*p.SessionID)
		if err != nil {
			return err
		}
		sID = &parsed
	}

	_, err = w.pool.Exec(ctx,
		`INSERT INTO attempts (user_id, block_id, session_id, mode, level, score, answers)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.UserID, bID, sID, p.Mode, p.Level, p.Score, []byte(p.Answers),
	)

	return err
}
