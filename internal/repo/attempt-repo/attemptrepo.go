package attemptrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/webkuhmanis/coinpay/internal/domain"
	"github.com/webkuhmanis/coinpay/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Get(ctx context.Context, paymentID uuid.UUID) (*domain.AttemptCounter, error) {
	query := `
        SELECT id, payment_id, user_id, attempt_count, last_attempt, locked_until
        FROM otp_attempts
        WHERE payment_id = $1
    `
	var counter domain.AttemptCounter
	err := r.db.QueryRow(ctx, query, paymentID).
		Scan(&counter.ID, &counter.PaymentID, &counter.UserID, &counter.Count, &counter.LastAttempt, &counter.LockedUntil)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't get attempt counter", zap.Error(err))
		return nil, err
	}
	return &counter, nil
}

// IncrementFailure bumps the counter in a single statement; the lockout
// expiry is installed by the same statement the moment the count reaches the
// threshold, so concurrent failures cannot lose updates or miss the lock.
func (r *Repository) IncrementFailure(ctx context.Context, paymentID uuid.UUID, userID int, threshold int, lockoutMinutes int) (*domain.AttemptCounter, error) {
	query := `
        INSERT INTO otp_attempts (payment_id, user_id, attempt_count, last_attempt, locked_until)
        VALUES ($1, $2, 1, now(), CASE WHEN 1 >= $3 THEN now() + make_interval(mins => $4) END)
        ON CONFLICT (payment_id) DO UPDATE
        SET attempt_count = otp_attempts.attempt_count + 1,
            last_attempt  = now(),
            locked_until  = CASE WHEN otp_attempts.attempt_count + 1 >= $3
                                 THEN now() + make_interval(mins => $4)
                                 ELSE otp_attempts.locked_until END
        RETURNING id, payment_id, user_id, attempt_count, last_attempt, locked_until
    `
	var counter domain.AttemptCounter
	err := r.db.QueryRow(ctx, query, paymentID, userID, threshold, lockoutMinutes).
		Scan(&counter.ID, &counter.PaymentID, &counter.UserID, &counter.Count, &counter.LastAttempt, &counter.LockedUntil)
	if err != nil {
		zap.L().Error("can't increment attempt counter", zap.Error(err))
		return nil, err
	}
	return &counter, nil
}

func (r *Repository) Delete(ctx context.Context, paymentID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM otp_attempts WHERE payment_id = $1`, paymentID)
	if err != nil {
		zap.L().Error("can't clear attempt counter", zap.Error(err))
		return err
	}
	return nil
}
