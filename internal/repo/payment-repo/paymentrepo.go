package paymentrepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/webkuhmanis/coinpay/internal/domain"
	"github.com/webkuhmanis/coinpay/internal/pg"
)

// paymentColumns keeps scan order in one place.
const paymentColumns = `id, user_id, amount, proof_ref, status, otp_code, otp_expires_at, otp_used_at, notes, created_at, updated_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var p domain.Payment
	err := row.Scan(&p.ID, &p.UserID, &p.Amount, &p.ProofRef, &p.Status,
		&p.OTPDigest, &p.OTPExpiresAt, &p.OTPUsedAt, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	query := `
        INSERT INTO manual_payments (user_id, amount, proof_ref, status)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + paymentColumns
	p, err := scanPayment(r.db.QueryRow(ctx, query, payment.UserID, payment.Amount, payment.ProofRef, payment.Status))
	if err != nil {
		zap.L().Error("can't save payment", zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	query := `
        SELECT ` + paymentColumns + `
        FROM manual_payments
        WHERE id = $1
    `
	p, err := scanPayment(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find payment", zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *Repository) FindByIDAndUser(ctx context.Context, id uuid.UUID, userID int) (*domain.Payment, error) {
	query := `
        SELECT ` + paymentColumns + `
        FROM manual_payments
        WHERE id = $1 AND user_id = $2
    `
	p, err := scanPayment(r.db.QueryRow(ctx, query, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find payment", zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int, limit int) ([]domain.Payment, error) {
	query := `
        SELECT ` + paymentColumns + `
        FROM manual_payments
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		zap.L().Error("can't get payments", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			zap.L().Error("can't scan payment row", zap.Error(err))
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, nil
}

func (r *Repository) FindActionable(ctx context.Context) ([]domain.ActionablePayment, error) {
	query := `
        SELECT p.id, p.user_id, u.username, p.amount, p.proof_ref, p.status,
               p.otp_expires_at, p.notes, p.created_at, p.updated_at
        FROM manual_payments p
        JOIN users u ON p.user_id = u.id
        WHERE p.status IN ('pending', 'approved')
        ORDER BY p.created_at DESC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't get actionable payments", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var payments []domain.ActionablePayment
	for rows.Next() {
		var p domain.ActionablePayment
		err := rows.Scan(&p.ID, &p.UserID, &p.Username, &p.Amount, &p.ProofRef, &p.Status,
			&p.OTPExpiresAt, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			zap.L().Error("can't scan actionable payment row", zap.Error(err))
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, nil
}

// SetApproved moves the payment to approved and installs a fresh OTP digest.
// The WHERE clause pins the status observed by the caller, so a concurrent
// transition makes this match zero rows and return nil.
func (r *Repository) SetApproved(ctx context.Context, id uuid.UUID, fromStatus string, digest string, expiresAt time.Time, notes string) (*domain.Payment, error) {
	query := `
        UPDATE manual_payments
        SET status = 'approved', otp_code = $1, otp_expires_at = $2, otp_used_at = NULL, notes = $3, updated_at = now()
        WHERE id = $4 AND status = $5 AND status IN ('pending', 'approved')
        RETURNING ` + paymentColumns
	p, err := scanPayment(r.db.QueryRow(ctx, query, digest, expiresAt, notes, id, fromStatus))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't approve payment", zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *Repository) UpdateOTP(ctx context.Context, id uuid.UUID, digest string, expiresAt time.Time) (*domain.Payment, error) {
	query := `
        UPDATE manual_payments
        SET otp_code = $1, otp_expires_at = $2, otp_used_at = NULL, updated_at = now()
        WHERE id = $3 AND status = 'approved'
        RETURNING ` + paymentColumns
	p, err := scanPayment(r.db.QueryRow(ctx, query, digest, expiresAt, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't regenerate payment otp", zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *Repository) SetRejected(ctx context.Context, id uuid.UUID, reason string) (*domain.Payment, error) {
	query := `
        UPDATE manual_payments
        SET status = 'rejected', notes = $1, updated_at = now()
        WHERE id = $2 AND status IN ('pending', 'approved')
        RETURNING ` + paymentColumns
	p, err := scanPayment(r.db.QueryRow(ctx, query, reason, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't reject payment", zap.Error(err))
		return nil, err
	}
	return p, nil
}

// Complete is the guarded approved -> completed transition. Exactly one
// concurrent caller sees a row back; the rest get nil.
func (r *Repository) Complete(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	query := `
        UPDATE manual_payments
        SET status = 'completed', otp_used_at = now(), updated_at = now()
        WHERE id = $1 AND status = 'approved' AND otp_used_at IS NULL
        RETURNING ` + paymentColumns
	p, err := scanPayment(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't complete payment", zap.Error(err))
		return nil, err
	}
	return p, nil
}
