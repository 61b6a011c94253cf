package paymentrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/webkuhmanis/coinpay/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

var columnNames = []string{"id", "user_id", "amount", "proof_ref", "status", "otp_code", "otp_expires_at", "otp_used_at", "notes", "created_at", "updated_at"}

func paymentRow(id uuid.UUID, status string, digest *string, expiresAt, usedAt *time.Time, now time.Time) *pgxmock.Rows {
	return pgxmock.NewRows(columnNames).
		AddRow(id, 1, decimal.NewFromFloat(100.50), "bank-transfer-123", status, digest, expiresAt, usedAt, "", now, now)
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	paymentID := uuid.New()
	now := time.Now()

	tests := []struct {
		name      string
		payment   *domain.Payment
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Payment created",
			payment: &domain.Payment{
				UserID:   1,
				Amount:   decimal.NewFromFloat(100.50),
				ProofRef: "bank-transfer-123",
				Status:   domain.PaymentStatusPending,
			},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO manual_payments (user_id, amount, proof_ref, status)")).
					WithArgs(1, decimal.NewFromFloat(100.50), "bank-transfer-123", domain.PaymentStatusPending).
					WillReturnRows(paymentRow(paymentID, domain.PaymentStatusPending, nil, nil, nil, now))
			},
		},
		{
			name: "Database error",
			payment: &domain.Payment{
				UserID:   1,
				Amount:   decimal.NewFromFloat(100.50),
				ProofRef: "bank-transfer-123",
				Status:   domain.PaymentStatusPending,
			},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO manual_payments")).
					WithArgs(1, decimal.NewFromFloat(100.50), "bank-transfer-123", domain.PaymentStatusPending).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.Create(context.Background(), tt.payment)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, paymentID, result.ID)
				assert.Equal(t, domain.PaymentStatusPending, result.Status)
			}
		})
	}
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock := NewMock(t)
	paymentID := uuid.New()
	now := time.Now()

	t.Run("Payment found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, amount, proof_ref, status, otp_code, otp_expires_at, otp_used_at, notes, created_at, updated_at")).
			WithArgs(paymentID).
			WillReturnRows(paymentRow(paymentID, domain.PaymentStatusPending, nil, nil, nil, now))

		result, err := repo.FindByID(context.Background(), paymentID)
		assert.NoError(t, err)
		assert.Equal(t, paymentID, result.ID)
	})

	t.Run("Payment not found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
			WithArgs(paymentID).
			WillReturnError(pgx.ErrNoRows)

		result, err := repo.FindByID(context.Background(), paymentID)
		assert.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
			WithArgs(paymentID).
			WillReturnError(errors.New("database error"))

		_, err := repo.FindByID(context.Background(), paymentID)
		assert.Error(t, err)
	})
}

func TestRepository_FindByIDAndUser(t *testing.T) {
	repo, mock := NewMock(t)
	paymentID := uuid.New()
	now := time.Now()

	t.Run("Payment owned by user", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND user_id = $2")).
			WithArgs(paymentID, 1).
			WillReturnRows(paymentRow(paymentID, domain.PaymentStatusApproved, nil, nil, nil, now))

		result, err := repo.FindByIDAndUser(context.Background(), paymentID, 1)
		assert.NoError(t, err)
		assert.Equal(t, paymentID, result.ID)
	})

	t.Run("Different owner", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND user_id = $2")).
			WithArgs(paymentID, 2).
			WillReturnError(pgx.ErrNoRows)

		result, err := repo.FindByIDAndUser(context.Background(), paymentID, 2)
		assert.NoError(t, err)
		assert.Nil(t, result)
	})
}

func TestRepository_FindByUserID(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	t.Run("Payments listed", func(t *testing.T) {
		rows := pgxmock.NewRows(columnNames).
			AddRow(uuid.New(), 1, decimal.NewFromInt(100), "ref-1", domain.PaymentStatusCompleted, nil, nil, nil, "", now, now).
			AddRow(uuid.New(), 1, decimal.NewFromInt(200), "ref-2", domain.PaymentStatusPending, nil, nil, nil, "", now, now)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1")).
			WithArgs(1, 20).
			WillReturnRows(rows)

		result, err := repo.FindByUserID(context.Background(), 1, 20)
		assert.NoError(t, err)
		assert.Len(t, result, 2)
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1")).
			WithArgs(1, 20).
			WillReturnError(errors.New("database error"))

		_, err := repo.FindByUserID(context.Background(), 1, 20)
		assert.Error(t, err)
	})
}

func TestRepository_FindActionable(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	t.Run("Actionable payments listed", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "user_id", "username", "amount", "proof_ref", "status", "otp_expires_at", "notes", "created_at", "updated_at"}).
			AddRow(uuid.New(), 1, "user1", decimal.NewFromInt(100), "ref-1", domain.PaymentStatusPending, nil, "", now, now)
		mock.ExpectQuery(regexp.QuoteMeta("JOIN users u ON p.user_id = u.id")).
			WillReturnRows(rows)

		result, err := repo.FindActionable(context.Background())
		assert.NoError(t, err)
		assert.Len(t, result, 1)
		assert.Equal(t, "user1", result[0].Username)
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("JOIN users u ON p.user_id = u.id")).
			WillReturnError(errors.New("database error"))

		_, err := repo.FindActionable(context.Background())
		assert.Error(t, err)
	})
}

func TestRepository_SetApproved(t *testing.T) {
	repo, mock := NewMock(t)
	paymentID := uuid.New()
	now := time.Now()
	digest := "digest"
	expiresAt := now.Add(15 * time.Minute)

	t.Run("Pending payment approved", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SET status = 'approved', otp_code = $1")).
			WithArgs(digest, expiresAt, "notes", paymentID, domain.PaymentStatusPending).
			WillReturnRows(paymentRow(paymentID, domain.PaymentStatusApproved, &digest, &expiresAt, nil, now))

		result, err := repo.SetApproved(context.Background(), paymentID, domain.PaymentStatusPending, digest, expiresAt, "notes")
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusApproved, result.Status)
	})

	t.Run("Concurrent transition loses", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SET status = 'approved', otp_code = $1")).
			WithArgs(digest, expiresAt, "notes", paymentID, domain.PaymentStatusPending).
			WillReturnError(pgx.ErrNoRows)

		result, err := repo.SetApproved(context.Background(), paymentID, domain.PaymentStatusPending, digest, expiresAt, "notes")
		assert.NoError(t, err)
		assert.Nil(t, result)
	})
}

func TestRepository_UpdateOTP(t *testing.T) {
	repo, mock := NewMock(t)
	paymentID := uuid.New()
	now := time.Now()
	digest := "digest"
	expiresAt := now.Add(15 * time.Minute)

	t.Run("OTP replaced on approved payment", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SET otp_code = $1, otp_expires_at = $2, otp_used_at = NULL")).
			WithArgs(digest, expiresAt, paymentID).
			WillReturnRows(paymentRow(paymentID, domain.PaymentStatusApproved, &digest, &expiresAt, nil, now))

		result, err := repo.UpdateOTP(context.Background(), paymentID, digest, expiresAt)
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusApproved, result.Status)
	})

	t.Run("Not approved", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SET otp_code = $1, otp_expires_at = $2, otp_used_at = NULL")).
			WithArgs(digest, expiresAt, paymentID).
			WillReturnError(pgx.ErrNoRows)

		result, err := repo.UpdateOTP(context.Background(), paymentID, digest, expiresAt)
		assert.NoError(t, err)
		assert.Nil(t, result)
	})
}

func TestRepository_SetRejected(t *testing.T) {
	repo, mock := NewMock(t)
	paymentID := uuid.New()
	now := time.Now()

	t.Run("Payment rejected", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SET status = 'rejected', notes = $1")).
			WithArgs("fake proof", paymentID).
			WillReturnRows(paymentRow(paymentID, domain.PaymentStatusRejected, nil, nil, nil, now))

		result, err := repo.SetRejected(context.Background(), paymentID, "fake proof")
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusRejected, result.Status)
	})

	t.Run("Already final", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SET status = 'rejected', notes = $1")).
			WithArgs("fake proof", paymentID).
			WillReturnError(pgx.ErrNoRows)

		result, err := repo.SetRejected(context.Background(), paymentID, "fake proof")
		assert.NoError(t, err)
		assert.Nil(t, result)
	})
}

func TestRepository_Complete(t *testing.T) {
	repo, mock := NewMock(t)
	paymentID := uuid.New()
	now := time.Now()
	digest := "digest"
	usedAt := now

	t.Run("Payment completed", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SET status = 'completed', otp_used_at = now()")).
			WithArgs(paymentID).
			WillReturnRows(paymentRow(paymentID, domain.PaymentStatusCompleted, &digest, nil, &usedAt, now))

		result, err := repo.Complete(context.Background(), paymentID)
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusCompleted, result.Status)
		assert.NotNil(t, result.OTPUsedAt)
	})

	t.Run("Second completion attempt sees no row", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SET status = 'completed', otp_used_at = now()")).
			WithArgs(paymentID).
			WillReturnError(pgx.ErrNoRows)

		result, err := repo.Complete(context.Background(), paymentID)
		assert.NoError(t, err)
		assert.Nil(t, result)
	})
}
