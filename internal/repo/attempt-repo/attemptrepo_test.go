package attemptrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

var counterColumns = []string{"id", "payment_id", "user_id", "attempt_count", "last_attempt", "locked_until"}

func TestRepository_Get(t *testing.T) {
	repo, mock := NewMock(t)
	paymentID := uuid.New()
	now := time.Now()

	t.Run("Counter found", func(t *testing.T) {
		rows := pgxmock.NewRows(counterColumns).
			AddRow(uuid.New(), paymentID, 1, 3, now, nil)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, payment_id, user_id, attempt_count, last_attempt, locked_until")).
			WithArgs(paymentID).
			WillReturnRows(rows)

		counter, err := repo.Get(context.Background(), paymentID)
		assert.NoError(t, err)
		assert.Equal(t, 3, counter.Count)
		assert.Nil(t, counter.LockedUntil)
	})

	t.Run("No counter yet", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, payment_id, user_id, attempt_count, last_attempt, locked_until")).
			WithArgs(paymentID).
			WillReturnError(pgx.ErrNoRows)

		counter, err := repo.Get(context.Background(), paymentID)
		assert.NoError(t, err)
		assert.Nil(t, counter)
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, payment_id, user_id, attempt_count, last_attempt, locked_until")).
			WithArgs(paymentID).
			WillReturnError(errors.New("database error"))

		_, err := repo.Get(context.Background(), paymentID)
		assert.Error(t, err)
	})
}

func TestRepository_IncrementFailure(t *testing.T) {
	repo, mock := NewMock(t)
	paymentID := uuid.New()
	now := time.Now()

	t.Run("First failure", func(t *testing.T) {
		rows := pgxmock.NewRows(counterColumns).
			AddRow(uuid.New(), paymentID, 1, 1, now, nil)
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO otp_attempts")).
			WithArgs(paymentID, 1, 5, 15).
			WillReturnRows(rows)

		counter, err := repo.IncrementFailure(context.Background(), paymentID, 1, 5, 15)
		assert.NoError(t, err)
		assert.Equal(t, 1, counter.Count)
		assert.Nil(t, counter.LockedUntil)
	})

	t.Run("Threshold reached installs lockout", func(t *testing.T) {
		lockedUntil := now.Add(15 * time.Minute)
		rows := pgxmock.NewRows(counterColumns).
			AddRow(uuid.New(), paymentID, 1, 5, now, &lockedUntil)
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO otp_attempts")).
			WithArgs(paymentID, 1, 5, 15).
			WillReturnRows(rows)

		counter, err := repo.IncrementFailure(context.Background(), paymentID, 1, 5, 15)
		assert.NoError(t, err)
		assert.Equal(t, 5, counter.Count)
		assert.NotNil(t, counter.LockedUntil)
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO otp_attempts")).
			WithArgs(paymentID, 1, 5, 15).
			WillReturnError(errors.New("database error"))

		_, err := repo.IncrementFailure(context.Background(), paymentID, 1, 5, 15)
		assert.Error(t, err)
	})
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := NewMock(t)
	paymentID := uuid.New()

	t.Run("Counter deleted", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM otp_attempts WHERE payment_id = $1")).
			WithArgs(paymentID).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		assert.NoError(t, repo.Delete(context.Background(), paymentID))
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM otp_attempts WHERE payment_id = $1")).
			WithArgs(paymentID).
			WillReturnError(errors.New("database error"))

		assert.Error(t, repo.Delete(context.Background(), paymentID))
	})
}
