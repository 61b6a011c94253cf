package userrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		user      *domain.User
		mockSetup func()
		expectErr error
		result    *domain.User
	}{
		{
			name: "Create user successfully",
			user: &domain.User{
				Username:     "new_user",
				Email:        "new@example.com",
				PasswordHash: "hashed_password",
				Role:         "user",
			},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (username, email, password_hash, role)")).
					WithArgs("new_user", "new@example.com", "hashed_password", "user").
					WillReturnRows(pgxmock.NewRows([]string{"id", "coins", "created_at"}).
						AddRow(1, decimal.Zero, now))
			},
			result: &domain.User{
				ID:           1,
				Username:     "new_user",
				Email:        "new@example.com",
				PasswordHash: "hashed_password",
				Role:         "user",
				Coins:        decimal.Zero,
				CreatedAt:    now,
			},
		},
		{
			name: "Duplicate user",
			user: &domain.User{
				Username:     "new_user",
				Email:        "new@example.com",
				PasswordHash: "hashed_password",
				Role:         "user",
			},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
					WithArgs("new_user", "new@example.com", "hashed_password", "user").
					WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})
			},
			expectErr: domain.ErrDuplicateUser,
		},
		{
			name: "Database error",
			user: &domain.User{
				Username:     "new_user",
				Email:        "new@example.com",
				PasswordHash: "hashed_password",
				Role:         "user",
			},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
					WithArgs("new_user", "new@example.com", "hashed_password", "user").
					WillReturnError(errors.New("database error"))
			},
			expectErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.Create(context.Background(), tt.user)
			if tt.expectErr != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectErr.Error(), err.Error())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

func TestRepository_FindByEmail(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		email     string
		mockSetup func()
		expectErr bool
		result    *domain.User
	}{
		{
			name:  "User found",
			email: "test@example.com",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "username", "email", "password_hash", "role", "coins", "created_at"}).
					AddRow(1, "test_user", "test@example.com", "hashed_password", "user", decimal.NewFromInt(50), now)
				mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, email, password_hash, role, coins, created_at")).
					WithArgs("test@example.com").
					WillReturnRows(rows)
			},
			result: &domain.User{
				ID:           1,
				Username:     "test_user",
				Email:        "test@example.com",
				PasswordHash: "hashed_password",
				Role:         "user",
				Coins:        decimal.NewFromInt(50),
				CreatedAt:    now,
			},
		},
		{
			name:  "User not found",
			email: "missing@example.com",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, email, password_hash, role, coins, created_at")).
					WithArgs("missing@example.com").
					WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name:  "Database error",
			email: "test@example.com",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, email, password_hash, role, coins, created_at")).
					WithArgs("test@example.com").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByEmail(context.Background(), tt.email)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

func TestRepository_GetCoins(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		userID    int
		mockSetup func()
		expectErr bool
		result    decimal.Decimal
	}{
		{
			name:   "Balance returned",
			userID: 1,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT coins FROM users WHERE id = $1")).
					WithArgs(1).
					WillReturnRows(pgxmock.NewRows([]string{"coins"}).AddRow(decimal.NewFromFloat(120.50)))
			},
			result: decimal.NewFromFloat(120.50),
		},
		{
			name:   "User not found",
			userID: 2,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT coins FROM users WHERE id = $1")).
					WithArgs(2).
					WillReturnError(pgx.ErrNoRows)
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.GetCoins(context.Background(), tt.userID)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.True(t, tt.result.Equal(result))
			}
		})
	}
}

func TestRepository_AddCoins(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		userID    int
		amount    decimal.Decimal
		mockSetup func()
		expectErr bool
		result    decimal.Decimal
	}{
		{
			name:   "Credit applied",
			userID: 1,
			amount: decimal.NewFromFloat(25.00),
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("SET coins = coins + $1, updated_at = now()")).
					WithArgs(decimal.NewFromFloat(25.00), 1).
					WillReturnRows(pgxmock.NewRows([]string{"coins"}).AddRow(decimal.NewFromFloat(125.00)))
			},
			result: decimal.NewFromFloat(125.00),
		},
		{
			name:   "Database error",
			userID: 1,
			amount: decimal.NewFromFloat(25.00),
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("UPDATE users")).
					WithArgs(decimal.NewFromFloat(25.00), 1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.AddCoins(context.Background(), tt.userID, tt.amount)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.True(t, tt.result.Equal(result))
			}
		})
	}
}
