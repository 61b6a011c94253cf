package userrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/webkuhmanis/coinpay/internal/domain"
	"github.com/webkuhmanis/coinpay/internal/pg"
)

const uniqueViolationCode = "23505"

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (repo *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, coins, created_at
	`
	err := repo.db.QueryRow(ctx, query, user.Username, user.Email, user.PasswordHash, user.Role).
		Scan(&user.ID, &user.Coins, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, domain.ErrDuplicateUser
		}
		zap.L().Error("can't save user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (repo *Repository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	query := `
		SELECT id, username, email, password_hash, role, coins, created_at
		FROM users
		WHERE email = $1
	`
	err := repo.db.QueryRow(ctx, query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role, &user.Coins, &user.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (repo *Repository) GetCoins(ctx context.Context, userID int) (decimal.Decimal, error) {
	var coins decimal.Decimal
	err := repo.db.QueryRow(ctx, `SELECT coins FROM users WHERE id = $1`, userID).Scan(&coins)
	if err != nil {
		if err == pgx.ErrNoRows {
			return decimal.Zero, pgx.ErrNoRows
		}
		zap.L().Error("can't get user coins", zap.Error(err))
		return decimal.Zero, err
	}
	return coins, nil
}

// AddCoins applies the credit in a single statement so concurrent credits
// never lose updates.
func (repo *Repository) AddCoins(ctx context.Context, userID int, amount decimal.Decimal) (decimal.Decimal, error) {
	var coins decimal.Decimal
	query := `
		UPDATE users
		SET coins = coins + $1, updated_at = now()
		WHERE id = $2
		RETURNING coins
	`
	err := repo.db.QueryRow(ctx, query, amount, userID).Scan(&coins)
	if err != nil {
		zap.L().Error("can't credit user coins", zap.Error(err))
		return decimal.Zero, err
	}
	return coins, nil
}
