package balanceservice

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type UserRepo interface {
	GetCoins(ctx context.Context, userID int) (decimal.Decimal, error)
	AddCoins(ctx context.Context, userID int, amount decimal.Decimal) (decimal.Decimal, error)
}

type Service struct {
	userRepo UserRepo
}

func New(userRepo UserRepo) *Service {
	return &Service{
		userRepo: userRepo,
	}
}

var ErrNonPositiveAmount = errors.New("credit amount must be positive")

func (s *Service) GetCoins(ctx context.Context, userID int) (decimal.Decimal, error) {
	coins, err := s.userRepo.GetCoins(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get coins", zap.Error(err))
		return decimal.Zero, err
	}
	return coins, nil
}

// Credit adds amount to the user's coins. Callers gate it on the payment's
// completed transition; the repo applies it as a single atomic update.
func (s *Service) Credit(ctx context.Context, userID int, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, ErrNonPositiveAmount
	}
	coins, err := s.userRepo.AddCoins(ctx, userID, amount)
	if err != nil {
		zap.L().Error("failed to credit coins", zap.Error(err))
		return decimal.Zero, err
	}
	zap.L().Info("coins credited",
		zap.Int("user_id", userID),
		zap.String("amount", amount.String()))
	return coins, nil
}
