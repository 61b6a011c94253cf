package limiterservice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/webkuhmanis/coinpay/internal/domain"
)

type AttemptRepo interface {
	Get(ctx context.Context, paymentID uuid.UUID) (*domain.AttemptCounter, error)
	IncrementFailure(ctx context.Context, paymentID uuid.UUID, userID int, threshold int, lockoutMinutes int) (*domain.AttemptCounter, error)
	Delete(ctx context.Context, paymentID uuid.UUID) error
}

// Service tracks failed OTP verifications per payment. State lives entirely
// in the database so lockouts survive a process restart.
type Service struct {
	repo           AttemptRepo
	maxAttempts    int
	lockoutMinutes int
}

func New(repo AttemptRepo, maxAttempts, lockoutMinutes int) *Service {
	return &Service{
		repo:           repo,
		maxAttempts:    maxAttempts,
		lockoutMinutes: lockoutMinutes,
	}
}

func (s *Service) RecordFailure(ctx context.Context, paymentID uuid.UUID, userID int) (*domain.AttemptCounter, error) {
	counter, err := s.repo.IncrementFailure(ctx, paymentID, userID, s.maxAttempts, s.lockoutMinutes)
	if err != nil {
		zap.L().Error("failed to record otp failure", zap.Error(err))
		return nil, err
	}
	if counter.LockedUntil != nil {
		zap.L().Info("payment verification locked",
			zap.String("payment_id", paymentID.String()),
			zap.Int("attempts", counter.Count),
			zap.Time("locked_until", *counter.LockedUntil))
	}
	return counter, nil
}

func (s *Service) IsLocked(ctx context.Context, paymentID uuid.UUID) (bool, error) {
	counter, err := s.repo.Get(ctx, paymentID)
	if err != nil {
		zap.L().Error("failed to get attempt counter", zap.Error(err))
		return false, err
	}
	if counter == nil || counter.LockedUntil == nil {
		return false, nil
	}
	return counter.LockedUntil.After(time.Now()), nil
}

func (s *Service) Clear(ctx context.Context, paymentID uuid.UUID) error {
	if err := s.repo.Delete(ctx, paymentID); err != nil {
		zap.L().Error("failed to clear attempt counter", zap.Error(err))
		return err
	}
	return nil
}
