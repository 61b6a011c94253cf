package paymentservice

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/webkuhmanis/coinpay/internal/domain"
	"github.com/webkuhmanis/coinpay/internal/pg"
)

type Repo interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	FindByIDAndUser(ctx context.Context, id uuid.UUID, userID int) (*domain.Payment, error)
	FindByUserID(ctx context.Context, userID int, limit int) ([]domain.Payment, error)
	FindActionable(ctx context.Context) ([]domain.ActionablePayment, error)
	SetApproved(ctx context.Context, id uuid.UUID, fromStatus string, digest string, expiresAt time.Time, notes string) (*domain.Payment, error)
	UpdateOTP(ctx context.Context, id uuid.UUID, digest string, expiresAt time.Time) (*domain.Payment, error)
	SetRejected(ctx context.Context, id uuid.UUID, reason string) (*domain.Payment, error)
	Complete(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
}

type AttemptLimiter interface {
	RecordFailure(ctx context.Context, paymentID uuid.UUID, userID int) (*domain.AttemptCounter, error)
	IsLocked(ctx context.Context, paymentID uuid.UUID) (bool, error)
	Clear(ctx context.Context, paymentID uuid.UUID) error
}

type Ledger interface {
	Credit(ctx context.Context, userID int, amount decimal.Decimal) (decimal.Decimal, error)
}

type AdminLogRepo interface {
	Append(ctx context.Context, entry *domain.AdminLogEntry) (*domain.AdminLogEntry, error)
}

type OTPGenerator interface {
	Generate(length int) (string, error)
	Digest(code string) string
	Verify(code, digest string) bool
}

type Notifier interface {
	Publish(ctx context.Context, eventType string, payment *domain.Payment)
}

// Admin log actions.
const (
	ActionApprovePayment = "approve_payment"
	ActionRegenerateOTP  = "regenerate_otp"
	ActionRejectPayment  = "reject_payment"
)

// Notifier event types.
const (
	EventApproved  = "payment.approved"
	EventRejected  = "payment.rejected"
	EventCompleted = "payment.completed"
)

var (
	ErrInvalidAmount      = errors.New("amount must be a positive number")
	ErrProofRequired      = errors.New("proof of payment is required")
	ErrCodeRequired       = errors.New("otp code is required")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrRateLimited        = errors.New("too many attempts, try again later")
	ErrPaymentNotApproved = errors.New("payment not in approved status")
	ErrOTPExpired         = errors.New("otp expired")
	ErrOTPAlreadyUsed     = errors.New("otp already used")
	ErrInvalidOTP         = errors.New("invalid otp")
)

type Config struct {
	OTPLength        int
	OTPExpiryMinutes int
}

type Service struct {
	repo      Repo
	limiter   AttemptLimiter
	ledger    Ledger
	adminLog  AdminLogRepo
	otp       OTPGenerator
	notifier  Notifier
	txManager pg.TXManager
	cfg       Config
}

func New(repo Repo, limiter AttemptLimiter, ledger Ledger, adminLog AdminLogRepo, otpGen OTPGenerator, notifier Notifier, txManager pg.TXManager, cfg Config) *Service {
	return &Service{
		repo:      repo,
		limiter:   limiter,
		ledger:    ledger,
		adminLog:  adminLog,
		otp:       otpGen,
		notifier:  notifier,
		txManager: txManager,
		cfg:       cfg,
	}
}

// Submit creates a pending payment from a user's proof of an off-platform
// transfer.
func (s *Service) Submit(ctx context.Context, userID int, amount decimal.Decimal, proofRef string) (*domain.Payment, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if proofRef == "" {
		return nil, ErrProofRequired
	}

	payment := &domain.Payment{
		UserID:   userID,
		Amount:   amount,
		ProofRef: proofRef,
		Status:   domain.PaymentStatusPending,
	}
	created, err := s.repo.Create(ctx, payment)
	if err != nil {
		zap.L().Error("can't create payment", zap.Error(err))
		return nil, err
	}

	zap.L().Info("payment submitted",
		zap.String("payment_id", created.ID.String()),
		zap.Int("user_id", userID),
		zap.String("amount", amount.String()))
	return created, nil
}

// ApproveResult carries the plaintext OTP back to the approving admin for
// out-of-band delivery. The plaintext is never persisted or logged.
type ApproveResult struct {
	OTP          string
	OTPExpiresAt time.Time
}

// Approve moves a pending payment to approved and issues a fresh OTP.
// Approving an already approved payment is allowed and overwrites the live
// code, which is intentional self-service regeneration.
func (s *Service) Approve(ctx context.Context, adminID int, paymentID uuid.UUID, notes string) (*ApproveResult, error) {
	payment, err := s.repo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil || (payment.Status != domain.PaymentStatusPending && payment.Status != domain.PaymentStatusApproved) {
		return nil, ErrPaymentNotFound
	}
	reapproved := payment.Status == domain.PaymentStatusApproved

	code, digest, expiresAt, err := s.issueOTP()
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.SetApproved(ctx, paymentID, payment.Status, digest, expiresAt, notes)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// Lost the race to a concurrent transition.
		return nil, ErrPaymentNotFound
	}

	s.logAdminAction(ctx, adminID, ActionApprovePayment, paymentID, map[string]any{
		"notes":      notes,
		"reapproved": reapproved,
	})
	s.notifier.Publish(ctx, EventApproved, updated)

	zap.L().Info("payment approved",
		zap.String("payment_id", paymentID.String()),
		zap.Int("admin_id", adminID),
		zap.Bool("reapproved", reapproved))
	return &ApproveResult{OTP: code, OTPExpiresAt: expiresAt}, nil
}

// RegenerateOTP replaces the OTP on an approved payment and clears any prior
// consumption mark. The old code stops verifying immediately.
func (s *Service) RegenerateOTP(ctx context.Context, adminID int, paymentID uuid.UUID) (*ApproveResult, error) {
	code, digest, expiresAt, err := s.issueOTP()
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateOTP(ctx, paymentID, digest, expiresAt)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrPaymentNotFound
	}

	s.logAdminAction(ctx, adminID, ActionRegenerateOTP, paymentID, nil)

	zap.L().Info("payment otp regenerated",
		zap.String("payment_id", paymentID.String()),
		zap.Int("admin_id", adminID))
	return &ApproveResult{OTP: code, OTPExpiresAt: expiresAt}, nil
}

func (s *Service) Reject(ctx context.Context, adminID int, paymentID uuid.UUID, reason string) error {
	rejected, err := s.repo.SetRejected(ctx, paymentID, reason)
	if err != nil {
		return err
	}
	if rejected == nil {
		return ErrPaymentNotFound
	}

	s.logAdminAction(ctx, adminID, ActionRejectPayment, paymentID, map[string]any{
		"reason": reason,
	})
	s.notifier.Publish(ctx, EventRejected, rejected)

	zap.L().Info("payment rejected",
		zap.String("payment_id", paymentID.String()),
		zap.Int("admin_id", adminID))
	return nil
}

// VerifyOTP is the guarded approved -> completed transition. The checks run
// in a fixed order so each failure mode surfaces its own error: ownership,
// lockout, status, expiry, prior use, then the digest comparison. Only a
// wrong code counts as a failed attempt.
func (s *Service) VerifyOTP(ctx context.Context, userID int, paymentID uuid.UUID, code string) (decimal.Decimal, error) {
	if code == "" {
		return decimal.Zero, ErrCodeRequired
	}

	payment, err := s.repo.FindByIDAndUser(ctx, paymentID, userID)
	if err != nil {
		return decimal.Zero, err
	}
	if payment == nil {
		return decimal.Zero, ErrPaymentNotFound
	}

	locked, err := s.limiter.IsLocked(ctx, paymentID)
	if err != nil {
		return decimal.Zero, err
	}
	if locked {
		return decimal.Zero, ErrRateLimited
	}

	if payment.Status != domain.PaymentStatusApproved {
		return decimal.Zero, ErrPaymentNotApproved
	}

	if payment.OTPExpiresAt == nil || time.Now().After(*payment.OTPExpiresAt) {
		return decimal.Zero, ErrOTPExpired
	}

	if payment.OTPUsedAt != nil {
		return decimal.Zero, ErrOTPAlreadyUsed
	}

	if payment.OTPDigest == nil || !s.otp.Verify(code, *payment.OTPDigest) {
		if _, err := s.limiter.RecordFailure(ctx, paymentID, userID); err != nil {
			return decimal.Zero, err
		}
		return decimal.Zero, ErrInvalidOTP
	}

	// Completion, credit and counter reset share one transaction so the
	// credit is applied exactly once per completed payment.
	var completed *domain.Payment
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		completed, err = s.repo.Complete(ctx, paymentID)
		if err != nil {
			return err
		}
		if completed == nil {
			return ErrPaymentNotApproved
		}
		if _, err := s.ledger.Credit(ctx, userID, completed.Amount); err != nil {
			return err
		}
		return s.limiter.Clear(ctx, paymentID)
	})
	if err != nil {
		return decimal.Zero, err
	}

	s.notifier.Publish(ctx, EventCompleted, completed)

	zap.L().Info("payment completed",
		zap.String("payment_id", paymentID.String()),
		zap.Int("user_id", userID),
		zap.String("coins_added", completed.Amount.String()))
	return completed.Amount, nil
}

func (s *Service) GetPayment(ctx context.Context, userID int, paymentID uuid.UUID) (*domain.Payment, error) {
	payment, err := s.repo.FindByIDAndUser(ctx, paymentID, userID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

const defaultHistoryLimit = 20

func (s *Service) History(ctx context.Context, userID int, limit int) ([]domain.Payment, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultHistoryLimit
	}
	payments, err := s.repo.FindByUserID(ctx, userID, limit)
	if err != nil {
		zap.L().Error("failed to get payment history", zap.Error(err))
		return nil, err
	}
	return payments, nil
}

func (s *Service) ListActionable(ctx context.Context) ([]domain.ActionablePayment, error) {
	payments, err := s.repo.FindActionable(ctx)
	if err != nil {
		zap.L().Error("failed to list actionable payments", zap.Error(err))
		return nil, err
	}
	return payments, nil
}

func (s *Service) issueOTP() (code, digest string, expiresAt time.Time, err error) {
	code, err = s.otp.Generate(s.cfg.OTPLength)
	if err != nil {
		zap.L().Error("can't generate otp", zap.Error(err))
		return "", "", time.Time{}, err
	}
	digest = s.otp.Digest(code)
	expiresAt = time.Now().Add(time.Duration(s.cfg.OTPExpiryMinutes) * time.Minute)
	return code, digest, expiresAt, nil
}

// logAdminAction appends an audit entry. Audit failures are logged, not
// propagated: the transition already happened.
func (s *Service) logAdminAction(ctx context.Context, adminID int, action string, targetID uuid.UUID, details map[string]any) {
	var payload []byte
	if details != nil {
		payload, _ = json.Marshal(details)
	}
	_, err := s.adminLog.Append(ctx, &domain.AdminLogEntry{
		AdminID:  adminID,
		Action:   action,
		TargetID: targetID,
		Details:  payload,
	})
	if err != nil {
		zap.L().Error("can't write admin log entry",
			zap.String("action", action),
			zap.Error(err))
	}
}
