package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment statuses. Transitions only move forward:
// pending -> approved -> completed, or pending|approved -> rejected.
const (
	PaymentStatusPending   string = "pending"
	PaymentStatusApproved  string = "approved"
	PaymentStatusRejected  string = "rejected"
	PaymentStatusCompleted string = "completed"
)

type User struct {
	ID           int             `db:"id"`
	Username     string          `db:"username"`
	Email        string          `db:"email"`
	PasswordHash string          `db:"password_hash"`
	Role         string          `db:"role"`
	Coins        decimal.Decimal `db:"coins"`
	CreatedAt    time.Time       `db:"created_at"`
}

type Payment struct {
	ID           uuid.UUID       `db:"id"`
	UserID       int             `db:"user_id"`
	Amount       decimal.Decimal `db:"amount"`
	ProofRef     string          `db:"proof_ref"`
	Status       string          `db:"status"`
	OTPDigest    *string         `db:"otp_code"`
	OTPExpiresAt *time.Time      `db:"otp_expires_at"`
	OTPUsedAt    *time.Time      `db:"otp_used_at"`
	Notes        string          `db:"notes"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

// ActionablePayment is a payment awaiting admin action, joined with the
// submitting user's name for the admin listing.
type ActionablePayment struct {
	Payment
	Username string `db:"username"`
}

type AttemptCounter struct {
	ID          uuid.UUID  `db:"id"`
	PaymentID   uuid.UUID  `db:"payment_id"`
	UserID      int        `db:"user_id"`
	Count       int        `db:"attempt_count"`
	LastAttempt time.Time  `db:"last_attempt"`
	LockedUntil *time.Time `db:"locked_until"`
}

type AdminLogEntry struct {
	ID        uuid.UUID `db:"id"`
	AdminID   int       `db:"admin_id"`
	Action    string    `db:"action"`
	TargetID  uuid.UUID `db:"target_id"`
	Details   []byte    `db:"details"`
	CreatedAt time.Time `db:"created_at"`
}
