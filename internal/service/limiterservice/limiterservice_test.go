package limiterservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/webkuhmanis/coinpay/internal/domain"
)

func NewMock(t *testing.T) (*Service, *MockAttemptRepo) {
	ctrl := gomock.NewController(t)
	repo := NewMockAttemptRepo(ctrl)
	service := New(repo, 5, 15)
	defer ctrl.Finish()
	return service, repo
}

func TestRecordFailure(t *testing.T) {
	service, repo := NewMock(t)
	ctx := context.Background()
	paymentID := uuid.New()

	tests := []struct {
		name          string
		prepareMock   func()
		expectedCount int
		expectedError error
	}{
		{
			name: "Counter incremented",
			prepareMock: func() {
				repo.EXPECT().IncrementFailure(ctx, paymentID, 1, 5, 15).
					Return(&domain.AttemptCounter{PaymentID: paymentID, UserID: 1, Count: 2}, nil)
			},
			expectedCount: 2,
		},
		{
			name: "Threshold reached triggers lockout",
			prepareMock: func() {
				lockedUntil := time.Now().Add(15 * time.Minute)
				repo.EXPECT().IncrementFailure(ctx, paymentID, 1, 5, 15).
					Return(&domain.AttemptCounter{PaymentID: paymentID, UserID: 1, Count: 5, LockedUntil: &lockedUntil}, nil)
			},
			expectedCount: 5,
		},
		{
			name: "Repository error",
			prepareMock: func() {
				repo.EXPECT().IncrementFailure(ctx, paymentID, 1, 5, 15).Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			counter, err := service.RecordFailure(ctx, paymentID, 1)
			if tt.expectedError != nil {
				assert.Nil(t, counter)
				assert.EqualError(t, err, tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedCount, counter.Count)
			}
		})
	}
}

func TestIsLocked(t *testing.T) {
	service, repo := NewMock(t)
	ctx := context.Background()
	paymentID := uuid.New()

	tests := []struct {
		name        string
		prepareMock func()
		expectErr   bool
		locked      bool
	}{
		{
			name: "No counter",
			prepareMock: func() {
				repo.EXPECT().Get(ctx, paymentID).Return(nil, nil)
			},
			locked: false,
		},
		{
			name: "Counter without lockout",
			prepareMock: func() {
				repo.EXPECT().Get(ctx, paymentID).Return(&domain.AttemptCounter{Count: 3}, nil)
			},
			locked: false,
		},
		{
			name: "Active lockout",
			prepareMock: func() {
				lockedUntil := time.Now().Add(10 * time.Minute)
				repo.EXPECT().Get(ctx, paymentID).Return(&domain.AttemptCounter{Count: 5, LockedUntil: &lockedUntil}, nil)
			},
			locked: true,
		},
		{
			name: "Expired lockout",
			prepareMock: func() {
				lockedUntil := time.Now().Add(-1 * time.Minute)
				repo.EXPECT().Get(ctx, paymentID).Return(&domain.AttemptCounter{Count: 5, LockedUntil: &lockedUntil}, nil)
			},
			locked: false,
		},
		{
			name: "Repository error",
			prepareMock: func() {
				repo.EXPECT().Get(ctx, paymentID).Return(nil, errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			locked, err := service.IsLocked(ctx, paymentID)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.locked, locked)
			}
		})
	}
}

func TestClear(t *testing.T) {
	service, repo := NewMock(t)
	ctx := context.Background()
	paymentID := uuid.New()

	t.Run("Counter cleared", func(t *testing.T) {
		repo.EXPECT().Delete(ctx, paymentID).Return(nil)
		assert.NoError(t, service.Clear(ctx, paymentID))
	})

	t.Run("Repository error", func(t *testing.T) {
		repo.EXPECT().Delete(ctx, paymentID).Return(errors.New("database error"))
		assert.Error(t, service.Clear(ctx, paymentID))
	})
}
