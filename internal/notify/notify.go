package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/webkuhmanis/coinpay/internal/config"
	"github.com/webkuhmanis/coinpay/internal/domain"
	"github.com/webkuhmanis/coinpay/pkg/clients"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
	queueSize     = 100
	workerCount   = 4
)

// Event is the webhook payload for a payment lifecycle transition. It never
// carries OTP material.
type Event struct {
	Type      string          `json:"type"`
	PaymentID uuid.UUID       `json:"payment_id"`
	UserID    int             `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	At        time.Time       `json:"at"`
}

// Service delivers payment events to a configured webhook URL. Delivery is
// best-effort: a full queue drops the event with a log line rather than
// blocking a request.
type Service struct {
	url    string
	client clients.HTTPClientI
	queue  chan Event
}

func New(cfg *config.Config, client clients.HTTPClientI) *Service {
	return &Service{
		url:    cfg.WebhookURL,
		client: client,
		queue:  make(chan Event, queueSize),
	}
}

func (s *Service) Publish(ctx context.Context, eventType string, payment *domain.Payment) {
	if s.url == "" {
		return
	}
	evt := Event{
		Type:      eventType,
		PaymentID: payment.ID,
		UserID:    payment.UserID,
		Amount:    payment.Amount,
		Status:    payment.Status,
		At:        time.Now(),
	}
	select {
	case s.queue <- evt:
	default:
		zap.L().Warn("notification queue full, dropping event",
			zap.String("type", eventType),
			zap.String("payment_id", payment.ID.String()))
	}
}

// Start runs the delivery workers until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	if s.url == "" {
		zap.L().Info("webhook notifications disabled")
		return
	}
	zap.L().Info("notification service started", zap.String("url", s.url))

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < workerCount; i++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case evt := <-s.queue:
					s.deliver(evt)
				}
			}
		})
	}
	_ = g.Wait()
	zap.L().Info("notification service stopped")
}

func (s *Service) deliver(evt Event) {
	body, err := json.Marshal(evt)
	if err != nil {
		zap.L().Error("can't marshal event", zap.Error(err))
		return
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	for attempt := 1; attempt <= maxRetries; attempt++ {
		status, _, err := s.client.Post(s.url, headers, body)
		if err == nil && status >= 200 && status < 300 {
			return
		}
		zap.L().Warn("webhook delivery failed",
			zap.String("type", evt.Type),
			zap.Int("attempt", attempt),
			zap.Int("status", status),
			zap.Error(err))
		time.Sleep(retryInterval)
	}
	zap.L().Error("webhook delivery gave up",
		zap.String("type", evt.Type),
		zap.String("payment_id", evt.PaymentID.String()))
}
