package service

import (
	"github.com/webkuhmanis/coinpay/internal/config"
	"github.com/webkuhmanis/coinpay/internal/handlers/admin"
	"github.com/webkuhmanis/coinpay/internal/handlers/auth"
	"github.com/webkuhmanis/coinpay/internal/handlers/balance"
	"github.com/webkuhmanis/coinpay/internal/handlers/payments"

	pkgauth "github.com/webkuhmanis/coinpay/pkg/auth"
	"github.com/webkuhmanis/coinpay/pkg/otp"

	"github.com/webkuhmanis/coinpay/internal/pg"
	"github.com/webkuhmanis/coinpay/internal/repo"
	"github.com/webkuhmanis/coinpay/internal/service/authservice"
	"github.com/webkuhmanis/coinpay/internal/service/balanceservice"
	"github.com/webkuhmanis/coinpay/internal/service/limiterservice"
	"github.com/webkuhmanis/coinpay/internal/service/paymentservice"
)

type Services struct {
	AuthService    auth.Service
	PaymentService payments.Service
	AdminService   admin.Service
	BalanceService balance.Service
}

func New(cfg *config.Config, repo *repo.Repositories, txManager pg.TXManager, notifier paymentservice.Notifier) *Services {
	balanceService := balanceservice.New(repo.BalanceRepo)
	limiter := limiterservice.New(repo.AttemptRepo, cfg.OTPMaxAttempts, cfg.LockoutMinutes)
	paymentService := paymentservice.New(
		repo.PaymentRepo,
		limiter,
		balanceService,
		repo.AdminLogRepo,
		&otp.Generator{},
		notifier,
		txManager,
		paymentservice.Config{
			OTPLength:        cfg.OTPLength,
			OTPExpiryMinutes: cfg.OTPExpiryMinutes,
		},
	)
	authService := authservice.New(repo.UserRepo, &pkgauth.HashService{}, &pkgauth.JWTService{})

	return &Services{
		AuthService:    authService,
		PaymentService: paymentService,
		AdminService:   paymentService,
		BalanceService: balanceService,
	}
}
