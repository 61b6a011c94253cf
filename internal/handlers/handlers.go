package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/webkuhmanis/coinpay/docs"
	adminhandlers "github.com/webkuhmanis/coinpay/internal/handlers/admin"
	authhandlers "github.com/webkuhmanis/coinpay/internal/handlers/auth"
	balancehandlers "github.com/webkuhmanis/coinpay/internal/handlers/balance"
	paymenthandlers "github.com/webkuhmanis/coinpay/internal/handlers/payments"
	"github.com/webkuhmanis/coinpay/internal/service"
	"github.com/webkuhmanis/coinpay/pkg/auth"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type PaymentsHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	GetPayment(w http.ResponseWriter, r *http.Request)
	VerifyOTP(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
}

type BalanceHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	ListPayments(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	RegenerateOTP(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler     AuthHandler
	PaymentsHandler PaymentsHandler
	BalanceHandler  BalanceHandler
	AdminHandler    AdminHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		AuthHandler:     authhandlers.New(s.AuthService),
		PaymentsHandler: paymenthandlers.New(s.PaymentService),
		BalanceHandler:  balancehandlers.New(s.BalanceService),
		AdminHandler:    adminhandlers.New(s.AdminService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.AuthHandler.Register)
		r.Post("/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)
			r.Route("/payments", func(r chi.Router) {
				r.Post("/", h.PaymentsHandler.Submit)
				r.Get("/", h.PaymentsHandler.History)
				r.Get("/{id}", h.PaymentsHandler.GetPayment)
				r.Post("/{id}/verify-otp", h.PaymentsHandler.VerifyOTP)
			})
			r.Get("/balance", h.BalanceHandler.GetBalance)
		})
	})
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(auth.AuthMiddleware, auth.AdminMiddleware)
		r.Route("/payments", func(r chi.Router) {
			r.Get("/", h.AdminHandler.ListPayments)
			r.Post("/{id}/approve", h.AdminHandler.Approve)
			r.Post("/{id}/regenerate-otp", h.AdminHandler.RegenerateOTP)
			r.Post("/{id}/reject", h.AdminHandler.Reject)
		})
	})

	return r
}
