package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	_ "github.com/webkuhmanis/coinpay/docs"
	"github.com/webkuhmanis/coinpay/internal/handlers/admin"
	"github.com/webkuhmanis/coinpay/internal/handlers/auth"
	"github.com/webkuhmanis/coinpay/internal/handlers/balance"
	"github.com/webkuhmanis/coinpay/internal/handlers/payments"
	"github.com/webkuhmanis/coinpay/internal/service"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	services := &service.Services{
		AuthService:    auth.NewMockService(ctrl),
		PaymentService: payments.NewMockService(ctrl),
		AdminService:   admin.NewMockService(ctrl),
		BalanceService: balance.NewMockService(ctrl),
	}

	h := New(services)
	assert.NotNil(t, h, "Handlers should not be nil")
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuthHandler := NewMockAuthHandler(ctrl)
	mockPaymentsHandler := NewMockPaymentsHandler(ctrl)
	mockBalanceHandler := NewMockBalanceHandler(ctrl)
	mockAdminHandler := NewMockAdminHandler(ctrl)

	mockAuthHandler.EXPECT().Register(gomock.Any(), gomock.Any()).AnyTimes()
	mockAuthHandler.EXPECT().Login(gomock.Any(), gomock.Any()).AnyTimes()
	mockPaymentsHandler.EXPECT().Submit(gomock.Any(), gomock.Any()).AnyTimes()
	mockPaymentsHandler.EXPECT().History(gomock.Any(), gomock.Any()).AnyTimes()
	mockPaymentsHandler.EXPECT().GetPayment(gomock.Any(), gomock.Any()).AnyTimes()
	mockPaymentsHandler.EXPECT().VerifyOTP(gomock.Any(), gomock.Any()).AnyTimes()
	mockBalanceHandler.EXPECT().GetBalance(gomock.Any(), gomock.Any()).AnyTimes()
	mockAdminHandler.EXPECT().ListPayments(gomock.Any(), gomock.Any()).AnyTimes()
	mockAdminHandler.EXPECT().Approve(gomock.Any(), gomock.Any()).AnyTimes()
	mockAdminHandler.EXPECT().RegenerateOTP(gomock.Any(), gomock.Any()).AnyTimes()
	mockAdminHandler.EXPECT().Reject(gomock.Any(), gomock.Any()).AnyTimes()

	h := &Handlers{
		AuthHandler:     mockAuthHandler,
		PaymentsHandler: mockPaymentsHandler,
		BalanceHandler:  mockBalanceHandler,
		AdminHandler:    mockAdminHandler,
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	tests := []struct {
		method string
		url    string
		status int
	}{
		{"POST", "/api/user/register", http.StatusOK},
		{"POST", "/api/user/login", http.StatusOK},
		{"POST", "/api/user/payments/", http.StatusUnauthorized},
		{"GET", "/api/user/payments/", http.StatusUnauthorized},
		{"GET", "/api/user/payments/123", http.StatusUnauthorized},
		{"POST", "/api/user/payments/123/verify-otp", http.StatusUnauthorized},
		{"GET", "/api/user/balance", http.StatusUnauthorized},
		{"GET", "/api/admin/payments/", http.StatusUnauthorized},
		{"POST", "/api/admin/payments/123/approve", http.StatusUnauthorized},
		{"POST", "/api/admin/payments/123/regenerate-otp", http.StatusUnauthorized},
		{"POST", "/api/admin/payments/123/reject", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
