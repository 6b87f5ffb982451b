package handler_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"roomshift/internal/auth"
	"roomshift/internal/config"
	apperrors "roomshift/internal/errors"
	"roomshift/internal/gateway"
	"roomshift/internal/handler"
	"roomshift/internal/model"
	"roomshift/internal/router"
	"roomshift/internal/service"
)

type testServer struct {
	e        *echo.Echo
	jwt      *auth.JWTService
	auth     *MockAuthService
	bookings *MockBookingService
	payments *MockPaymentService
}

func newTestServer(authRequired bool) *testServer {
	s := &testServer{
		e:        echo.New(),
		jwt:      auth.NewJWTService("test-secret"),
		auth:     new(MockAuthService),
		bookings: new(MockBookingService),
		payments: new(MockPaymentService),
	}
	cfg := &config.Config{
		AuthRequired:   authRequired,
		AllowedOrigins: []string{"https://roomshift.netlify.app"},
	}
	router.Register(
		s.e,
		cfg,
		s.jwt,
		handler.NewAuthHandler(s.auth),
		handler.NewBookingHandler(s.bookings),
		handler.NewPaymentHandler(s.payments),
	)
	return s
}

func (s *testServer) do(method, target, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func amountOf(v int64) interface{} {
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(v)) })
}

func TestRegister(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		s := newTestServer(false)
		s.auth.On("Register", mock.Anything, "a@b.com", "1234", "9800000000").Return(&service.AuthResult{
			User:        &model.User{ID: "u1", Email: "a@b.com", PasswordHash: "hash"},
			AccessToken: "tok",
		}, nil)

		rec := s.do(http.MethodPost, "/api/register", `{"email":"a@b.com","password":"1234","phone":"9800000000"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "User registered successfully", body["msg"])
		assert.Equal(t, map[string]interface{}{"id": "u1", "email": "a@b.com"}, body["user"])
		assert.Equal(t, "tok", body["token"])
		assert.NotContains(t, rec.Body.String(), "hash")
	})

	t.Run("duplicate", func(t *testing.T) {
		s := newTestServer(false)
		s.auth.On("Register", mock.Anything, "a@b.com", "1234", "").Return(nil, apperrors.ErrDuplicateUser)

		rec := s.do(http.MethodPost, "/api/register", `{"email":"a@b.com","password":"1234"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "user already exists", body["msg"])
		assert.Equal(t, "DUPLICATE_USER", body["code"])
		assert.Equal(t, false, body["success"])
	})

	t.Run("missing password", func(t *testing.T) {
		s := newTestServer(false)

		rec := s.do(http.MethodPost, "/api/register", `{"email":"a@b.com"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", decode(t, rec)["code"])
		s.auth.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("whitespace email", func(t *testing.T) {
		s := newTestServer(false)

		rec := s.do(http.MethodPost, "/api/register", `{"email":"   ","password":"1234"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", decode(t, rec)["code"])
		s.auth.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("padded email is trimmed", func(t *testing.T) {
		s := newTestServer(false)
		s.auth.On("Register", mock.Anything, "a@b.com", "1234", "").Return(&service.AuthResult{
			User: &model.User{ID: "u1", Email: "a@b.com"},
		}, nil)

		rec := s.do(http.MethodPost, "/api/register", `{"email":"  a@b.com ","password":"1234"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		s.auth.AssertExpectations(t)
	})
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"unknown email", apperrors.ErrUserNotFound, http.StatusBadRequest, "user does not exist"},
		{"wrong password", apperrors.ErrInvalidCredentials, http.StatusBadRequest, "invalid credentials"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(false)
			s.auth.On("Login", mock.Anything, "test@gmail.com", "nope").Return(nil, tt.err)

			rec := s.do(http.MethodPost, "/api/login", `{"email":"test@gmail.com","password":"nope"}`)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.msg, decode(t, rec)["msg"])
		})
	}

	t.Run("whitespace email", func(t *testing.T) {
		s := newTestServer(false)

		rec := s.do(http.MethodPost, "/api/login", `{"email":"\t ","password":"1234"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", decode(t, rec)["code"])
		s.auth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("success", func(t *testing.T) {
		s := newTestServer(false)
		s.auth.On("Login", mock.Anything, "test@gmail.com", "1234").Return(&service.AuthResult{
			User:        &model.User{ID: "u1", Email: "test@gmail.com"},
			AccessToken: "tok",
		}, nil)

		rec := s.do(http.MethodPost, "/api/login", `{"email":"test@gmail.com","password":"1234"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "Login successful!", body["msg"])
		assert.Equal(t, "u1", body["user"].(map[string]interface{})["id"])
	})
}

func TestBookMove(t *testing.T) {
	t.Run("created returns booking id", func(t *testing.T) {
		s := newTestServer(false)
		s.bookings.On("Create", mock.Anything, service.CreateBookingInput{
			UserID:             "u1",
			HouseSize:          "2BHK",
			Price:              "Rs. 5000",
			PickupAddress:      "Kathmandu",
			DestinationAddress: "Pokhara",
		}).Return(&model.Booking{ID: "b1"}, nil)

		rec := s.do(http.MethodPost, "/api/book-move",
			`{"userId":"u1","houseSize":"2BHK","price":"Rs. 5000","pickupAddress":"Kathmandu","destinationAddress":"Pokhara"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "Booking confirmed successfully!", body["msg"])
		assert.Equal(t, "b1", body["bookingId"])
	})

	t.Run("empty pickup", func(t *testing.T) {
		s := newTestServer(false)
		s.bookings.On("Create", mock.Anything, mock.Anything).Return(nil, apperrors.ErrValidation)

		rec := s.do(http.MethodPost, "/api/book-move", `{"userId":"u1","pickupAddress":"","destinationAddress":"Pokhara"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", decode(t, rec)["code"])
	})

	t.Run("database failure echoes raw error", func(t *testing.T) {
		s := newTestServer(false)
		s.bookings.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

		rec := s.do(http.MethodPost, "/api/book-move", `{"pickupAddress":"a","destinationAddress":"b"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "connection refused", decode(t, rec)["error"])
	})
}

func TestMyBookings(t *testing.T) {
	t.Run("empty history is an empty array", func(t *testing.T) {
		s := newTestServer(false)
		s.bookings.On("ListByUser", mock.Anything, "u1").Return([]model.Booking{}, nil)

		rec := s.do(http.MethodGet, "/api/my-bookings/u1", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("bookings carry both id keys", func(t *testing.T) {
		s := newTestServer(false)
		s.bookings.On("ListByUser", mock.Anything, "u1").Return([]model.Booking{
			{ID: "b2", UserID: "u1"},
			{ID: "b1", UserID: "u1"},
		}, nil)

		rec := s.do(http.MethodGet, "/api/my-bookings/u1", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var out []map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		require.Len(t, out, 2)
		assert.Equal(t, "b2", out[0]["_id"])
		assert.Equal(t, "b2", out[0]["id"])
	})

	t.Run("failure", func(t *testing.T) {
		s := newTestServer(false)
		s.bookings.On("ListByUser", mock.Anything, "u1").Return(nil, errors.New("timeout"))

		rec := s.do(http.MethodGet, "/api/my-bookings/u1", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Could not fetch history", decode(t, rec)["error"])
	})
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(true)
	token, err := s.jwt.GenerateAccessToken("u1", "a@b.com")
	require.NoError(t, err)
	bearer := "Bearer " + token

	t.Run("missing token", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/api/my-bookings/u1", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "UNAUTHORIZED", decode(t, rec)["code"])
	})

	t.Run("other user's history", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/api/my-bookings/u2", "", echo.HeaderAuthorization, bearer)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("booking is attributed to the token's user", func(t *testing.T) {
		s.bookings.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreateBookingInput) bool {
			return in.UserID == "u1"
		})).Return(&model.Booking{ID: "b1"}, nil).Once()

		rec := s.do(http.MethodPost, "/api/book-move",
			`{"userId":"someone-else","pickupAddress":"a","destinationAddress":"b"}`,
			echo.HeaderAuthorization, bearer)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("esewa callbacks stay public", func(t *testing.T) {
		s.payments.On("FailEsewa", mock.Anything, "TXN-1-b1", "").
			Return(&model.PaymentTransaction{TransactionID: "TXN-1-b1"}, nil).Once()

		rec := s.do(http.MethodGet, "/api/payment/esewa/failure?pid=TXN-1-b1", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestEsewaInitiate(t *testing.T) {
	s := newTestServer(false)
	s.payments.On("InitiateEsewa", mock.Anything, "abc123", amountOf(500)).Return(&service.EsewaInitiation{
		TransactionID: "TXN-1700000000000-abc123",
		PaymentURL:    "https://uat.esewa.com.np/epay/main",
		Params: gateway.EsewaForm{
			Amt: "500", Psc: "0", Pdc: "0", TxAmt: "0", TAmt: "500",
			Pid: "TXN-1700000000000-abc123", Scd: "EPAYTEST",
		},
	}, nil)

	rec := s.do(http.MethodPost, "/api/payment/esewa/initiate", `{"bookingId":"abc123","amount":500}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "https://uat.esewa.com.np/epay/main", body["paymentUrl"])
	params := body["params"].(map[string]interface{})
	assert.Equal(t, float64(500), params["amt"])
	assert.Equal(t, params["amt"], params["tAmt"])
	assert.Equal(t, "TXN-1700000000000-abc123", params["pid"])
}

func TestEsewaInitiate_AmountAsString(t *testing.T) {
	s := newTestServer(false)
	s.payments.On("InitiateEsewa", mock.Anything, "abc123", amountOf(500)).
		Return(&service.EsewaInitiation{}, nil)

	rec := s.do(http.MethodPost, "/api/payment/esewa/initiate", `{"bookingId":"abc123","amount":"500"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEsewaInitiate_MissingFields(t *testing.T) {
	s := newTestServer(false)
	s.payments.On("InitiateEsewa", mock.Anything, "", mock.Anything).Return(nil, apperrors.ErrMissingFields)

	rec := s.do(http.MethodPost, "/api/payment/esewa/initiate", `{"amount":500}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "MISSING_FIELDS", decode(t, rec)["code"])
}

func TestEsewaSuccess(t *testing.T) {
	t.Run("verified", func(t *testing.T) {
		s := newTestServer(false)
		s.payments.On("ConfirmEsewa", mock.Anything, "TXN-1-b1", "REF-9").
			Return(&model.PaymentTransaction{TransactionID: "TXN-1-b1", Status: model.PaymentStatusPaid}, nil)

		rec := s.do(http.MethodGet, "/api/payment/esewa/success?pid=TXN-1-b1&refId=REF-9&amt=500", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Payment successful", body["msg"])
	})

	t.Run("oid fallback", func(t *testing.T) {
		s := newTestServer(false)
		s.payments.On("ConfirmEsewa", mock.Anything, "TXN-1-b1", "REF-9").
			Return(&model.PaymentTransaction{TransactionID: "TXN-1-b1"}, nil)

		rec := s.do(http.MethodGet, "/api/payment/esewa/success?oid=TXN-1-b1&refId=REF-9", "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		s := newTestServer(false)
		s.payments.On("ConfirmEsewa", mock.Anything, "TXN-x", "REF-9").Return(nil, apperrors.ErrTransactionNotFound)

		rec := s.do(http.MethodGet, "/api/payment/esewa/success?pid=TXN-x&refId=REF-9", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("gateway down", func(t *testing.T) {
		s := newTestServer(false)
		s.payments.On("ConfirmEsewa", mock.Anything, "TXN-1-b1", "REF-9").
			Return(nil, fmt.Errorf("%w: esewa: dial tcp: refused", apperrors.ErrGateway))

		rec := s.do(http.MethodGet, "/api/payment/esewa/success?pid=TXN-1-b1&refId=REF-9", "")

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, "EXTERNAL_GATEWAY_ERROR", decode(t, rec)["code"])
	})
}

func TestEsewaFailure(t *testing.T) {
	s := newTestServer(false)
	s.payments.On("FailEsewa", mock.Anything, "TXN-1-b1", "REF-9").
		Return(&model.PaymentTransaction{TransactionID: "TXN-1-b1", Status: model.PaymentStatusFailed}, nil)

	rec := s.do(http.MethodGet, "/api/payment/esewa/failure?pid=TXN-1-b1&refId=REF-9", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Payment failed", body["msg"])
}

func TestKhaltiInitiate(t *testing.T) {
	s := newTestServer(false)
	s.payments.On("InitiateKhalti", mock.Anything, "abc123", amountOf(500)).Return(&service.KhaltiInitiation{
		TransactionID: "TXN-1700000000000-abc123",
		PublicKey:     "test_public_key",
		Amount:        50000,
	}, nil)

	rec := s.do(http.MethodPost, "/api/payment/khalti/initiate", `{"bookingId":"abc123","amount":500}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"success": true,
		"khaltiPublicKey": "test_public_key",
		"transactionId": "TXN-1700000000000-abc123",
		"amount": 50000
	}`, rec.Body.String())
}

func TestKhaltiVerify(t *testing.T) {
	t.Run("verified", func(t *testing.T) {
		s := newTestServer(false)
		s.payments.On("VerifyKhalti", mock.Anything, "tok", amountOf(500), "TXN-1-b1").
			Return(&model.PaymentTransaction{TransactionID: "TXN-1-b1", Status: model.PaymentStatusPaid}, nil)

		rec := s.do(http.MethodPost, "/api/payment/khalti/verify", `{"token":"tok","amount":500,"transactionId":"TXN-1-b1"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "TXN-1-b1", body["transactionId"])
	})

	t.Run("rejected", func(t *testing.T) {
		s := newTestServer(false)
		s.payments.On("VerifyKhalti", mock.Anything, "bad", amountOf(500), "TXN-1-b1").
			Return(nil, apperrors.ErrPaymentVerificationFailed)

		rec := s.do(http.MethodPost, "/api/payment/khalti/verify", `{"token":"bad","amount":500,"transactionId":"TXN-1-b1"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "payment verification failed", body["msg"])
	})
}

func TestInvalidJSON(t *testing.T) {
	s := newTestServer(false)

	rec := s.do(http.MethodPost, "/api/payment/khalti/verify", `{"token":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_REQUEST", decode(t, rec)["code"])
}

func TestHealthAndTestRoutes(t *testing.T) {
	s := newTestServer(false)

	rec := s.do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = s.do(http.MethodGet, "/api/test", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "API working", decode(t, rec)["message"])
}

func TestPreflight(t *testing.T) {
	s := newTestServer(true)

	rec := s.do(http.MethodOptions, "/api/book-move", "", echo.HeaderOrigin, "https://roomshift.netlify.app")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "https://roomshift.netlify.app", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}
