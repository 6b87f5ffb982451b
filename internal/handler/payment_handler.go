package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"roomshift/internal/errors"
	"roomshift/internal/gateway"
	"roomshift/internal/service"
)

// PaymentHandler handles eSewa and Khalti endpoints.
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// InitiatePaymentRequest starts a payment for a booking. Amount is in rupees
// and may be sent as a number or a numeric string.
type InitiatePaymentRequest struct {
	BookingID string          `json:"bookingId"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"number"`
}

// EsewaInitiateResponse carries the form the browser posts to eSewa.
type EsewaInitiateResponse struct {
	Success    bool              `json:"success"`
	PaymentURL string            `json:"paymentUrl"`
	Params     gateway.EsewaForm `json:"params"`
}

// KhaltiInitiateResponse configures the Khalti checkout widget.
type KhaltiInitiateResponse struct {
	Success         bool   `json:"success"`
	KhaltiPublicKey string `json:"khaltiPublicKey"`
	TransactionID   string `json:"transactionId"`
	// Amount is in paisa.
	Amount int64 `json:"amount"`
}

// KhaltiVerifyRequest is posted by the checkout widget's success handler.
type KhaltiVerifyRequest struct {
	Token         string          `json:"token"`
	Amount        decimal.Decimal `json:"amount" swaggertype:"number"`
	TransactionID string          `json:"transactionId"`
}

// PaymentResultResponse reports the outcome of a callback or verification.
type PaymentResultResponse struct {
	Success       bool   `json:"success"`
	Msg           string `json:"msg"`
	TransactionID string `json:"transactionId,omitempty"`
}

func invalidBody() error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Msg:  "invalid request body",
		Code: "INVALID_REQUEST",
	})
}

// InitiateEsewa godoc
// @Summary Start an eSewa payment
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body InitiatePaymentRequest true "Booking and amount"
// @Success 200 {object} EsewaInitiateResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /payment/esewa/initiate [post]
func (h *PaymentHandler) InitiateEsewa(c echo.Context) error {
	var req InitiatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	res, err := h.paymentService.InitiateEsewa(c.Request().Context(), req.BookingID, req.Amount)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, EsewaInitiateResponse{
		Success:    true,
		PaymentURL: res.PaymentURL,
		Params:     res.Params,
	})
}

// esewaPid reads the transaction id eSewa echoes back; older callbacks name it oid.
func esewaPid(c echo.Context) string {
	if pid := c.QueryParam("pid"); pid != "" {
		return pid
	}
	return c.QueryParam("oid")
}

// EsewaSuccess godoc
// @Summary eSewa success redirect
// @Description Confirms the payment with eSewa before marking the booking paid.
// @Tags payments
// @Produce json
// @Param pid query string true "Transaction ID"
// @Param refId query string true "eSewa reference ID"
// @Param amt query string false "Amount"
// @Success 200 {object} PaymentResultResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /payment/esewa/success [get]
func (h *PaymentHandler) EsewaSuccess(c echo.Context) error {
	txn, err := h.paymentService.ConfirmEsewa(c.Request().Context(), esewaPid(c), c.QueryParam("refId"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, PaymentResultResponse{
		Success:       true,
		Msg:           "Payment successful",
		TransactionID: txn.TransactionID,
	})
}

// EsewaFailure godoc
// @Summary eSewa failure redirect
// @Tags payments
// @Produce json
// @Param pid query string true "Transaction ID"
// @Param refId query string false "eSewa reference ID"
// @Success 200 {object} PaymentResultResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /payment/esewa/failure [get]
func (h *PaymentHandler) EsewaFailure(c echo.Context) error {
	txn, err := h.paymentService.FailEsewa(c.Request().Context(), esewaPid(c), c.QueryParam("refId"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, PaymentResultResponse{
		Success:       false,
		Msg:           "Payment failed",
		TransactionID: txn.TransactionID,
	})
}

// InitiateKhalti godoc
// @Summary Start a Khalti payment
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body InitiatePaymentRequest true "Booking and amount"
// @Success 200 {object} KhaltiInitiateResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /payment/khalti/initiate [post]
func (h *PaymentHandler) InitiateKhalti(c echo.Context) error {
	var req InitiatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	res, err := h.paymentService.InitiateKhalti(c.Request().Context(), req.BookingID, req.Amount)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, KhaltiInitiateResponse{
		Success:         true,
		KhaltiPublicKey: res.PublicKey,
		TransactionID:   res.TransactionID,
		Amount:          res.Amount,
	})
}

// VerifyKhalti godoc
// @Summary Verify a Khalti checkout token
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body KhaltiVerifyRequest true "Checkout token"
// @Success 200 {object} PaymentResultResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /payment/khalti/verify [post]
func (h *PaymentHandler) VerifyKhalti(c echo.Context) error {
	var req KhaltiVerifyRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	txn, err := h.paymentService.VerifyKhalti(c.Request().Context(), req.Token, req.Amount, req.TransactionID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, PaymentResultResponse{
		Success:       true,
		Msg:           "Payment verified",
		TransactionID: txn.TransactionID,
	})
}
