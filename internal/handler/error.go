package handler

import (
	"errors"
	"net/http"

	"teahouse-kiosk/internal/cart"
	"teahouse-kiosk/internal/catalog"
	"teahouse-kiosk/internal/discount"
	"teahouse-kiosk/internal/kiosk"
	"teahouse-kiosk/internal/logger"
	"teahouse-kiosk/internal/order"
	"teahouse-kiosk/internal/payment"
	"teahouse-kiosk/internal/preference"
	"teahouse-kiosk/internal/utils"

	"go.uber.org/zap"
)

var (
	ErrMissingDevice = errors.New("device id is required")
	ErrBadRequest    = errors.New("malformed request body")
)

// writeError maps a domain error onto a status code and JSON body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var rejected *discount.RejectedError
	if errors.As(err, &rejected) {
		utils.WriteJSON(w, http.StatusUnprocessableEntity, rejectionResponse{
			Error:  rejected.Reason,
			Reason: rejected.Reason,
		})
		return
	}

	var submission *order.SubmissionError
	if errors.As(err, &submission) {
		utils.WriteJSONError(w, submission.Message, http.StatusBadGateway)
		return
	}

	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.FromCtx(r.Context()).Error("unhandled error", zap.Error(err))
		utils.WriteJSONError(w, "internal server error", status)
		return
	}
	utils.WriteJSONError(w, err.Error(), status)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrCatalogUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, payment.ErrPaymentDeclined):
		return http.StatusPaymentRequired
	case errors.Is(err, payment.ErrGatewayUnavailable),
		errors.Is(err, order.ErrOrderSubmissionFailed):
		return http.StatusBadGateway
	case errors.Is(err, kiosk.ErrSubmissionInProgress):
		return http.StatusConflict
	case errors.Is(err, ErrMissingDevice),
		errors.Is(err, ErrBadRequest),
		errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, order.ErrInvalidPaymentMethod),
		errors.Is(err, payment.ErrInvalidAmount),
		errors.Is(err, cart.ErrInvalidSize),
		errors.Is(err, cart.ErrInvalidLevel),
		errors.Is(err, cart.ErrUnknownTopping),
		errors.Is(err, kiosk.ErrUnknownProduct),
		errors.Is(err, kiosk.ErrUnknownCategory),
		errors.Is(err, preference.ErrInvalidScreen),
		errors.Is(err, preference.ErrMissingDevice):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
