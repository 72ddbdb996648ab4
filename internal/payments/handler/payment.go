package handler

import (
	"errors"
	"io"
	"net/http"

	paymentserrors "smarthost/internal/payments/errors"
	"smarthost/internal/payments/service"
	apperrors "smarthost/pkg/errors"
	httputil "smarthost/pkg/http"
	"smarthost/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type PaymentHandler struct {
	service service.PaymentService
	log     *logger.Logger
}

func NewPaymentHandler(service service.PaymentService, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log,
	}
}

// Process answers with the flat result object on success and {"error": ...}
// otherwise. Nothing is persisted here.
func (h *PaymentHandler) Process(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			err = apperrors.New(apperrors.CodeInvalidInput, "Request body too large", http.StatusRequestEntityTooLarge)
		} else {
			err = apperrors.MalformedBody(paymentserrors.MsgInvalidJSON, err)
		}
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Process", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	result, err := h.service.Process(r.Context(), body)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Process", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, result); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Process", "operation", "WriteJSON", "error", err)
	}
}

func (h *PaymentHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/payments", h.Process)
}
