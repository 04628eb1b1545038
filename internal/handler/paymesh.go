package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/paymesh/paymesh-server/internal/logger"
	"github.com/paymesh/paymesh-server/internal/metrics"
	"github.com/paymesh/paymesh-server/internal/model"
	"github.com/paymesh/paymesh-server/starknet"
)

const (
	StatusMessage         = "PAYMESH IS ACTIVE"
	PaySuccessPrefix      = "AMOUNT SPLIT SUCCESFULLY "
	MessageInvalidAddress = "INVALID ADDRESS"
	MessageRequestFailed  = "unable to make request"
	MessageUnauthorized   = "UNAUTHORIZED ORIGIN"

	// an address body is ~70 bytes; anything much larger is not an address
	maxPayBodyBytes = 4 << 10
)

// Payer submits pay transactions for members
type Payer interface {
	PayMember(ctx context.Context, memberAddress string) (*model.PayResult, error)
}

// PaymeshHandler serves the relay endpoints
type PaymeshHandler struct {
	payer   Payer
	log     logger.Logger
	metrics metrics.Recorder
}

// NewPaymeshHandler creates a new PaymeshHandler
func NewPaymeshHandler(payer Payer, log logger.Logger, rec metrics.Recorder) *PaymeshHandler {
	if log == nil {
		log = logger.NoopLogger{}
	}
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &PaymeshHandler{
		payer:   payer,
		log:     log,
		metrics: rec,
	}
}

// Status handles GET /
// @Summary      Liveness check
// @Description  Always reports that the relay is up
// @Tags         paymesh
// @Produce      json
// @Success      200  {string}  string  "PAYMESH IS ACTIVE"
// @Router       / [get]
func (h *PaymeshHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusMessage)
}

// PayMember handles POST /pay_member
// @Summary      Pay a member
// @Description  Invokes pay(member) on the PayMesh contract. The body is a bare JSON string, not an object.
// @Description  Each call submits a new transaction; the endpoint is not idempotent.
// @Tags         paymesh
// @Accept       json
// @Produce      json
// @Param        address  body      string  true  "Member address: 0x followed by 64 hex digits"
// @Success      200      {string}  string  "AMOUNT SPLIT SUCCESFULLY <tx hash>"
// @Failure      500      {object}  model.ErrorResponse
// @Failure      502      {object}  model.ErrorResponse
// @Router       /pay_member [post]
func (h *PaymeshHandler) PayMember(w http.ResponseWriter, r *http.Request) {
	address, err := decodeAddress(w, r)
	if err != nil || !starknet.IsValidAddress(address) {
		h.metrics.IncCounter(metrics.EventPayInvalidAddress)
		h.log.Debug("rejected pay request", map[string]any{
			"remote": r.RemoteAddr,
			"error":  err,
		})
		writeJSON(w, http.StatusBadGateway, model.ErrorResponse{Message: MessageInvalidAddress})
		return
	}

	result, err := h.payer.PayMember(r.Context(), address)
	switch {
	case err == nil:
	case errors.Is(err, starknet.ErrInvalidAddress):
		h.metrics.IncCounter(metrics.EventPayInvalidAddress)
		writeJSON(w, http.StatusBadGateway, model.ErrorResponse{Message: MessageInvalidAddress})
		return
	case errors.Is(err, starknet.ErrAddressOutOfRange):
		// passes the shape check but is not a field element: fatal to this request only
		h.metrics.IncCounter(metrics.EventPayFailed)
		h.log.Error("pay request address not representable", map[string]any{
			"member": address,
			"error":  err,
		})
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Message: MessageRequestFailed})
		return
	default:
		// details are logged by the relay; the caller only gets the generic message
		h.metrics.IncCounter(metrics.EventPayFailed)
		writeJSON(w, http.StatusBadGateway, model.ErrorResponse{Message: MessageRequestFailed})
		return
	}

	h.metrics.IncCounter(metrics.EventPaySubmitted)
	writeJSON(w, http.StatusOK, PaySuccessPrefix+result.TxHash)
}

// Unauthorized answers unmatched routes and requests from origins outside the allow-list
func (h *PaymeshHandler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	h.metrics.IncCounter(metrics.EventUnauthorized)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = io.WriteString(w, MessageUnauthorized)
}

// decodeAddress reads a body that is exactly one JSON string
func decodeAddress(w http.ResponseWriter, r *http.Request) (string, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayBodyBytes))
	if err != nil {
		return "", err
	}

	var address string
	if err := json.Unmarshal(body, &address); err != nil {
		return "", err
	}
	return address, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
