package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/ordane/paygate/app/consts"
	"github.com/ordane/paygate/app/gateway"
	"github.com/ordane/paygate/app/models"
	"github.com/ordane/paygate/app/reconcile"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type createPaymentRequest struct {
	OrderID     string           `json:"orderId"`
	Amount      decimal.Decimal  `json:"amount"`
	Currency    string           `json:"currency"`
	Description string           `json:"description"`
	Metadata    *json.RawMessage `json:"metadata"`
}

type statusInfoRequest struct {
	ID   string `json:"id"`
	User string `json:"user"`
}

type refundRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

// POST /api/payments
// Submits the payment to the gateway, then records it locally as pending
// under the gateway-issued transaction id.
func (server *Server) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		server.respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if req.OrderID == "" || req.Currency == "" || !req.Amount.IsPositive() {
		server.respondError(w, http.StatusBadRequest, "Missing required fields: orderId, amount, currency")
		return
	}

	var metadata map[string]interface{}
	if req.Metadata != nil {
		if err := json.Unmarshal(*req.Metadata, &metadata); err != nil {
			server.respondError(w, http.StatusBadRequest, "metadata must be an object")
			return
		}
	}

	result := server.Gateway.SubmitPayment(gateway.PaymentRequest{
		OrderID:     req.OrderID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
		Metadata:    metadata,
	})
	if !result.Success {
		server.respondError(w, http.StatusBadRequest, result.Error)
		return
	}

	var created struct {
		TransactionID string `json:"transactionId"`
	}
	if err := json.Unmarshal(result.Data, &created); err != nil || created.TransactionID == "" {
		server.respondError(w, http.StatusBadGateway, "gateway response missing transactionId")
		return
	}

	paymentModel := models.Payment{}
	payment, err := paymentModel.CreatePayment(server.DB, &models.Payment{
		TransactionID: created.TransactionID,
		OrderID:       req.OrderID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Status:        consts.PaymentStatusPending,
		Description:   req.Description,
		Metadata:      req.Metadata,
	})
	if err != nil {
		server.respondError(w, http.StatusInternalServerError, "failed to save payment")
		return
	}

	server.respond(w, http.StatusCreated, payment, "ok")
}

// GET /api/payments/{id}
func (server *Server) GetPayment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	paymentModel := models.Payment{}
	payment, err := paymentModel.FindByID(server.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			server.respondError(w, http.StatusNotFound, "Payment not found")
			return
		}

		server.respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	server.respond(w, http.StatusOK, payment, "ok")
}

// GET /api/payments?page=1&limit=10
func (server *Server) GetPayments(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	paymentModel := models.Payment{}
	payments, total, err := paymentModel.GetPayments(server.DB, limit, page)
	if err != nil {
		server.respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	server.respond(w, http.StatusOK, map[string]interface{}{
		"payments": payments,
		"total":    total,
		"page":     page,
		"limit":    limit,
	}, "ok")
}

// GET /api/payments/status/{transactionId}
// Resolves the transaction's status from the gateway feed, then persists it
// onto the local record when one exists. Without a local record the merged
// feed entry is returned as-is.
func (server *Server) CheckStatus(w http.ResponseWriter, r *http.Request) {
	transactionID := mux.Vars(r)["transactionId"]

	entry, err := server.Reconciler.ResolveStatus(transactionID)
	if err != nil {
		if errors.Is(err, reconcile.ErrTransactionNotFound) {
			server.respondError(w, http.StatusNotFound, err.Error())
			return
		}

		server.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	status := entry.Status()

	paymentModel := models.Payment{}
	payment, err := paymentModel.FindByTransactionID(server.DB, transactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			server.respond(w, http.StatusOK, entry, "ok")
			return
		}

		server.respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	reconcile.ApplyStatus(payment, status, time.Now().UTC())
	if err := payment.Save(server.DB); err != nil {
		server.respondError(w, http.StatusInternalServerError, "failed to update payment")
		return
	}

	server.respond(w, http.StatusOK, payment, "ok")
}

// POST /api/payments/get_status_payment_info
// Existence check against the gateway feed. Responds with a bare success
// flag; the caller learns nothing beyond yes/no.
func (server *Server) GetPaymentStatusInfo(w http.ResponseWriter, r *http.Request) {
	var req statusInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = server.render.JSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid input",
		})
		return
	}

	if len(req.ID) != 12 || req.User == "" {
		_ = server.render.JSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid input",
		})
		return
	}

	exists := server.Reconciler.CheckExists(req.ID, req.User)

	_ = server.render.JSON(w, http.StatusOK, map[string]bool{"success": exists})
}

// GET /api/payments/get_payment_info_list
// Passes the optional date window through to the gateway feed verbatim.
func (server *Server) GetPaymentInfoList(w http.ResponseWriter, r *http.Request) {
	dateMin := r.URL.Query().Get("transaction_date_min")
	dateMax := r.URL.Query().Get("transaction_date_max")

	result := server.Gateway.ListTransactions(dateMin, dateMax)
	if !result.Success {
		server.respondError(w, http.StatusBadRequest, result.Error)
		return
	}

	server.respond(w, http.StatusOK, result.Data, "ok")
}

// POST /api/payments/{transactionId}/refund
// On gateway success the local record moves to refunded regardless of its
// prior state (historical behavior, kept until product says otherwise).
func (server *Server) RefundPayment(w http.ResponseWriter, r *http.Request) {
	transactionID := mux.Vars(r)["transactionId"]

	var req refundRequest
	if r.Body != nil {
		// body is optional; a missing amount means full refund
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	result := server.Gateway.SubmitRefund(transactionID, req.Amount)
	if !result.Success {
		server.respondError(w, http.StatusBadRequest, result.Error)
		return
	}

	paymentModel := models.Payment{}
	payment, err := paymentModel.FindByTransactionID(server.DB, transactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			server.respond(w, http.StatusOK, result.Data, "ok")
			return
		}

		server.respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	reconcile.ApplyStatus(payment, consts.PaymentStatusRefunded, time.Now().UTC())
	if err := payment.Save(server.DB); err != nil {
		server.respondError(w, http.StatusInternalServerError, "failed to update payment")
		return
	}

	server.respond(w, http.StatusOK, payment, "ok")
}

func queryInt(r *http.Request, key string, fallback int) int {
	if s := r.URL.Query().Get(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}

	return fallback
}
