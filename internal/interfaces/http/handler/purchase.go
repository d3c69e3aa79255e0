package handler

import (
	"context"

	purchaseapp "github.com/erp/ledger/internal/application/purchase"
	"github.com/erp/ledger/internal/domain/purchase"
	"github.com/erp/ledger/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TransactionService is what PurchaseHandler needs from the application layer.
type TransactionService interface {
	Create(ctx context.Context, req purchaseapp.CreateTransactionRequest) (*purchaseapp.TransactionView, error)
	Edit(ctx context.Context, req purchaseapp.EditTransactionRequest) (*purchaseapp.TransactionView, error)
	Void(ctx context.Context, id uuid.UUID) (*purchaseapp.VoidResult, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (*purchaseapp.TransactionView, error)
	ListOutstanding(ctx context.Context, supplierID uuid.UUID) ([]*purchase.Header, error)
}

// PurchaseHandler handles the purchase ledger endpoints
type PurchaseHandler struct {
	BaseHandler
	service TransactionService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(service TransactionService) *PurchaseHandler {
	return &PurchaseHandler{service: service}
}

// Create godoc
// @Summary      Create a purchase transaction
// @Description  Record an invoice, credit note, payment or refund with its lines and matches, and post it to the nominal, cash book and VAT ledgers. Credit notes and payments are entered as positive figures.
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Key that makes a retried create return the first response"
// @Param        request body TransactionRequest true "Transaction"
// @Success      201 {object} dto.Response{data=TransactionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /purchases/transactions [post]
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req TransactionRequest
	if !h.BindJSON(c, &req) {
		return
	}
	parsed, err := req.parse()
	if err != nil {
		h.HandleError(c, err)
		return
	}

	view, err := h.service.Create(c.Request.Context(), purchaseapp.CreateTransactionRequest{
		Type:    parsed.Type,
		Period:  parsed.Period,
		Fields:  parsed.Fields,
		Lines:   parsed.Lines,
		Matches: parsed.Matches,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	logger.GetGinLogger(c).Info("Purchase transaction created",
		zap.String("header_id", view.Header.ID.String()),
		zap.String("type", view.Header.Type.String()),
	)
	h.Created(c, toTransactionResponse(view))
}

// Edit godoc
// @Summary      Edit a purchase transaction
// @Description  Replace a transaction's fields, lines and matches and re-post it. The body repeats the type, which must not change.
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        id path string true "Transaction ID" format(uuid)
// @Param        request body TransactionRequest true "Transaction"
// @Success      200 {object} dto.Response{data=TransactionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /purchases/transactions/{id} [put]
func (h *PurchaseHandler) Edit(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req TransactionRequest
	if !h.BindJSON(c, &req) {
		return
	}
	parsed, err := req.parse()
	if err != nil {
		h.HandleError(c, err)
		return
	}

	view, err := h.service.Edit(c.Request.Context(), purchaseapp.EditTransactionRequest{
		ID:      id,
		Type:    parsed.Type,
		Fields:  parsed.Fields,
		Lines:   parsed.Lines,
		Matches: parsed.Matches,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toTransactionResponse(view))
}

// Void godoc
// @Summary      Void a purchase transaction
// @Description  Remove a transaction's matches and postings and restore its counterparts. Voiding twice answers 200 with success false.
// @Tags         purchases
// @Produce      json
// @Param        id path string true "Transaction ID" format(uuid)
// @Success      200 {object} dto.Response{data=VoidResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /purchases/transactions/{id}/void [post]
func (h *PurchaseHandler) Void(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.service.Void(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toVoidResponse(result))
}

// Get godoc
// @Summary      Get a purchase transaction
// @Description  Return a transaction with its lines, matches and postings, in ledger sign.
// @Tags         purchases
// @Produce      json
// @Param        id path string true "Transaction ID" format(uuid)
// @Success      200 {object} dto.Response{data=TransactionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /purchases/transactions/{id} [get]
func (h *PurchaseHandler) Get(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.service.GetTransaction(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toTransactionResponse(view))
}

// ListOutstanding godoc
// @Summary      List a supplier's outstanding transactions
// @Description  Return the supplier's live transactions that still have a balance to match.
// @Tags         purchases
// @Produce      json
// @Param        id path string true "Supplier ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]HeaderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /purchases/suppliers/{id}/outstanding [get]
func (h *PurchaseHandler) ListOutstanding(c *gin.Context) {
	supplierID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	headers, err := h.service.ListOutstanding(c.Request.Context(), supplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toHeaderResponses(headers))
}
