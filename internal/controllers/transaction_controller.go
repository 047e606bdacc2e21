package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack-api/internal/models"
	"fintrack-api/internal/service"
)

type TransactionController struct {
	transactionService service.TransactionService
}

func NewTransactionController(transactionService service.TransactionService) *TransactionController {
	return &TransactionController{transactionService: transactionService}
}

// List handles GET /api/transactions
func (tc *TransactionController) List(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	transactions, err := tc.transactionService.List(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, "list transactions", err)
		return
	}

	c.JSON(http.StatusOK, models.NewTransactionListResponse(transactions))
}

// Create handles POST /api/transactions
func (tc *TransactionController) Create(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req models.CreateTransactionRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, "create transaction", err)
		return
	}

	// The owner always comes from the token, never from the body.
	input, err := req.ToEntity(identity.UserID)
	if err != nil {
		respondError(c, "create transaction", err)
		return
	}

	transaction, err := tc.transactionService.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, "create transaction", err)
		return
	}

	c.JSON(http.StatusCreated, models.TransactionEnvelope{Transaction: models.NewTransactionResponse(transaction)})
}

// Delete handles DELETE /api/transactions/:id
func (tc *TransactionController) Delete(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction id"})
		return
	}

	if err := tc.transactionService.Delete(c.Request.Context(), identity.UserID, id); err != nil {
		respondError(c, "delete transaction", err)
		return
	}

	c.Status(http.StatusNoContent)
}
