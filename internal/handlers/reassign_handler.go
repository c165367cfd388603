package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fiscalbook/internal/cache"
	apperrors "fiscalbook/internal/errors"
	"fiscalbook/internal/reassign"
	"fiscalbook/internal/store"
)

// ReassignHandler wires the bulk reassignment engine to the HTTP facade and
// merges the resulting ownership updates into the transaction cache.
type ReassignHandler struct {
	engine *reassign.Engine
	books  store.FiscalBookStore
	cache  *cache.ListCache
}

// NewReassignHandler creates a new ReassignHandler.
func NewReassignHandler(engine *reassign.Engine, bookStore store.FiscalBookStore, listCache *cache.ListCache) *ReassignHandler {
	return &ReassignHandler{engine: engine, books: bookStore, cache: listCache}
}

// ReassignRequest selects the transactions and books for a bulk operation.
// SourceID and TargetID are optional at the binding level; each operation
// enforces its own requirements.
type ReassignRequest struct {
	TransactionIDs []string `json:"transactionIds" binding:"required,min=1"`
	SourceID       string   `json:"sourceId"`
	TargetID       string   `json:"targetId"`
}

// Assign attaches the transactions to the target book.
func (h *ReassignHandler) Assign(c *gin.Context) {
	var req ReassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	ctx := c.Request.Context()
	books, err := h.books.GetAll(ctx, store.BookFilters{})
	if err != nil {
		respondWithError(c, err)
		return
	}

	updates, err := h.engine.Assign(ctx, req.TargetID, req.TransactionIDs, books, h.cache.Full())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.apply(updates)
	c.JSON(http.StatusOK, gin.H{"updates": updates})
}

// Remove detaches the transactions from the source book.
func (h *ReassignHandler) Remove(c *gin.Context) {
	var req ReassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	updates, err := h.engine.Remove(c.Request.Context(), req.SourceID, req.TransactionIDs)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.apply(updates)
	c.JSON(http.StatusOK, gin.H{"updates": updates})
}

// Transfer moves the transactions from the source book to the target book.
func (h *ReassignHandler) Transfer(c *gin.Context) {
	var req ReassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	ctx := c.Request.Context()
	books, err := h.books.GetAll(ctx, store.BookFilters{})
	if err != nil {
		respondWithError(c, err)
		return
	}

	updates, err := h.engine.Transfer(ctx, req.SourceID, req.TargetID, req.TransactionIDs, books)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.apply(updates)
	c.JSON(http.StatusOK, gin.H{"updates": updates})
}

func (h *ReassignHandler) apply(updates []reassign.Update) {
	for _, u := range updates {
		h.cache.ApplyOwnership(u.TransactionID, u.FiscalBookID, u.FiscalBookName, u.FiscalBookYear)
	}
}
