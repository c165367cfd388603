package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fiscalbook/internal/cache"
	apperrors "fiscalbook/internal/errors"
	"fiscalbook/internal/models"
	"fiscalbook/internal/money"
	"fiscalbook/internal/store"
)

// TransactionHandler exposes the transaction list cache and the remote
// transaction store to the UI.
type TransactionHandler struct {
	cache *cache.ListCache
	store store.TransactionStore
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(listCache *cache.ListCache, txStore store.TransactionStore) *TransactionHandler {
	return &TransactionHandler{cache: listCache, store: txStore}
}

// ListResponse is the cache state the transaction screens render from.
type ListResponse struct {
	Full       []models.Transaction `json:"full"`
	Display    []models.Transaction `json:"display"`
	SearchTerm string               `json:"searchTerm"`
	Period     string               `json:"period"`
}

// TransactionRequest is the payload for creating or updating a transaction.
type TransactionRequest struct {
	Date         string        `json:"date" binding:"required"`
	Period       string        `json:"period" binding:"required"`
	Value        string        `json:"value" binding:"required,monetary"`
	FreightValue string        `json:"freightValue" binding:"omitempty,monetary"`
	Type         string        `json:"type" binding:"required,transaction_type"`
	CategoryID   string        `json:"categoryId"`
	Name         string        `json:"name" binding:"required,max=200"`
	Description  string        `json:"description" binding:"max=500"`
	CompanyName  string        `json:"companyName" binding:"max=200"`
	CompanyCode  string        `json:"companyCode" binding:"max=50"`
	Items        []models.Item `json:"items"`
}

func (r TransactionRequest) toModel(id string) models.Transaction {
	return models.Transaction{
		ID:           id,
		Date:         r.Date,
		Period:       r.Period,
		Value:        money.Normalize(r.Value),
		FreightValue: money.Normalize(r.FreightValue),
		Type:         models.TransactionType(r.Type),
		CategoryID:   r.CategoryID,
		Name:         r.Name,
		Description:  r.Description,
		CompanyName:  r.CompanyName,
		CompanyCode:  r.CompanyCode,
		Items:        r.Items,
	}
}

// List returns the current cache state.
func (h *TransactionHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, ListResponse{
		Full:       h.cache.Full(),
		Display:    h.cache.Display(),
		SearchTerm: h.cache.SearchTerm(),
		Period:     h.cache.Period(),
	})
}

// GetByID looks a transaction up in the remote store.
func (h *TransactionHandler) GetByID(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	tx, err := h.store.FindByID(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}

// Periods lists the distinct periods known to the backend, for the period
// selector.
func (h *TransactionHandler) Periods(c *gin.Context) {
	periods, err := h.store.FindUniquePeriods(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"periods": periods})
}

// Create inserts a transaction remotely and adds it to the cache.
func (h *TransactionHandler) Create(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	created, err := h.store.Insert(c.Request.Context(), req.toModel(""))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.cache.Insert(created)
	c.JSON(http.StatusCreated, gin.H{"transaction": created})
}

// Update updates a transaction remotely and merges the result into the cache.
func (h *TransactionHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	updated, err := h.store.Update(c.Request.Context(), id, req.toModel(id))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.cache.Update(updated)
	c.JSON(http.StatusOK, gin.H{"transaction": updated})
}

// Separate updates a transaction and then splits it into one transaction per
// line item. The split is skipped when the update fails, and the update's
// error is what the user sees.
func (h *TransactionHandler) Separate(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.Update(ctx, id, req.toModel(id)); err != nil {
		respondWithError(c, err)
		return
	}
	if err := h.store.SeparateByID(ctx, id); err != nil {
		respondWithError(c, err)
		return
	}

	// The resulting ids are the backend's business; refetch the period.
	if err := h.cache.Refresh(ctx); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{
		Full:       h.cache.Full(),
		Display:    h.cache.Display(),
		SearchTerm: h.cache.SearchTerm(),
		Period:     h.cache.Period(),
	})
}

// Delete removes a transaction remotely and from both cache lists.
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.store.DeleteByID(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	h.cache.Delete(id)
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// BulkDelete wipes the selected period, or the current search scope when a
// term is active.
func (h *TransactionHandler) BulkDelete(c *gin.Context) {
	if err := h.cache.BulkDelete(c.Request.Context()); err != nil {
		respondWithError(c, err)
		return
	}
	h.List(c)
}

// SearchRequest carries the search box contents.
type SearchRequest struct {
	Term string `json:"term"`
}

// Search applies a search term to the display list.
func (h *TransactionHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	h.cache.Search(req.Term)
	c.JSON(http.StatusOK, gin.H{"display": h.cache.Display(), "searchTerm": h.cache.SearchTerm()})
}

// CategoryRequest selects a category chip.
type CategoryRequest struct {
	CategoryID string `json:"categoryId" binding:"required"`
}

// SelectCategory filters the display list by category.
func (h *TransactionHandler) SelectCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	h.cache.SelectCategory(req.CategoryID)
	c.JSON(http.StatusOK, gin.H{"display": h.cache.Display()})
}

// Restore resets the display list to the full list.
func (h *TransactionHandler) Restore(c *gin.Context) {
	h.cache.Restore()
	c.JSON(http.StatusOK, gin.H{"display": h.cache.Display()})
}

// PeriodRequest switches the selected period.
type PeriodRequest struct {
	Period string `json:"period" binding:"required"`
}

// ChangePeriod switches the selected period and refetches both lists.
func (h *TransactionHandler) ChangePeriod(c *gin.Context) {
	var req PeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.cache.ChangePeriod(c.Request.Context(), req.Period); err != nil {
		respondWithError(c, err)
		return
	}
	h.List(c)
}
