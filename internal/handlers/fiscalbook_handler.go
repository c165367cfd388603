package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fiscalbook/internal/errors"
	"fiscalbook/internal/fiscalbook"
	"fiscalbook/internal/models"
	"fiscalbook/internal/store"
)

// FiscalBookHandler exposes fiscal book CRUD and lifecycle operations.
type FiscalBookHandler struct {
	store store.FiscalBookStore
}

// NewFiscalBookHandler creates a new FiscalBookHandler.
func NewFiscalBookHandler(bookStore store.FiscalBookStore) *FiscalBookHandler {
	return &FiscalBookHandler{store: bookStore}
}

// FiscalBookRequest is the payload for creating or updating a fiscal book.
type FiscalBookRequest struct {
	BookName   string            `json:"bookName" binding:"required"`
	BookType   string            `json:"bookType" binding:"required,book_type"`
	BookPeriod string            `json:"bookPeriod" binding:"required,book_period"`
	Notes      string            `json:"notes"`
	Reference  string            `json:"reference"`
	Fiscal     models.FiscalMeta `json:"fiscalData"`
}

func (r FiscalBookRequest) toModel(id string) models.FiscalBook {
	return models.FiscalBook{
		ID:         id,
		BookName:   r.BookName,
		BookType:   models.BookType(r.BookType),
		BookPeriod: r.BookPeriod,
		Notes:      r.Notes,
		Reference:  r.Reference,
		Fiscal:     r.Fiscal,
	}
}

// List returns the filtered book list, sorted and formatted for display.
func (h *FiscalBookHandler) List(c *gin.Context) {
	filters := store.BookFilters{
		Status:   models.BookStatus(c.Query("status")),
		BookType: models.BookType(c.Query("bookType")),
		Year:     c.Query("year"),
		Search:   c.Query("search"),
	}

	books, err := h.store.GetAll(c.Request.Context(), filters)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// The backend already filters; sorting and the local criteria are a
	// client concern so stale lists can be resliced without a refetch.
	books = fiscalbook.Filter(books, fiscalbook.Criteria{
		Status:   filters.Status,
		BookType: filters.BookType,
		Year:     filters.Year,
		Search:   filters.Search,
	})
	books = fiscalbook.Sort(books, c.DefaultQuery("sortBy", "createdAt"), c.DefaultQuery("order", "desc"))

	c.JSON(http.StatusOK, gin.H{"books": fiscalbook.FormatAll(books)})
}

// GetByID returns a single book, formatted.
func (h *FiscalBookHandler) GetByID(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	book, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"book": fiscalbook.Format(book)})
}

// Create validates and creates a fiscal book. New books start open.
func (h *FiscalBookHandler) Create(c *gin.Context) {
	var req FiscalBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	book := req.toModel("")
	book.Status = models.BookStatusAberto
	if fields := fiscalbook.Validate(book); len(fields) > 0 {
		respondWithError(c, apperrors.WithFields(apperrors.ErrInvalidInput, fields))
		return
	}

	created, err := h.store.Create(c.Request.Context(), book)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"book": fiscalbook.Format(created)})
}

// Update validates and updates an editable fiscal book.
func (h *FiscalBookHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req FiscalBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	ctx := c.Request.Context()
	existing, err := h.store.GetByID(ctx, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if !fiscalbook.IsEditable(existing) {
		respondWithError(c, apperrors.ErrBookNotEditable)
		return
	}

	book := req.toModel(id)
	book.Status = existing.Status
	if fields := fiscalbook.Validate(book); len(fields) > 0 {
		respondWithError(c, apperrors.WithFields(apperrors.ErrInvalidInput, fields))
		return
	}

	updated, err := h.store.Update(ctx, id, book)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"book": fiscalbook.Format(updated)})
}

// Delete removes an empty fiscal book. Books still holding transactions are
// refused so orphaned ownership never reaches the backend.
func (h *FiscalBookHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	book, err := h.store.GetByID(ctx, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if book.TransactionCount > 0 {
		respondWithError(c, apperrors.ErrBookHasTransactions)
		return
	}

	if err := h.store.Delete(ctx, id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// Close transitions a book to Fechado.
func (h *FiscalBookHandler) Close(c *gin.Context) {
	h.transition(c, models.BookStatusFechado)
}

// Reopen transitions a book back to Aberto.
func (h *FiscalBookHandler) Reopen(c *gin.Context) {
	h.transition(c, models.BookStatusAberto)
}

// Archive transitions a closed book to Arquivado. Archived is terminal.
func (h *FiscalBookHandler) Archive(c *gin.Context) {
	h.transition(c, models.BookStatusArquivado)
}

func (h *FiscalBookHandler) transition(c *gin.Context, to models.BookStatus) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	book, err := h.store.GetByID(ctx, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if !fiscalbook.CanTransition(book.Status, to) {
		respondWithError(c, apperrors.ErrInvalidTransition)
		return
	}

	var updated models.FiscalBook
	switch to {
	case models.BookStatusFechado:
		updated, err = h.store.Close(ctx, id)
	case models.BookStatusAberto:
		updated, err = h.store.Reopen(ctx, id)
	default:
		// The backend has no dedicated archive endpoint.
		book.Status = to
		updated, err = h.store.Update(ctx, id, book)
	}
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"book": fiscalbook.Format(updated)})
}

// Export streams a book export in the requested format.
func (h *FiscalBookHandler) Export(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	format := c.DefaultQuery("format", "csv")
	data, err := h.store.Export(c.Request.Context(), id, format)
	if err != nil {
		respondWithError(c, err)
		return
	}

	contentType := "text/csv"
	if format == "pdf" {
		contentType = "application/pdf"
	}
	c.Data(http.StatusOK, contentType, data)
}
