// Package reassign implements the bulk operations that move transactions
// between fiscal books while a transaction belongs to at most one book.
package reassign

import (
	"context"

	"go.uber.org/zap"

	apperrors "fiscalbook/internal/errors"
	"fiscalbook/internal/fiscalbook"
	"fiscalbook/internal/logger"
	"fiscalbook/internal/models"
	"fiscalbook/internal/store"
)

// Update is the per-transaction projection reported back after a successful
// operation, for the caller to merge into its own view. The book name and
// year are denormalized from the already-loaded book list; callers without
// a merge step simply discard it.
type Update struct {
	TransactionID  string `json:"transactionId"`
	FiscalBookID   string `json:"fiscalBookId"`
	FiscalBookName string `json:"fiscalBookName"`
	FiscalBookYear string `json:"fiscalBookYear"`
}

// Engine performs assign, remove, and transfer operations against the
// fiscal book store. All constituent remote calls run sequentially; nothing
// is retried and there is no cross-operation locking.
type Engine struct {
	books store.FiscalBookStore
	log   *zap.SugaredLogger
}

// NewEngine creates an engine over the given book store.
func NewEngine(books store.FiscalBookStore) *Engine {
	return &Engine{books: books, log: logger.Named("reassign")}
}

// Assign attaches the transactions to the target book with a single bulk
// call. A transaction already owned by a different book is rejected before
// any remote call; use Transfer to move it.
func (e *Engine) Assign(ctx context.Context, targetID string, ids []string, loadedBooks []models.FiscalBook, current []models.Transaction) ([]Update, error) {
	if targetID == "" {
		return nil, apperrors.ErrMissingTarget
	}

	owned := ownership(current)
	for _, id := range ids {
		if owner, ok := owned[id]; ok && owner != "" && owner != targetID {
			e.log.Warnw("assign rejected", "transaction", id, "owner", owner, "target", targetID)
			return nil, apperrors.WithMessage(apperrors.ErrOwnedElsewhere,
				"Transaction "+id+" already belongs to another fiscal book")
		}
	}

	if err := e.books.AddTransactions(ctx, targetID, ids); err != nil {
		return nil, err
	}
	return projections(ids, targetID, loadedBooks), nil
}

// Remove detaches each transaction from the source book. The backend offers
// no bulk remove, so the transactions are removed one by one, in order; the
// first failure stops the loop and surfaces as the operation's error.
func (e *Engine) Remove(ctx context.Context, sourceID string, ids []string) ([]Update, error) {
	if sourceID == "" {
		return nil, apperrors.ErrMissingSource
	}

	for _, id := range ids {
		if err := e.books.RemoveTransaction(ctx, id); err != nil {
			e.log.Errorw("remove failed", "transaction", id, "source", sourceID, "error", err.Error())
			return nil, err
		}
	}

	updates := make([]Update, 0, len(ids))
	for _, id := range ids {
		updates = append(updates, Update{TransactionID: id})
	}
	return updates, nil
}

// Transfer moves the transactions from the source book to the target:
// sequential removes followed by one bulk add. The two halves are not
// atomic: when a remove fails midway, the already-removed transactions
// stay detached and the add is never issued. No compensation is attempted;
// the error is surfaced once for the user to retry.
func (e *Engine) Transfer(ctx context.Context, sourceID, targetID string, ids []string, loadedBooks []models.FiscalBook) ([]Update, error) {
	if sourceID == "" || targetID == "" {
		return nil, apperrors.ErrMissingBoth
	}

	for _, id := range ids {
		if err := e.books.RemoveTransaction(ctx, id); err != nil {
			e.log.Errorw("transfer aborted on remove", "transaction", id, "source", sourceID, "target", targetID, "error", err.Error())
			return nil, err
		}
	}

	if err := e.books.AddTransactions(ctx, targetID, ids); err != nil {
		return nil, err
	}
	return projections(ids, targetID, loadedBooks), nil
}

func ownership(current []models.Transaction) map[string]string {
	owned := make(map[string]string, len(current))
	for _, tx := range current {
		owned[tx.ID] = tx.FiscalBookID
	}
	return owned
}

func projections(ids []string, bookID string, loadedBooks []models.FiscalBook) []Update {
	var name, year string
	for _, b := range loadedBooks {
		if b.ID == bookID {
			name = b.EffectiveName()
			year = fiscalbook.DeriveYear(b)
			break
		}
	}

	updates := make([]Update, 0, len(ids))
	for _, id := range ids {
		updates = append(updates, Update{
			TransactionID:  id,
			FiscalBookID:   bookID,
			FiscalBookName: name,
			FiscalBookYear: year,
		})
	}
	return updates
}
