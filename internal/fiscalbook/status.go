// Package fiscalbook holds the client-side rules for fiscal books: the
// lifecycle state machine, field validation, display formatting, and the
// sort/filter predicates used by the book list.
package fiscalbook

import "fiscalbook/internal/models"

// CanTransition reports whether a book may move from one status to another.
// Aberto and Fechado toggle through close/reopen, any non-archived status
// may be archived, and Arquivado is terminal. The remote call happens first;
// the new status is only applied locally after it succeeds.
func CanTransition(from, to models.BookStatus) bool {
	if from == models.BookStatusArquivado {
		return false
	}
	switch to {
	case models.BookStatusArquivado:
		return true
	case models.BookStatusFechado:
		return from == models.BookStatusAberto
	case models.BookStatusAberto:
		return from == models.BookStatusFechado
	default:
		return false
	}
}

// IsEditable reports whether a book's fields may still be changed. Unknown
// statuses are treated as editable so a novel backend status does not lock
// the user out.
func IsEditable(book models.FiscalBook) bool {
	return book.Status != models.BookStatusFechado && book.Status != models.BookStatusArquivado
}
