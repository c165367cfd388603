package testutil

import (
	"fmt"
	"sync/atomic"

	"fiscalbook/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// MakeTransaction creates a debit transaction in the given period with a
// unique id and name.
func MakeTransaction(period string) models.Transaction {
	n := nextID()
	return models.Transaction{
		ID:         fmt.Sprintf("tx-%d", n),
		Date:       period + "-15",
		Period:     period,
		Value:      "100,00",
		Type:       models.TransactionTypeDebit,
		CategoryID: "general",
		Name:       fmt.Sprintf("Transação %d", n),
	}
}

// MakeTransactionInBook creates a transaction already owned by a fiscal book.
func MakeTransactionInBook(period, bookID string) models.Transaction {
	tx := MakeTransaction(period)
	tx.FiscalBookID = bookID
	return tx
}

// MakeFiscalBook creates an open book for the given period with a unique
// name.
func MakeFiscalBook(period string) models.FiscalBook {
	n := nextID()
	return models.FiscalBook{
		ID:         fmt.Sprintf("fb-%d", n),
		BookName:   fmt.Sprintf("Livro %d", n),
		BookType:   models.BookTypeEntrada,
		BookPeriod: period,
		Status:     models.BookStatusAberto,
	}
}
