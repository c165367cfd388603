package integration

import (
	"net/http"
	"testing"

	"fiscalbook/internal/models"
)

func TestReassignFlow(t *testing.T) {
	app := setupApp(t)
	bookA := app.Backend.seedBook(models.FiscalBook{BookName: "Livro A", BookType: models.BookTypeEntrada, BookPeriod: "2026"})
	bookB := app.Backend.seedBook(models.FiscalBook{BookName: "Livro B", BookType: models.BookTypeEntrada, BookPeriod: "2026"})
	txns := seedPeriod(app, "2026-03", "venda 1", "venda 2")
	app.request("PUT", "/api/v1/transactions/period", `{"period":"2026-03"}`)

	// Assign both transactions to book A.
	rec := app.request("POST", "/api/v1/reassign/assign",
		`{"transactionIds":["`+txns[0].ID+`","`+txns[1].ID+`"],"targetId":"`+bookA.ID+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("assign failed: %d %s", rec.Code, rec.Body.String())
	}
	updates := parseJSON(t, rec)["updates"].([]interface{})
	if len(updates) != 2 {
		t.Fatalf("expected 2 ownership updates, got %d", len(updates))
	}
	first := updates[0].(map[string]interface{})
	if first["fiscalBookName"] != "Livro A" {
		t.Errorf("expected denormalized book name, got %v", first["fiscalBookName"])
	}

	// The cache view now carries the ownership.
	rec = app.request("GET", "/api/v1/transactions", "")
	full := parseJSON(t, rec)["full"].([]interface{})
	for _, raw := range full {
		tx := raw.(map[string]interface{})
		if tx["fiscalBookId"] != bookA.ID {
			t.Errorf("expected transaction owned by book A, got %v", tx["fiscalBookId"])
		}
	}

	// Assigning an owned transaction to a different book is rejected before
	// any remote call.
	rec = app.request("POST", "/api/v1/reassign/assign",
		`{"transactionIds":["`+txns[0].ID+`"],"targetId":"`+bookB.ID+`"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for owned transaction, got %d: %s", rec.Code, rec.Body.String())
	}

	// Transfer moves it instead.
	rec = app.request("POST", "/api/v1/reassign/transfer",
		`{"transactionIds":["`+txns[0].ID+`"],"sourceId":"`+bookA.ID+`","targetId":"`+bookB.ID+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("transfer failed: %d %s", rec.Code, rec.Body.String())
	}
	app.Backend.mu.Lock()
	if got := app.Backend.transactions[txns[0].ID].FiscalBookID; got != bookB.ID {
		t.Errorf("expected backend ownership moved to book B, got %q", got)
	}
	app.Backend.mu.Unlock()

	// Remove detaches the remaining transaction from book A.
	rec = app.request("POST", "/api/v1/reassign/remove",
		`{"transactionIds":["`+txns[1].ID+`"],"sourceId":"`+bookA.ID+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove failed: %d %s", rec.Code, rec.Body.String())
	}
	app.Backend.mu.Lock()
	if got := app.Backend.transactions[txns[1].ID].FiscalBookID; got != "" {
		t.Errorf("expected backend ownership cleared, got %q", got)
	}
	app.Backend.mu.Unlock()

	// Missing selections never reach the backend.
	rec = app.request("POST", "/api/v1/reassign/transfer", `{"transactionIds":["`+txns[1].ID+`"]}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing books, got %d", rec.Code)
	}
}
