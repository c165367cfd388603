package fiscalbook

import (
	"testing"

	"fiscalbook/internal/models"
)

func TestSort(t *testing.T) {
	t.Run("by_name_case_insensitive", func(t *testing.T) {
		books := []models.FiscalBook{
			{ID: "1", BookName: "banana"},
			{ID: "2", BookName: "Apple"},
			{ID: "3", BookName: "cherry"},
		}
		got := Sort(books, "bookName", "asc")
		assertOrder(t, got, "2", "1", "3")
	})

	t.Run("desc_period", func(t *testing.T) {
		books := []models.FiscalBook{
			{ID: "1", BookPeriod: "2023"},
			{ID: "2", BookPeriod: "2024"},
		}
		got := Sort(books, "bookPeriod", "desc")
		assertOrder(t, got, "2", "1")
	})

	t.Run("legacy_fallbacks", func(t *testing.T) {
		books := []models.FiscalBook{
			{ID: "1", Year: "2024"},
			{ID: "2", BookPeriod: "2023"},
		}
		got := Sort(books, "bookPeriod", "asc")
		assertOrder(t, got, "2", "1")
	})

	t.Run("at_keys_compare_as_dates", func(t *testing.T) {
		books := []models.FiscalBook{
			{ID: "1", CreatedAt: "2024-02-01T00:00:00Z"},
			{ID: "2", CreatedAt: "2024-01-15T00:00:00Z"},
			{ID: "3"}, // absent timestamps sort first
		}
		got := Sort(books, "createdAt", "asc")
		assertOrder(t, got, "3", "2", "1")
	})

	t.Run("numeric_aggregate", func(t *testing.T) {
		books := []models.FiscalBook{
			{ID: "1", TransactionCount: 10},
			{ID: "2", TransactionCount: 2},
		}
		got := Sort(books, "transactionCount", "asc")
		assertOrder(t, got, "2", "1")
	})

	// Desc negates the comparator instead of reversing the array, so ties
	// keep their input order in both directions.
	t.Run("desc_keeps_tie_order", func(t *testing.T) {
		books := []models.FiscalBook{
			{ID: "1", BookName: "same"},
			{ID: "2", BookName: "same"},
			{ID: "3", BookName: "aaa"},
		}
		got := Sort(books, "bookName", "desc")
		assertOrder(t, got, "1", "2", "3")
	})

	t.Run("input_not_mutated", func(t *testing.T) {
		books := []models.FiscalBook{
			{ID: "1", BookName: "zz"},
			{ID: "2", BookName: "aa"},
		}
		Sort(books, "bookName", "asc")
		if books[0].ID != "1" {
			t.Error("Sort mutated its input")
		}
	})
}

func TestFilter(t *testing.T) {
	books := []models.FiscalBook{
		{ID: "1", BookName: "Entradas Q1", BookType: models.BookTypeEntrada, Status: models.BookStatusAberto, BookPeriod: "2024-01"},
		{ID: "2", BookName: "Saídas Q1", BookType: models.BookTypeSaida, Status: models.BookStatusFechado, BookPeriod: "2024-02"},
		{ID: "3", Name: "Legado", Year: "2023", Status: models.BookStatusAberto, Description: "livro antigo"},
	}

	t.Run("by_status", func(t *testing.T) {
		got := Filter(books, Criteria{Status: models.BookStatusAberto})
		assertOrder(t, got, "1", "3")
	})

	t.Run("by_type_and_year", func(t *testing.T) {
		got := Filter(books, Criteria{BookType: models.BookTypeSaida, Year: "2024"})
		assertOrder(t, got, "2")
	})

	t.Run("year_uses_legacy_alias", func(t *testing.T) {
		got := Filter(books, Criteria{Year: "2023"})
		assertOrder(t, got, "3")
	})

	t.Run("search_across_fields", func(t *testing.T) {
		got := Filter(books, Criteria{Search: "antigo"})
		assertOrder(t, got, "3")
	})

	t.Run("criteria_are_anded", func(t *testing.T) {
		got := Filter(books, Criteria{Status: models.BookStatusAberto, Search: "q1"})
		assertOrder(t, got, "1")
	})

	t.Run("no_criteria_keeps_all", func(t *testing.T) {
		got := Filter(books, Criteria{})
		assertOrder(t, got, "1", "2", "3")
	})
}

func assertOrder(t *testing.T, got []models.FiscalBook, wantIDs ...string) {
	t.Helper()
	if len(got) != len(wantIDs) {
		t.Fatalf("expected %d books, got %d", len(wantIDs), len(got))
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("position %d: expected book %s, got %s", i, id, got[i].ID)
		}
	}
}
