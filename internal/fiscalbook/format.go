package fiscalbook

import (
	"strconv"
	"time"

	"fiscalbook/internal/models"
	"fiscalbook/internal/money"
)

// Formatted is a FiscalBook decorated for display: derived name and year,
// currency-formatted totals, and local-date timestamps. The legacy aliases
// are backfilled so older list screens keep working against it.
type Formatted struct {
	models.FiscalBook

	DisplayName            string `json:"displayName"`
	DerivedYear            string `json:"derivedYear"`
	TotalIncomeFormatted   string `json:"totalIncomeFormatted"`
	TotalExpensesFormatted string `json:"totalExpensesFormatted"`
	NetAmountFormatted     string `json:"netAmountFormatted"`
	CreatedAtFormatted     string `json:"createdAtFormatted"`
	UpdatedAtFormatted     string `json:"updatedAtFormatted"`
	ClosedAtFormatted      string `json:"closedAtFormatted"`
}

// DeriveYear resolves the display year of a book: the leading four digits of
// bookPeriod, else the explicit legacy year field, else the current calendar
// year.
func DeriveYear(book models.FiscalBook) string {
	if len(book.BookPeriod) >= 4 {
		if _, err := strconv.Atoi(book.BookPeriod[:4]); err == nil {
			return book.BookPeriod[:4]
		}
	}
	if book.Year != "" {
		return book.Year
	}
	return strconv.Itoa(time.Now().Year())
}

// Format decorates a book for display.
func Format(book models.FiscalBook) Formatted {
	out := Formatted{
		FiscalBook:             book,
		DisplayName:            book.EffectiveName() + " (" + book.EffectivePeriod() + ")",
		DerivedYear:            DeriveYear(book),
		TotalIncomeFormatted:   money.FormatBRL(book.TotalIncome),
		TotalExpensesFormatted: money.FormatBRL(book.TotalExpenses),
		NetAmountFormatted:     money.FormatBRL(book.NetAmount),
		CreatedAtFormatted:     formatLocalDate(book.CreatedAt),
		UpdatedAtFormatted:     formatLocalDate(book.UpdatedAt),
		ClosedAtFormatted:      formatLocalDate(book.ClosedAt),
	}

	// Backfill legacy aliases. Year may be synthesized: a book with neither
	// period nor year gets the current calendar year here, so an empty Year
	// on the raw model does not survive formatting.
	if out.Name == "" {
		out.Name = book.BookName
	}
	if out.Year == "" {
		out.Year = out.DerivedYear
	}
	if out.Description == "" {
		out.Description = book.Notes
	}
	return out
}

// FormatAll decorates a list of books for display.
func FormatAll(books []models.FiscalBook) []Formatted {
	out := make([]Formatted, 0, len(books))
	for _, b := range books {
		out = append(out, Format(b))
	}
	return out
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
}

// formatLocalDate renders a backend timestamp as a local date, or "" when
// the value is absent. Unparseable values are passed through untouched.
func formatLocalDate(raw string) string {
	if raw == "" {
		return ""
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Local().Format("02/01/2006")
		}
	}
	return raw
}
