package fiscalbook

import (
	"sort"
	"strings"
	"time"

	"fiscalbook/internal/models"
)

// Criteria are the ANDed filter inputs of the book list screen. Zero values
// mean "not filtered on".
type Criteria struct {
	Status   models.BookStatus
	BookType models.BookType
	Year     string
	Search   string
}

// Sort orders books by the given key. String keys compare case-insensitively,
// keys ending in "At" compare as dates, and bookName/bookPeriod fall back to
// the legacy aliases. The sort is stable, and "desc" negates the ascending
// comparator instead of reversing the result, so equal-valued ties keep
// their input order either way.
func Sort(books []models.FiscalBook, key, order string) []models.FiscalBook {
	out := make([]models.FiscalBook, len(books))
	copy(out, books)

	desc := order == "desc"
	sort.SliceStable(out, func(i, j int) bool {
		c := compareBooks(out[i], out[j], key)
		if desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

func compareBooks(a, b models.FiscalBook, key string) int {
	if strings.HasSuffix(key, "At") {
		return compareDates(timestampField(a, key), timestampField(b, key))
	}

	switch key {
	case "transactionCount":
		return compareFloats(float64(a.TransactionCount), float64(b.TransactionCount))
	case "totalIncome":
		return compareFloats(a.TotalIncome, b.TotalIncome)
	case "totalExpenses":
		return compareFloats(a.TotalExpenses, b.TotalExpenses)
	case "netAmount":
		return compareFloats(a.NetAmount, b.NetAmount)
	}

	return strings.Compare(
		strings.ToLower(stringField(a, key)),
		strings.ToLower(stringField(b, key)),
	)
}

func stringField(b models.FiscalBook, key string) string {
	switch key {
	case "bookName":
		return b.EffectiveName()
	case "bookPeriod":
		return b.EffectivePeriod()
	case "status":
		return string(b.Status)
	case "bookType":
		return string(b.BookType)
	case "notes":
		return b.EffectiveNotes()
	case "reference":
		return b.Reference
	default:
		return ""
	}
}

func timestampField(b models.FiscalBook, key string) string {
	switch key {
	case "createdAt":
		return b.CreatedAt
	case "updatedAt":
		return b.UpdatedAt
	case "closedAt":
		return b.ClosedAt
	default:
		return ""
	}
}

func compareDates(a, b string) int {
	ta := parseTimestamp(a)
	tb := parseTimestamp(b)
	switch {
	case ta.Before(tb):
		return -1
	case ta.After(tb):
		return 1
	default:
		return 0
	}
}

// parseTimestamp returns the zero time for absent or unparseable values so
// they sort before everything else.
func parseTimestamp(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Filter returns the books matching every supplied criterion. The year is
// compared against the derived year, and the search term matches a
// case-insensitive substring of the name, notes, or reference, skipping
// fields the book does not carry.
func Filter(books []models.FiscalBook, criteria Criteria) []models.FiscalBook {
	var out []models.FiscalBook
	for _, b := range books {
		if criteria.Status != "" && b.Status != criteria.Status {
			continue
		}
		if criteria.BookType != "" && b.BookType != criteria.BookType {
			continue
		}
		if criteria.Year != "" && DeriveYear(b) != criteria.Year {
			continue
		}
		if criteria.Search != "" && !matchesSearch(b, criteria.Search) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func matchesSearch(b models.FiscalBook, term string) bool {
	term = strings.ToLower(term)
	for _, field := range []string{b.EffectiveName(), b.EffectiveNotes(), b.Reference} {
		if field == "" {
			continue
		}
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
