package models

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeDebit  TransactionType = "debit"
)

// Item is a single line item of a transaction. Value is a comma-decimal
// monetary string exactly as entered by the user.
type Item struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Value       string `json:"value"`
	Units       int    `json:"units"`
}

// Transaction represents a financial transaction as owned by the backend.
// The client holds ephemeral copies in the cache lists plus a persisted
// mirror; monetary values stay comma-decimal strings end to end so they
// round-trip through serialization without reformatting.
type Transaction struct {
	ID           string          `json:"id"`
	Date         string          `json:"date"`
	Period       string          `json:"period"` // YYYY-MM
	Value        string          `json:"value"`
	FreightValue string          `json:"freightValue"`
	Type         TransactionType `json:"type"`
	CategoryID   string          `json:"categoryId"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	CompanyName  string          `json:"companyName"`
	CompanyCode  string          `json:"companyCode"`
	Items        []Item          `json:"items,omitempty"`

	// Fiscal book ownership. A transaction belongs to at most one book;
	// an empty FiscalBookID means unassigned. Name and year are
	// denormalized for display only.
	FiscalBookID   string `json:"fiscalBookId,omitempty"`
	FiscalBookName string `json:"fiscalBookName,omitempty"`
	FiscalBookYear string `json:"fiscalBookYear,omitempty"`
}

// SearchableTransactionFields is the default field set the full-text search
// runs over.
var SearchableTransactionFields = []string{
	"name", "description", "companyName", "companyCode", "categoryId", "period", "value", "date",
}

// Field returns the named field value for the search engine. Unknown names
// return nil, which never matches.
func (t Transaction) Field(name string) any {
	switch name {
	case "id":
		return t.ID
	case "date":
		return t.Date
	case "period":
		return t.Period
	case "value":
		return t.Value
	case "freightValue":
		return t.FreightValue
	case "type":
		return string(t.Type)
	case "categoryId":
		return t.CategoryID
	case "name":
		return t.Name
	case "description":
		return t.Description
	case "companyName":
		return t.CompanyName
	case "companyCode":
		return t.CompanyCode
	case "fiscalBookId":
		return t.FiscalBookID
	case "fiscalBookName":
		return t.FiscalBookName
	case "fiscalBookYear":
		return t.FiscalBookYear
	case "units":
		return len(t.Items)
	default:
		return nil
	}
}
