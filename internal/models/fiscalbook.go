package models

// BookType classifies a fiscal book.
type BookType string

const (
	BookTypeEntrada    BookType = "Entrada"
	BookTypeSaida      BookType = "Saída"
	BookTypeServicos   BookType = "Serviços"
	BookTypeInventario BookType = "Inventário"
	BookTypeOutros     BookType = "Outros"
)

// BookStatus is the lifecycle status of a fiscal book.
type BookStatus string

const (
	BookStatusAberto    BookStatus = "Aberto"
	BookStatusFechado   BookStatus = "Fechado"
	BookStatusEmRevisao BookStatus = "Em Revisão"
	BookStatusArquivado BookStatus = "Arquivado"
)

// FiscalMeta holds the nested fiscal metadata of a book.
type FiscalMeta struct {
	TaxAuthority string `json:"taxAuthority"`
	FiscalYear   string `json:"fiscalYear"`
	FiscalPeriod string `json:"fiscalPeriod"`
	TaxRegime    string `json:"taxRegime"`
}

// FiscalBook is a named container with a period and lifecycle status that
// groups transactions for reporting. The aggregate fields are computed by
// the backend and read-only on the client.
//
// Older backend payloads use name/year/description instead of
// bookName/bookPeriod/notes; the legacy aliases must be accepted wherever
// the canonical field is read.
type FiscalBook struct {
	ID         string     `json:"id"`
	BookName   string     `json:"bookName"`
	BookType   BookType   `json:"bookType"`
	BookPeriod string     `json:"bookPeriod"` // YYYY or YYYY-MM
	Status     BookStatus `json:"status"`
	Notes      string     `json:"notes"`
	Reference  string     `json:"reference"`
	Fiscal     FiscalMeta `json:"fiscalData"`

	// Derived aggregates, owned by the backend.
	TransactionCount int     `json:"transactionCount"`
	TotalIncome      float64 `json:"totalIncome"`
	TotalExpenses    float64 `json:"totalExpenses"`
	NetAmount        float64 `json:"netAmount"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
	ClosedAt  string `json:"closedAt,omitempty"`

	// Legacy aliases.
	Name        string `json:"name,omitempty"`
	Year        string `json:"year,omitempty"`
	Description string `json:"description,omitempty"`
}

// EffectiveName returns bookName, falling back to the legacy name alias.
func (b FiscalBook) EffectiveName() string {
	if b.BookName != "" {
		return b.BookName
	}
	return b.Name
}

// EffectivePeriod returns bookPeriod, falling back to the legacy year alias.
func (b FiscalBook) EffectivePeriod() string {
	if b.BookPeriod != "" {
		return b.BookPeriod
	}
	return b.Year
}

// EffectiveNotes returns notes, falling back to the legacy description alias.
func (b FiscalBook) EffectiveNotes() string {
	if b.Notes != "" {
		return b.Notes
	}
	return b.Description
}
