package store

import (
	"context"
	"net/http"
	"net/url"

	"fiscalbook/internal/models"
)

// BookFilters are passed through to the backend's book listing as query
// parameters. Zero values are omitted.
type BookFilters struct {
	Status   models.BookStatus
	BookType models.BookType
	Year     string
	Search   string
}

// FiscalBookStore is the remote collaborator owning fiscal books.
type FiscalBookStore interface {
	GetAll(ctx context.Context, filters BookFilters) ([]models.FiscalBook, error)
	GetByID(ctx context.Context, id string) (models.FiscalBook, error)
	Create(ctx context.Context, book models.FiscalBook) (models.FiscalBook, error)
	Update(ctx context.Context, id string, book models.FiscalBook) (models.FiscalBook, error)
	Delete(ctx context.Context, id string) error
	Close(ctx context.Context, id string) (models.FiscalBook, error)
	Reopen(ctx context.Context, id string) (models.FiscalBook, error)
	// AddTransactions attaches a batch of transactions to a book in one call.
	AddTransactions(ctx context.Context, bookID string, transactionIDs []string) error
	// RemoveTransaction detaches a single transaction from whichever book
	// owns it. The backend offers no bulk form of this operation.
	RemoveTransaction(ctx context.Context, transactionID string) error
	Export(ctx context.Context, bookID, format string) ([]byte, error)
}

type fiscalBookStore struct {
	client *Client
}

// NewFiscalBookStore creates a FiscalBookStore over the given client.
func NewFiscalBookStore(client *Client) FiscalBookStore {
	return &fiscalBookStore{client: client}
}

func (s *fiscalBookStore) GetAll(ctx context.Context, filters BookFilters) ([]models.FiscalBook, error) {
	query := url.Values{}
	if filters.Status != "" {
		query.Set("status", string(filters.Status))
	}
	if filters.BookType != "" {
		query.Set("bookType", string(filters.BookType))
	}
	if filters.Year != "" {
		query.Set("year", filters.Year)
	}
	if filters.Search != "" {
		query.Set("search", filters.Search)
	}

	var out []models.FiscalBook
	if err := s.client.doJSON(ctx, http.MethodGet, "/fiscal-books", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *fiscalBookStore) GetByID(ctx context.Context, id string) (models.FiscalBook, error) {
	var out models.FiscalBook
	err := s.client.doJSON(ctx, http.MethodGet, "/fiscal-books/"+url.PathEscape(id), nil, nil, &out)
	return out, err
}

func (s *fiscalBookStore) Create(ctx context.Context, book models.FiscalBook) (models.FiscalBook, error) {
	var out models.FiscalBook
	err := s.client.doJSON(ctx, http.MethodPost, "/fiscal-books", nil, book, &out)
	return out, err
}

func (s *fiscalBookStore) Update(ctx context.Context, id string, book models.FiscalBook) (models.FiscalBook, error) {
	var out models.FiscalBook
	err := s.client.doJSON(ctx, http.MethodPut, "/fiscal-books/"+url.PathEscape(id), nil, book, &out)
	return out, err
}

func (s *fiscalBookStore) Delete(ctx context.Context, id string) error {
	return s.client.doJSON(ctx, http.MethodDelete, "/fiscal-books/"+url.PathEscape(id), nil, nil, nil)
}

func (s *fiscalBookStore) Close(ctx context.Context, id string) (models.FiscalBook, error) {
	var out models.FiscalBook
	err := s.client.doJSON(ctx, http.MethodPost, "/fiscal-books/"+url.PathEscape(id)+"/close", nil, nil, &out)
	return out, err
}

func (s *fiscalBookStore) Reopen(ctx context.Context, id string) (models.FiscalBook, error) {
	var out models.FiscalBook
	err := s.client.doJSON(ctx, http.MethodPost, "/fiscal-books/"+url.PathEscape(id)+"/reopen", nil, nil, &out)
	return out, err
}

func (s *fiscalBookStore) AddTransactions(ctx context.Context, bookID string, transactionIDs []string) error {
	body := map[string][]string{"transactionIds": transactionIDs}
	return s.client.doJSON(ctx, http.MethodPost, "/fiscal-books/"+url.PathEscape(bookID)+"/transactions", nil, body, nil)
}

func (s *fiscalBookStore) RemoveTransaction(ctx context.Context, transactionID string) error {
	return s.client.doJSON(ctx, http.MethodDelete, "/fiscal-books/transactions/"+url.PathEscape(transactionID), nil, nil, nil)
}

func (s *fiscalBookStore) Export(ctx context.Context, bookID, format string) ([]byte, error) {
	query := url.Values{"format": {format}}
	var out []byte
	if err := s.client.doRaw(ctx, http.MethodGet, "/fiscal-books/"+url.PathEscape(bookID)+"/export", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}
