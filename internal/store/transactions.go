package store

import (
	"context"
	"net/http"
	"net/url"

	"fiscalbook/internal/models"
)

// TransactionStore is the remote collaborator owning transactions.
type TransactionStore interface {
	FindByID(ctx context.Context, id string) (models.Transaction, error)
	FindAllInPeriod(ctx context.Context, period string) ([]models.Transaction, error)
	Insert(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	Update(ctx context.Context, id string, tx models.Transaction) (models.Transaction, error)
	DeleteByID(ctx context.Context, id string) error
	// SeparateByID splits a transaction into one transaction per line item.
	// The operation is opaque to the client; the resulting ids are whatever
	// the backend decides.
	SeparateByID(ctx context.Context, id string) error
	RemoveAllInPeriod(ctx context.Context, period string) error
	// Deprecated: the backend keeps this endpoint for the search-scoped bulk
	// delete only. New callers should scope deletion by period.
	RemoveAllByName(ctx context.Context, name string) error
	FindUniquePeriods(ctx context.Context) ([]string, error)
}

type transactionStore struct {
	client *Client
}

// NewTransactionStore creates a TransactionStore over the given client.
func NewTransactionStore(client *Client) TransactionStore {
	return &transactionStore{client: client}
}

func (s *transactionStore) FindByID(ctx context.Context, id string) (models.Transaction, error) {
	var out models.Transaction
	err := s.client.doJSON(ctx, http.MethodGet, "/transactions/"+url.PathEscape(id), nil, nil, &out)
	return out, err
}

func (s *transactionStore) FindAllInPeriod(ctx context.Context, period string) ([]models.Transaction, error) {
	query := url.Values{"period": {period}}
	var out []models.Transaction
	if err := s.client.doJSON(ctx, http.MethodGet, "/transactions", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *transactionStore) Insert(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	var out models.Transaction
	err := s.client.doJSON(ctx, http.MethodPost, "/transactions", nil, tx, &out)
	return out, err
}

func (s *transactionStore) Update(ctx context.Context, id string, tx models.Transaction) (models.Transaction, error) {
	var out models.Transaction
	err := s.client.doJSON(ctx, http.MethodPut, "/transactions/"+url.PathEscape(id), nil, tx, &out)
	return out, err
}

func (s *transactionStore) DeleteByID(ctx context.Context, id string) error {
	return s.client.doJSON(ctx, http.MethodDelete, "/transactions/"+url.PathEscape(id), nil, nil, nil)
}

func (s *transactionStore) SeparateByID(ctx context.Context, id string) error {
	return s.client.doJSON(ctx, http.MethodPost, "/transactions/"+url.PathEscape(id)+"/separate", nil, nil, nil)
}

func (s *transactionStore) RemoveAllInPeriod(ctx context.Context, period string) error {
	query := url.Values{"period": {period}}
	return s.client.doJSON(ctx, http.MethodDelete, "/transactions", query, nil, nil)
}

func (s *transactionStore) RemoveAllByName(ctx context.Context, name string) error {
	query := url.Values{"name": {name}}
	return s.client.doJSON(ctx, http.MethodDelete, "/transactions/by-name", query, nil, nil)
}

func (s *transactionStore) FindUniquePeriods(ctx context.Context) ([]string, error) {
	var out []string
	if err := s.client.doJSON(ctx, http.MethodGet, "/transactions/periods", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
