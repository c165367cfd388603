package cache

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"fiscalbook/internal/logger"
	"fiscalbook/internal/models"
	"fiscalbook/internal/search"
	"fiscalbook/internal/store"
)

// Search terms shorter than this reset the display list instead of
// filtering it.
const minSearchLength = 3

// Snapshot is the persisted cache state read back as one unit. It is only
// warm when the full list, display list, and period were all present.
type Snapshot struct {
	Full       []models.Transaction
	Display    []models.Transaction
	SearchTerm string
	Period     string
}

// ListCache keeps the full and display transaction lists of the selected
// period consistent under search, category selection, period changes, and
// mutations, mirroring every change into the KV store. The display list is
// always a subset of the full list filtered by the last-applied predicate.
//
// The cache is single-writer: UI callbacks arrive one at a time and no
// internal locking is done.
type ListCache struct {
	kv   KV
	txns store.TransactionStore
	log  *zap.SugaredLogger

	full       []models.Transaction
	display    []models.Transaction
	searchTerm string
	period     string
}

// NewListCache creates a cache over the given KV mirror and remote store.
func NewListCache(kv KV, txns store.TransactionStore) *ListCache {
	return &ListCache{
		kv:   kv,
		txns: txns,
		log:  logger.Named("cache"),
	}
}

// Start brings the cache up: warm from the KV mirror when the persisted
// state is complete, otherwise a cold fetch for the selected period (the
// current month when nothing was persisted).
func (c *ListCache) Start(ctx context.Context) error {
	if snap, warm := c.load(); warm {
		c.full = snap.Full
		c.display = snap.Display
		c.searchTerm = snap.SearchTerm
		c.period = snap.Period
		c.log.Infow("cache warm", "period", c.period, "full", len(c.full), "display", len(c.display))
		return nil
	}

	if c.period == "" {
		c.period = time.Now().Format("2006-01")
	}
	c.log.Infow("cache cold, fetching", "period", c.period)
	return c.Refresh(ctx)
}

// load reads the persisted snapshot. Any missing list/period key makes the
// cache cold as a whole.
func (c *ListCache) load() (Snapshot, bool) {
	var snap Snapshot

	rawFull, okFull, err := c.kv.Get(KeyFullList)
	if err != nil {
		c.log.Warnw("cache read failed", "key", KeyFullList, "error", err.Error())
		return snap, false
	}
	rawDisplay, okDisplay, err := c.kv.Get(KeyDisplayList)
	if err != nil {
		c.log.Warnw("cache read failed", "key", KeyDisplayList, "error", err.Error())
		return snap, false
	}
	period, okPeriod, err := c.kv.Get(KeyPeriod)
	if err != nil {
		c.log.Warnw("cache read failed", "key", KeyPeriod, "error", err.Error())
		return snap, false
	}
	if !okFull || !okDisplay || !okPeriod {
		return snap, false
	}

	if err := json.Unmarshal([]byte(rawFull), &snap.Full); err != nil {
		c.log.Warnw("persisted full list unreadable, treating cache as cold", "error", err.Error())
		return Snapshot{}, false
	}
	if err := json.Unmarshal([]byte(rawDisplay), &snap.Display); err != nil {
		c.log.Warnw("persisted display list unreadable, treating cache as cold", "error", err.Error())
		return Snapshot{}, false
	}
	snap.Period = period
	snap.SearchTerm, _, _ = c.kv.Get(KeySearchTerm)
	return snap, true
}

// Refresh refetches the selected period and repopulates both lists
// identically.
func (c *ListCache) Refresh(ctx context.Context) error {
	list, err := c.txns.FindAllInPeriod(ctx, c.period)
	if err != nil {
		return err
	}
	c.full = list
	c.display = copyList(list)
	c.persistList(KeyFullList, c.full)
	c.persistList(KeyDisplayList, c.display)
	c.persistScalar(KeyPeriod, c.period)
	return nil
}

// ChangePeriod switches the selected period. The display list is cleared
// right away so no stale rows show during the fetch.
func (c *ListCache) ChangePeriod(ctx context.Context, period string) error {
	if period == "" || period == c.period {
		return nil
	}
	c.display = nil
	c.period = period
	// Mirror the cleared display with the period so a failed refetch never
	// leaves the old period's rows persisted under the new period.
	c.persistList(KeyDisplayList, c.display)
	c.persistScalar(KeyPeriod, period)
	return c.Refresh(ctx)
}

// Search applies a search term to the display list. Terms shorter than
// three characters reset the display list to the full list.
func (c *ListCache) Search(term string) {
	c.searchTerm = term
	if len([]rune(term)) >= minSearchLength {
		c.display = search.Search(term, c.full, models.SearchableTransactionFields)
	} else {
		c.display = copyList(c.full)
	}
	c.persistList(KeyDisplayList, c.display)
	c.persistScalar(KeySearchTerm, term)
}

// SelectCategory filters the display list to the transactions of one
// category. An empty match leaves the display list untouched, so the
// previous rows stay visible.
func (c *ListCache) SelectCategory(categoryID string) {
	if categoryID == "" {
		return
	}
	var filtered []models.Transaction
	for _, tx := range c.full {
		if tx.CategoryID == categoryID {
			filtered = append(filtered, tx)
		}
	}
	if len(filtered) == 0 {
		return
	}
	c.display = filtered
	c.persistList(KeyDisplayList, c.display)
}

// Restore resets the display list to the full list.
func (c *ListCache) Restore() {
	c.display = copyList(c.full)
	c.persistList(KeyDisplayList, c.display)
}

// Delete removes the transaction with exactly the given id from both lists.
// Both lists are persisted independently, even when one of them did not
// contain the transaction.
func (c *ListCache) Delete(id string) {
	c.full = spliceByID(c.full, id)
	c.display = spliceByID(c.display, id)
	c.persistList(KeyFullList, c.full)
	c.persistList(KeyDisplayList, c.display)
}

// Insert adds a freshly created transaction to the full list and re-derives
// the display list from the active search term.
func (c *ListCache) Insert(tx models.Transaction) {
	c.full = append(c.full, tx)
	c.applySearch()
	c.persistList(KeyFullList, c.full)
	c.persistList(KeyDisplayList, c.display)
}

// Update replaces the transaction with the same id in both lists.
func (c *ListCache) Update(tx models.Transaction) {
	replaceByID(c.full, tx)
	replaceByID(c.display, tx)
	c.persistList(KeyFullList, c.full)
	c.persistList(KeyDisplayList, c.display)
}

// ApplyOwnership updates the fiscal-book fields of one transaction in both
// lists, after a reassignment operation reported the new owner.
func (c *ListCache) ApplyOwnership(id, bookID, bookName, bookYear string) {
	for _, list := range [][]models.Transaction{c.full, c.display} {
		for i := range list {
			if list[i].ID == id {
				list[i].FiscalBookID = bookID
				list[i].FiscalBookName = bookName
				list[i].FiscalBookYear = bookYear
			}
		}
	}
	c.persistList(KeyFullList, c.full)
	c.persistList(KeyDisplayList, c.display)
}

// BulkDelete wipes transactions remotely: the whole selected period when no
// search term is active, otherwise the deprecated by-name endpoint scoped to
// the current term. Afterwards the cache refreshes and the term is cleared.
func (c *ListCache) BulkDelete(ctx context.Context) error {
	var err error
	if c.searchTerm == "" {
		err = c.txns.RemoveAllInPeriod(ctx, c.period)
	} else {
		err = c.txns.RemoveAllByName(ctx, c.searchTerm)
	}
	if err != nil {
		return err
	}

	c.searchTerm = ""
	c.persistScalar(KeySearchTerm, "")
	return c.Refresh(ctx)
}

// Full returns a copy of the full list.
func (c *ListCache) Full() []models.Transaction { return copyList(c.full) }

// Display returns a copy of the display list.
func (c *ListCache) Display() []models.Transaction { return copyList(c.display) }

// SearchTerm returns the active search term.
func (c *ListCache) SearchTerm() string { return c.searchTerm }

// Period returns the selected period.
func (c *ListCache) Period() string { return c.period }

// applySearch re-derives the display list from the active search term.
func (c *ListCache) applySearch() {
	if len([]rune(c.searchTerm)) >= minSearchLength {
		c.display = search.Search(c.searchTerm, c.full, models.SearchableTransactionFields)
	} else {
		c.display = copyList(c.full)
	}
}

// persistList mirrors a list into the KV store. Failures are logged and
// swallowed; the in-memory state stays authoritative for this session.
func (c *ListCache) persistList(key string, list []models.Transaction) {
	if list == nil {
		list = []models.Transaction{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		c.log.Warnw("cache marshal failed", "key", key, "error", err.Error())
		return
	}
	if err := c.kv.Set(key, string(raw)); err != nil {
		c.log.Warnw("cache write failed", "key", key, "error", err.Error())
	}
}

func (c *ListCache) persistScalar(key, value string) {
	if err := c.kv.Set(key, value); err != nil {
		c.log.Warnw("cache write failed", "key", key, "error", err.Error())
	}
}

func copyList(list []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, len(list))
	copy(out, list)
	return out
}

// spliceByID removes the first element whose id strictly equals the target.
func spliceByID(list []models.Transaction, id string) []models.Transaction {
	for i := range list {
		if list[i].ID == id {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

func replaceByID(list []models.Transaction, tx models.Transaction) {
	for i := range list {
		if list[i].ID == tx.ID {
			list[i] = tx
		}
	}
}
