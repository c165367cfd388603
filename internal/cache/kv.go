// Package cache owns the client-side transaction lists: the full list for
// the selected period and the display list the user currently sees. Both
// lists plus the search term and selected period are mirrored into a
// persistent key-value store so a restart picks up where the UI left off.
package cache

// Persisted keys. The three list/period keys decide the warm/cold check as
// one unit; searchTerm is restored opportunistically.
const (
	KeyFullList    = "fullTransactionsList"
	KeyDisplayList = "transactionsPrintList"
	KeySearchTerm  = "searchTerm"
	KeyPeriod      = "periodSelected"
)

// KV is a synchronous string key-value store. Writes from the cache are
// fire-and-forget; a failed write is logged, never surfaced.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}
