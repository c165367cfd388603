package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"fiscalbook/internal/cache"
	"fiscalbook/internal/handlers"
	"fiscalbook/internal/logger"
	"fiscalbook/internal/middleware"
	"fiscalbook/internal/models"
	"fiscalbook/internal/reassign"
	"fiscalbook/internal/store"
	"fiscalbook/internal/testutil"
	"fiscalbook/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// fakeBackend is an in-memory stand-in for the remote finance service. It
// implements the REST surface the store clients call.
type fakeBackend struct {
	mu           sync.Mutex
	transactions map[string]models.Transaction
	books        map[string]models.FiscalBook
	idCounter    atomic.Int64
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		transactions: make(map[string]models.Transaction),
		books:        make(map[string]models.FiscalBook),
	}
}

func (b *fakeBackend) nextID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, b.idCounter.Add(1))
}

// seedTransaction inserts a transaction directly into the backend state.
func (b *fakeBackend) seedTransaction(tx models.Transaction) models.Transaction {
	b.mu.Lock()
	defer b.mu.Unlock()
	if tx.ID == "" {
		tx.ID = b.nextID("tx")
	}
	b.transactions[tx.ID] = tx
	return tx
}

// seedBook inserts a fiscal book directly into the backend state.
func (b *fakeBackend) seedBook(book models.FiscalBook) models.FiscalBook {
	b.mu.Lock()
	defer b.mu.Unlock()
	if book.ID == "" {
		book.ID = b.nextID("book")
	}
	if book.Status == "" {
		book.Status = models.BookStatusAberto
	}
	b.books[book.ID] = book
	return book
}

func (b *fakeBackend) countTransactions(bookID string) int {
	count := 0
	for _, tx := range b.transactions {
		if tx.FiscalBookID == bookID {
			count++
		}
	}
	return count
}

func (b *fakeBackend) router() *gin.Engine {
	r := gin.New()

	notFound := func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "not found"}})
	}

	r.GET("/transactions", func(c *gin.Context) {
		b.mu.Lock()
		defer b.mu.Unlock()
		period := c.Query("period")
		out := []models.Transaction{}
		for _, tx := range b.transactions {
			if period == "" || tx.Period == period {
				out = append(out, tx)
			}
		}
		c.JSON(http.StatusOK, out)
	})

	r.GET("/transactions/periods", func(c *gin.Context) {
		b.mu.Lock()
		defer b.mu.Unlock()
		seen := map[string]bool{}
		out := []string{}
		for _, tx := range b.transactions {
			if !seen[tx.Period] {
				seen[tx.Period] = true
				out = append(out, tx.Period)
			}
		}
		c.JSON(http.StatusOK, out)
	})

	r.GET("/transactions/:id", func(c *gin.Context) {
		b.mu.Lock()
		defer b.mu.Unlock()
		tx, ok := b.transactions[c.Param("id")]
		if !ok {
			notFound(c)
			return
		}
		c.JSON(http.StatusOK, tx)
	})

	r.POST("/transactions", func(c *gin.Context) {
		var tx models.Transaction
		if err := c.ShouldBindJSON(&tx); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "INVALID_INPUT", "message": err.Error()}})
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		tx.ID = b.nextID("tx")
		b.transactions[tx.ID] = tx
		c.JSON(http.StatusCreated, tx)
	})

	r.PUT("/transactions/:id", func(c *gin.Context) {
		var tx models.Transaction
		if err := c.ShouldBindJSON(&tx); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "INVALID_INPUT", "message": err.Error()}})
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		id := c.Param("id")
		if _, ok := b.transactions[id]; !ok {
			notFound(c)
			return
		}
		tx.ID = id
		b.transactions[id] = tx
		c.JSON(http.StatusOK, tx)
	})

	r.DELETE("/transactions/:id", func(c *gin.Context) {
		b.mu.Lock()
		defer b.mu.Unlock()
		id := c.Param("id")
		if _, ok := b.transactions[id]; !ok {
			notFound(c)
			return
		}
		delete(b.transactions, id)
		c.Status(http.StatusNoContent)
	})

	r.POST("/transactions/:id/separate", func(c *gin.Context) {
		b.mu.Lock()
		defer b.mu.Unlock()
		id := c.Param("id")
		tx, ok := b.transactions[id]
		if !ok {
			notFound(c)
			return
		}
		delete(b.transactions, id)
		for _, item := range tx.Items {
			split := tx
			split.ID = b.nextID("tx")
			split.Name = item.Name
			split.Value = item.Value
			split.Items = nil
			b.transactions[split.ID] = split
		}
		c.Status(http.StatusOK)
	})

	r.DELETE("/transactions", func(c *gin.Context) {
		b.mu.Lock()
		defer b.mu.Unlock()
		period := c.Query("period")
		for id, tx := range b.transactions {
			if tx.Period == period {
				delete(b.transactions, id)
			}
		}
		c.Status(http.StatusNoContent)
	})

	r.DELETE("/transactions/by-name", func(c *gin.Context) {
		b.mu.Lock()
		defer b.mu.Unlock()
		name := c.Query("name")
		for id, tx := range b.transactions {
			if strings.Contains(strings.ToLower(tx.Name), strings.ToLower(name)) {
				delete(b.transactions, id)
			}
		}
		c.Status(http.StatusNoContent)
	})

	r.GET("/fiscal-books", func(c *gin.Context) {
		b.mu.Lock()
		defer b.mu.Unlock()
		out := []models.FiscalBook{}
		for _, book := range b.books {
			book.TransactionCount = b.countTransactions(book.ID)
			out = append(out, book)
		}
		c.JSON(http.StatusOK, out)
	})

	r.GET("/fiscal-books/:id", func(c *gin.Context) {
		b.mu.Lock()
		defer b.mu.Unlock()
		book, ok := b.books[c.Param("id")]
		if !ok {
			notFound(c)
			return
		}
		book.TransactionCount = b.countTransactions(book.ID)
		c.JSON(http.StatusOK, book)
	})

	r.POST("/fiscal-books", func(c *gin.Context) {
		var book models.FiscalBook
		if err := c.ShouldBindJSON(&book); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "INVALID_INPUT", "message": err.Error()}})
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		book.ID = b.nextID("book")
		b.books[book.ID] = book
		c.JSON(http.StatusCreated, book)
	})

	r.PUT("/fiscal-books/:id", func(c *gin.Context) {
		var book models.FiscalBook
		if err := c.ShouldBindJSON(&book); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "INVALID_INPUT", "message": err.Error()}})
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		id := c.Param("id")
		if _, ok := b.books[id]; !ok {
			notFound(c)
			return
		}
		book.ID = id
		b.books[id] = book
		c.JSON(http.StatusOK, book)
	})

	r.DELETE("/fiscal-books/:id", func(c *gin.Context) {
		b.mu.Lock()
		defer b.mu.Unlock()
		id := c.Param("id")
		if _, ok := b.books[id]; !ok {
			notFound(c)
			return
		}
		delete(b.books, id)
		c.Status(http.StatusNoContent)
	})

	r.POST("/fiscal-books/:id/close", func(c *gin.Context) {
		b.setStatus(c, models.BookStatusFechado)
	})

	r.POST("/fiscal-books/:id/reopen", func(c *gin.Context) {
		b.setStatus(c, models.BookStatusAberto)
	})

	r.POST("/fiscal-books/:id/transactions", func(c *gin.Context) {
		var body struct {
			TransactionIDs []string `json:"transactionIds"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "INVALID_INPUT", "message": err.Error()}})
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		bookID := c.Param("id")
		book, ok := b.books[bookID]
		if !ok {
			notFound(c)
			return
		}
		for _, id := range body.TransactionIDs {
			tx, ok := b.transactions[id]
			if !ok {
				notFound(c)
				return
			}
			tx.FiscalBookID = bookID
			tx.FiscalBookName = book.EffectiveName()
			b.transactions[id] = tx
		}
		c.Status(http.StatusOK)
	})

	r.DELETE("/fiscal-books/transactions/:transactionId", func(c *gin.Context) {
		b.mu.Lock()
		defer b.mu.Unlock()
		id := c.Param("transactionId")
		tx, ok := b.transactions[id]
		if !ok {
			notFound(c)
			return
		}
		tx.FiscalBookID = ""
		tx.FiscalBookName = ""
		tx.FiscalBookYear = ""
		b.transactions[id] = tx
		c.Status(http.StatusNoContent)
	})

	r.GET("/fiscal-books/:id/export", func(c *gin.Context) {
		b.mu.Lock()
		defer b.mu.Unlock()
		book, ok := b.books[c.Param("id")]
		if !ok {
			notFound(c)
			return
		}
		c.Data(http.StatusOK, "text/csv", []byte("id,name\n"+book.ID+","+book.EffectiveName()+"\n"))
	})

	return r
}

func (b *fakeBackend) setStatus(c *gin.Context, status models.BookStatus) {
	b.mu.Lock()
	defer b.mu.Unlock()
	book, ok := b.books[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "not found"}})
		return
	}
	book.Status = status
	b.books[book.ID] = book
	c.JSON(http.StatusOK, book)
}

// testApp holds the full application stack wired against a fake backend.
type testApp struct {
	Backend *fakeBackend
	KV      *cache.SQLiteKV
	Cache   *cache.ListCache
	Router  *gin.Engine
}

// setupApp builds the application stack: a fake backend server, real store
// clients, a SQLite-backed cache, and the full router. The cache starts cold
// and empty; tests seed the backend and switch periods through the API.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	backend := newFakeBackend()
	server := httptest.NewServer(backend.router())
	t.Cleanup(server.Close)

	kv := testutil.SetupTestKV(t)
	t.Cleanup(func() { testutil.TeardownTestKV(t, kv) })

	client := store.NewClient(server.URL, 5*time.Second)
	txStore := store.NewTransactionStore(client)
	bookStore := store.NewFiscalBookStore(client)

	listCache := cache.NewListCache(kv, txStore)
	if err := listCache.Start(context.Background()); err != nil {
		t.Fatalf("failed to start cache: %v", err)
	}

	engine := reassign.NewEngine(bookStore)

	transactionHandler := handlers.NewTransactionHandler(listCache, txStore)
	fiscalBookHandler := handlers.NewFiscalBookHandler(bookStore)
	reassignHandler := handlers.NewReassignHandler(engine, bookStore, listCache)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	transactions := v1.Group("/transactions")
	transactions.GET("", transactionHandler.List)
	transactions.GET("/periods", transactionHandler.Periods)
	transactions.GET("/:id", transactionHandler.GetByID)
	transactions.POST("", transactionHandler.Create)
	transactions.PUT("/:id", transactionHandler.Update)
	transactions.POST("/:id/separate", transactionHandler.Separate)
	transactions.DELETE("/:id", transactionHandler.Delete)
	transactions.DELETE("", transactionHandler.BulkDelete)
	transactions.POST("/search", transactionHandler.Search)
	transactions.POST("/category", transactionHandler.SelectCategory)
	transactions.POST("/restore", transactionHandler.Restore)
	transactions.PUT("/period", transactionHandler.ChangePeriod)

	books := v1.Group("/fiscal-books")
	books.GET("", fiscalBookHandler.List)
	books.GET("/:id", fiscalBookHandler.GetByID)
	books.POST("", fiscalBookHandler.Create)
	books.PUT("/:id", fiscalBookHandler.Update)
	books.DELETE("/:id", fiscalBookHandler.Delete)
	books.POST("/:id/close", fiscalBookHandler.Close)
	books.POST("/:id/reopen", fiscalBookHandler.Reopen)
	books.POST("/:id/archive", fiscalBookHandler.Archive)
	books.GET("/:id/export", fiscalBookHandler.Export)

	reassignGroup := v1.Group("/reassign")
	reassignGroup.POST("/assign", reassignHandler.Assign)
	reassignGroup.POST("/remove", reassignHandler.Remove)
	reassignGroup.POST("/transfer", reassignHandler.Transfer)

	return &testApp{Backend: backend, KV: kv, Cache: listCache, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}
