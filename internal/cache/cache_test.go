package cache

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"radagast/internal/domain"
)

type fakeStore struct {
	mu      sync.Mutex
	entries map[string]string
	getErr  error
	setErr  error
	delErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: make(map[string]string)}
}

func (f *fakeStore) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return "", false, f.getErr
	}
	val, ok := f.entries[key]
	return val, ok, nil
}

func (f *fakeStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.entries[key] = value
	return nil
}

func (f *fakeStore) DeleteByPrefix(ctx context.Context, prefix string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delErr != nil {
		return f.delErr
	}
	for k := range f.entries {
		if strings.HasPrefix(k, prefix) {
			delete(f.entries, k)
		}
	}
	return nil
}

func newTestCache(store Store) *Cache {
	return New(store, time.Hour, 250*time.Millisecond, zap.NewNop())
}

func countingHandler(calls *int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(body))
	})
}

func TestKey_IncludesViewer(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/foods?location=шатой", nil)

	adminKey := Key(req, domain.Admin())
	workerKey := Key(req, domain.Worker(domain.LocationShatoy))
	customerKey := Key(req, domain.Customer())

	assert.NotEqual(t, adminKey, workerKey)
	assert.NotEqual(t, adminKey, customerKey)
	assert.NotEqual(t, workerKey, customerKey)
	assert.True(t, strings.HasPrefix(adminKey, "cache:GET:/foods"))
}

func TestMiddleware_ReadThrough(t *testing.T) {
	store := newFakeStore()
	calls := 0
	handler := newTestCache(store).Middleware(countingHandler(&calls, `{"foods":[]}`))

	req := httptest.NewRequest(http.MethodGet, "/foods", nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, 1, calls)
	assert.Equal(t, `{"foods":[]}`, rec.Body.String())

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, 1, calls, "second read must be served from cache")
	assert.Equal(t, `{"foods":[]}`, rec.Body.String())
}

func TestMiddleware_SkipsNonGET(t *testing.T) {
	store := newFakeStore()
	calls := 0
	handler := newTestCache(store).Middleware(countingHandler(&calls, "{}"))

	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, 2, calls)
	assert.Empty(t, store.entries)
}

func TestMiddleware_DoesNotCacheErrors(t *testing.T) {
	store := newFakeStore()
	handler := newTestCache(store).Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/foods/missing", nil))

	assert.Empty(t, store.entries)
}

func TestMiddleware_DegradesOnStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("connection refused")
	store.setErr = errors.New("connection refused")

	calls := 0
	handler := newTestCache(store).Middleware(countingHandler(&calls, `{"ok":true}`))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/foods", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, 1, calls)
}

func TestMiddleware_NilStorePassesThrough(t *testing.T) {
	calls := 0
	handler := newTestCache(nil).Middleware(countingHandler(&calls, "{}"))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/foods", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/foods", nil))

	assert.Equal(t, 2, calls)
}

func TestInvalidateFoods_DropsAllCatalogKeys(t *testing.T) {
	store := newFakeStore()
	store.entries["cache:GET:/foods|admin|"] = "a"
	store.entries["cache:GET:/foods?location=шатой|customer|"] = "b"
	store.entries["cache:GET:/foods/pizza|customer|"] = "c"
	store.entries["cache:GET:/orders|admin|"] = "d"

	newTestCache(store).InvalidateFoods(context.Background())

	assert.Len(t, store.entries, 1)
	assert.Contains(t, store.entries, "cache:GET:/orders|admin|")
}

func TestInvalidateCategories_DropsFoodsToo(t *testing.T) {
	store := newFakeStore()
	store.entries["cache:GET:/categories|customer|"] = "a"
	store.entries["cache:GET:/foods|customer|"] = "b"
	store.entries["cache:GET:/orders|admin|"] = "c"

	newTestCache(store).InvalidateCategories(context.Background())

	assert.Len(t, store.entries, 1)
	assert.Contains(t, store.entries, "cache:GET:/orders|admin|")
}

func TestInvalidateOrders(t *testing.T) {
	store := newFakeStore()
	store.entries["cache:GET:/orders|worker|шатой"] = "a"
	store.entries["cache:GET:/foods|customer|"] = "b"

	newTestCache(store).InvalidateOrders(context.Background())

	assert.Len(t, store.entries, 1)
	assert.Contains(t, store.entries, "cache:GET:/foods|customer|")
}

func TestInvalidate_AbsorbsFailure(t *testing.T) {
	store := newFakeStore()
	store.delErr = errors.New("timeout")
	store.entries["cache:GET:/foods|admin|"] = "a"

	assert.NotPanics(t, func() {
		newTestCache(store).InvalidateFoods(context.Background())
	})
}
