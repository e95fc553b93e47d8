package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bizdesk/internal/client/cache"
	"github.com/dmitrijs2005/bizdesk/internal/client/client"
	"github.com/dmitrijs2005/bizdesk/internal/client/models"
	"github.com/dmitrijs2005/bizdesk/internal/client/session"
	"github.com/dmitrijs2005/bizdesk/internal/logging"
)

type erasingPersister struct {
	session.MemoryPersister
	erases atomic.Int32
}

func (p *erasingPersister) Erase(ctx context.Context) error {
	p.erases.Add(1)
	return p.MemoryPersister.Erase(ctx)
}

func newCore(t *testing.T, h http.HandlerFunc, p session.Persister) *Core {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	store := session.NewStore(p, logging.Discard())
	hc, err := client.NewHTTPClient(client.Config{BaseURL: srv.URL, Logger: logging.Discard()}, store)
	require.NoError(t, err)
	return NewCore(store, hc, logging.Discard())
}

func TestCore_NoTokenMeansNoNetwork(t *testing.T) {
	var hits atomic.Int32
	core := newCore(t, func(w http.ResponseWriter, r *http.Request) { hits.Add(1) }, nil)
	ctx := context.Background()

	core.Cache.Projects.Replace(seed())

	assert.Empty(t, core.Entities.Projects.List(ctx))
	assert.False(t, core.Entities.Projects.Create(ctx, models.Project{Name: "a", Client: "b"}))
	assert.False(t, core.Entities.Projects.Update(ctx, 1, models.Project{Name: "a", Client: "b"}))
	require.ErrorIs(t, core.Entities.Projects.Delete(ctx, 1), client.ErrUnauthenticated)
	_, err := core.Charts.Report(ctx, chartRange(t, "", ""))
	require.ErrorIs(t, err, client.ErrUnauthenticated)
	require.NoError(t, core.Auth.GetCurrentUser(ctx))

	assert.Zero(t, hits.Load())
}

func TestCore_ConcurrentUnauthorizedClearsOnce(t *testing.T) {
	ctx := context.Background()
	p := &erasingPersister{}
	gate := make(chan struct{})
	core := newCore(t, func(w http.ResponseWriter, r *http.Request) {
		<-gate
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"msg":"Token has expired"}`))
	}, p)

	require.NoError(t, core.Session.Begin(ctx, testToken, "7"))
	core.Cache.Employees.Replace([]models.Employee{{ID: 1, Name: "Ann"}})
	p.erases.Store(0)

	var wg sync.WaitGroup
	for _, kind := range []models.Kind{models.KindTransactions, models.KindBudgets, models.KindEmployees, models.KindProjects} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Error(t, core.Entities.Delete(ctx, kind, 1))
		}()
	}
	close(gate)
	wg.Wait()

	assert.False(t, core.Session.Authenticated())
	assert.EqualValues(t, 1, p.erases.Load())
	assert.Zero(t, core.Cache.Employees.Len())
}

func TestCore_LogoutResetsCache(t *testing.T) {
	ctx := context.Background()
	core := newCore(t, func(http.ResponseWriter, *http.Request) {}, nil)
	require.NoError(t, core.Session.Begin(ctx, testToken, "7"))
	core.Cache.Projects.Replace(seed())

	core.Auth.Logout(ctx)

	for kind, n := range core.Cache.Counts() {
		assert.Zero(t, n, kind)
	}
}

func TestDispatcher_LoadAll(t *testing.T) {
	ctx := context.Background()
	core := newCore(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/transactions":
			_, _ = w.Write([]byte(`[{"id":1,"amount":10.5,"transaction_type":"income","status":"paid","date":"2024-01-05T00:00:00"}]`))
		case "/api/budgets":
			_, _ = w.Write([]byte(`[{"id":1,"project_id":3,"amount":100,"status":"open"},{"id":2,"project_id":3,"amount":5,"status":"open"}]`))
		case "/api/employees":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	}, nil)
	require.NoError(t, core.Session.Begin(ctx, testToken, "7"))

	counts, err := core.Entities.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[models.Kind]int{
		models.KindTransactions: 1,
		models.KindBudgets:      2,
		models.KindEmployees:    0,
		models.KindProjects:     0,
	}, counts)

	tx := core.Entities.Transactions.Cached()[0]
	assert.Equal(t, "10.5", tx.Amount.String())
	assert.Equal(t, "2024-01-05", tx.Date.String())
}

func TestDispatcher_DeleteUnknownKind(t *testing.T) {
	d := NewDispatcher(&fakeClient{}, signedInStore(context.Background()), cache.New(), logging.Discard())
	require.ErrorIs(t, d.Delete(context.Background(), models.Kind("invoices"), 1), models.ErrUnknownKind)
}
