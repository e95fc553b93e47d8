package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bizdesk/internal/client/client"
	"github.com/dmitrijs2005/bizdesk/internal/client/metrics"
	"github.com/dmitrijs2005/bizdesk/internal/client/models"
	"github.com/dmitrijs2005/bizdesk/internal/client/services"
	"github.com/dmitrijs2005/bizdesk/internal/client/session"
	"github.com/dmitrijs2005/bizdesk/internal/logging"
)

const testToken = "header.payload.signature"

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// newTestApp builds an App on a real transport talking to mux. Input is fed
// to the prompts line by line.
func newTestApp(t *testing.T, mux *http.ServeMux, input string) (*App, *bytes.Buffer) {
	t.Helper()
	stubTerminal(t, false, "", nil)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	store := session.NewStore(nil, logging.Discard())
	collector := metrics.NewCollector()
	hc, err := client.NewHTTPClient(client.Config{BaseURL: srv.URL, Metrics: collector, Logger: logging.Discard()}, store)
	require.NoError(t, err)

	var out bytes.Buffer
	a := newApp(services.NewCore(store, hc, logging.Discard()), collector, strings.NewReader(input), &out, logging.Discard())
	return a, &out
}

func signIn(t *testing.T, a *App) {
	t.Helper()
	require.NoError(t, a.core.Session.Begin(context.Background(), testToken, "7"))
}

func TestApp_RequiresLogin(t *testing.T) {
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) { hits.Add(1) })
	a, _ := newTestApp(t, mux, "")
	ctx := context.Background()

	for name, fn := range map[string]func() error{
		"list":    func() error { return a.List(ctx, []string{"projects"}) },
		"add":     func() error { return a.Add(ctx, []string{"projects"}) },
		"edit":    func() error { return a.Edit(ctx, []string{"projects", "1"}) },
		"rm":      func() error { return a.Remove(ctx, []string{"projects", "1"}) },
		"chart":   func() error { return a.Chart(ctx, nil) },
		"convert": func() error { return a.Convert(ctx, []string{"USD", "EUR", "1"}) },
		"whoami":  func() error { return a.WhoAmI(ctx) },
		"profile": func() error { return a.EditProfile(ctx) },
		"delete":  func() error { return a.DeleteAccount(ctx) },
	} {
		require.ErrorIs(t, fn(), errNotLoggedIn, name)
	}
	assert.Zero(t, hits.Load())
}

func TestApp_ArgumentErrors(t *testing.T) {
	a, _ := newTestApp(t, http.NewServeMux(), "")
	signIn(t, a)
	ctx := context.Background()

	require.ErrorIs(t, a.List(ctx, nil), errUsage)
	require.ErrorIs(t, a.List(ctx, []string{"widgets"}), models.ErrUnknownKind)
	require.ErrorIs(t, a.Edit(ctx, []string{"projects"}), errUsage)
	require.ErrorIs(t, a.Edit(ctx, []string{"projects", "x"}), errUsage)
	require.ErrorIs(t, a.Remove(ctx, []string{"projects", "0"}), errUsage)
	require.ErrorIs(t, a.Chart(ctx, []string{"a", "b", "c"}), errUsage)
	require.Error(t, a.Chart(ctx, []string{"2024-02-01", "2024-01-01"}))
	require.ErrorIs(t, a.Convert(ctx, []string{"USD", "EUR"}), errUsage)
	require.ErrorContains(t, a.Convert(ctx, []string{"USD", "EUR", "ten"}), "not a number")
}

func TestApp_Login(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, models.LoginRequest{Email: "ann@acme.io", Password: "pw"}, req)
		writeJSON(t, w, map[string]any{"token": testToken, "user_id": 7})
	})
	mux.HandleFunc("GET /api/users/7", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, models.UserProfile{ID: 7, Name: "Ann", Company: "Acme", Email: "ann@acme.io"})
	})
	a, out := newTestApp(t, mux, "ann@acme.io\npw\n")

	require.NoError(t, a.Login(context.Background()))

	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "(ann@acme.io)", a.status())
	assert.Contains(t, out.String(), "Signed in as Ann (Acme)")
}

func TestApp_ListProjects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/projects", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []models.Project{
			{ID: 1, Name: "Website", Client: "Acme", StartDate: models.NewDate(2024, 1, 15)},
			{ID: 2, Name: "App", Client: "Initech"},
		})
	})
	a, out := newTestApp(t, mux, "")
	signIn(t, a)

	require.NoError(t, a.List(context.Background(), []string{"projects"}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "Website")
	assert.Contains(t, lines[1], "2024-01-15")
	assert.Contains(t, lines[2], "Initech")
	assert.Equal(t, 2, a.core.Cache.Projects.Len())
}

func TestApp_AddTransaction(t *testing.T) {
	var got models.Transaction
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/transactions", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		created := got
		created.ID = 9
		writeJSON(t, w, created)
	})
	a, out := newTestApp(t, mux, "120.50\nincome\nConsulting\npaid\nAcme\n2024-03-05\n")
	signIn(t, a)

	require.NoError(t, a.Add(context.Background(), []string{"transactions"}))

	assert.True(t, decimal.RequireFromString("120.50").Equal(got.Amount))
	assert.Equal(t, models.TransactionIncome, got.TransactionType)
	assert.Equal(t, "paid", got.Status)
	assert.Equal(t, "2024-03-05", got.Date.String())
	cached, ok := a.core.Entities.Transactions.Lookup(9)
	require.True(t, ok)
	assert.Equal(t, "Consulting", cached.Description)
	assert.Contains(t, out.String(), "Created.")
}

func TestApp_AddRejectsInvalidInput(t *testing.T) {
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) { hits.Add(1) })
	ctx := context.Background()

	a, _ := newTestApp(t, mux, "10\ngift\n\npaid\n\n\n")
	signIn(t, a)
	require.ErrorIs(t, a.Add(ctx, []string{"transactions"}), models.ErrInvalidEntity)

	a, _ = newTestApp(t, mux, "lots\n")
	signIn(t, a)
	require.ErrorContains(t, a.Add(ctx, []string{"transactions"}), "not a number")

	a, _ = newTestApp(t, mux, "Ann\nDev\n")
	signIn(t, a)
	require.Error(t, a.Add(ctx, []string{"employees"}))

	assert.Zero(t, hits.Load())
}

func TestApp_EditProjectKeepsUnchangedFields(t *testing.T) {
	var got models.Project
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/projects/{id}", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		require.NoError(t, err)
		updated := got
		updated.ID = id
		writeJSON(t, w, updated)
	})
	a, out := newTestApp(t, mux, "Website v2\n\n\n\n2024-12-31\n")
	signIn(t, a)
	a.core.Cache.Projects.Replace([]models.Project{
		{ID: 4, Name: "Website", Client: "Acme", Description: "landing", StartDate: models.NewDate(2024, 1, 15)},
	})

	require.NoError(t, a.Edit(context.Background(), []string{"projects", "4"}))

	assert.Equal(t, "Website v2", got.Name)
	assert.Equal(t, "Acme", got.Client)
	assert.Equal(t, "landing", got.Description)
	assert.Equal(t, "2024-01-15", got.StartDate.String())
	assert.Equal(t, "2024-12-31", got.EndDate.String())
	cached, ok := a.core.Entities.Projects.Lookup(4)
	require.True(t, ok)
	assert.Equal(t, "Website v2", cached.Name)
	assert.Contains(t, out.String(), "Saved.")
}

func TestApp_EditUnknownID(t *testing.T) {
	var lists atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/budgets", func(w http.ResponseWriter, r *http.Request) {
		lists.Add(1)
		writeJSON(t, w, []models.Budget{})
	})
	a, _ := newTestApp(t, mux, "")
	signIn(t, a)

	require.ErrorContains(t, a.Edit(context.Background(), []string{"budgets", "12"}), "budgets 12 not found")
	assert.EqualValues(t, 1, lists.Load())
}

func TestApp_Remove(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/employees/3", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("DELETE /api/employees/4", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"employee not found"}`))
	})
	a, out := newTestApp(t, mux, "")
	signIn(t, a)
	a.core.Cache.Employees.Replace([]models.Employee{{ID: 3, Name: "Ann"}, {ID: 4, Name: "Bob"}})
	ctx := context.Background()

	require.NoError(t, a.Remove(ctx, []string{"employees", "3"}))
	assert.Contains(t, out.String(), "Deleted.")

	err := a.Remove(ctx, []string{"employees", "4"})
	require.ErrorIs(t, err, client.ErrRemote)
	assert.ErrorContains(t, err, "employee not found")
	assert.Equal(t, 1, a.core.Cache.Employees.Len())
}

func TestApp_Chart(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/chart", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2024-01-01", r.URL.Query().Get("start_date"))
		writeJSON(t, w, map[string]string{"url": "https://img.example/c1.png"})
	})
	mux.HandleFunc("GET /api/transactions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []models.Transaction{
			{ID: 1, Amount: decimal.NewFromInt(500), TransactionType: models.TransactionIncome, Status: "paid", Date: models.NewDate(2024, 3, 2)},
			{ID: 2, Amount: decimal.NewFromInt(200), TransactionType: models.TransactionExpense, Status: "paid", Date: models.NewDate(2024, 3, 20)},
		})
	})
	a, out := newTestApp(t, mux, "")
	signIn(t, a)

	require.NoError(t, a.Chart(context.Background(), []string{"2024-01-01"}))

	s := out.String()
	assert.Contains(t, s, "Chart: https://img.example/c1.png")
	assert.Contains(t, s, "2024-03")
	assert.Contains(t, s, "300.00")
	assert.Contains(t, s, "TOTAL")
}

func TestApp_ChartWithoutImage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/chart", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("GET /api/transactions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []models.Transaction{})
	})
	a, out := newTestApp(t, mux, "")
	signIn(t, a)

	require.NoError(t, a.Chart(context.Background(), nil))

	assert.Contains(t, out.String(), "Chart unavailable")
	assert.Contains(t, out.String(), "No transactions in range.")
}

func TestApp_Convert(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/convert", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "USD", q.Get("base"))
		assert.Equal(t, "EUR", q.Get("target"))
		writeJSON(t, w, map[string]string{"converted_amount": "9.12", "rate": "0.912"})
	})
	a, out := newTestApp(t, mux, "")
	signIn(t, a)

	require.NoError(t, a.Convert(context.Background(), []string{"usd", "eur", "10"}))
	assert.Equal(t, "10 USD = 9.12 EUR (rate 0.912)\n", out.String())
}

func TestApp_ProfileAndDeleteAccount(t *testing.T) {
	var upd models.ProfileUpdate
	var deleted atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/users/7", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, models.UserProfile{ID: 7, Name: "Ann", Company: "Acme", Industry: "IT", Email: "ann@acme.io"})
	})
	mux.HandleFunc("PUT /api/users/7", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&upd))
		writeJSON(t, w, models.UserProfile{ID: 7, Name: upd.Name, Company: upd.Company, Industry: upd.Industry, Email: "ann@acme.io"})
	})
	mux.HandleFunc("DELETE /api/users/7", func(w http.ResponseWriter, r *http.Request) {
		deleted.Add(1)
		w.WriteHeader(http.StatusNoContent)
	})
	a, out := newTestApp(t, mux, "\nAcme Ltd\n\nno\nyes\n")
	signIn(t, a)
	ctx := context.Background()

	require.NoError(t, a.EditProfile(ctx))
	assert.Equal(t, models.ProfileUpdate{Name: "Ann", Company: "Acme Ltd", Industry: "IT"}, upd)
	p, ok := a.core.Session.Profile()
	require.True(t, ok)
	assert.Equal(t, "Acme Ltd", p.Company)

	require.NoError(t, a.WhoAmI(ctx))
	assert.Contains(t, out.String(), "Company:  Acme Ltd")

	require.NoError(t, a.DeleteAccount(ctx))
	assert.Contains(t, out.String(), "Cancelled")
	assert.Zero(t, deleted.Load())

	require.NoError(t, a.DeleteAccount(ctx))
	assert.EqualValues(t, 1, deleted.Load())
	assert.False(t, a.isLoggedIn())
}

func TestApp_LogoutClearsCache(t *testing.T) {
	a, out := newTestApp(t, http.NewServeMux(), "")
	signIn(t, a)
	a.core.Cache.Projects.Replace([]models.Project{{ID: 1, Name: "x", Client: "y"}})

	require.NoError(t, a.Logout(context.Background()))

	assert.False(t, a.isLoggedIn())
	assert.Zero(t, a.core.Cache.Projects.Len())
	assert.Contains(t, out.String(), "Logged out")
}

func TestApp_Stats(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/employees", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []models.Employee{{ID: 1, Name: "Ann"}})
	})
	a, out := newTestApp(t, mux, "")
	signIn(t, a)
	ctx := context.Background()
	require.NoError(t, a.List(ctx, []string{"employees"}))
	out.Reset()

	require.NoError(t, a.Stats(ctx))

	s := out.String()
	assert.Contains(t, s, "cached employees: 1")
	assert.Contains(t, s, "cached projects: 0")
	assert.Contains(t, s, "bizdesk_client_http_requests_total{method=GET,status=200} 1")
}

func TestApp_Run(t *testing.T) {
	a, out := newTestApp(t, http.NewServeMux(), "help\nexit\n")

	require.NoError(t, a.Run(context.Background()))

	s := out.String()
	assert.Contains(t, s, "Welcome to bizdesk")
	assert.Contains(t, s, "Available commands: register, login")
	assert.Contains(t, s, "Bye!")
}
