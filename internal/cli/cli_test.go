package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NamanBalaji/payouts/internal/common"
	"github.com/NamanBalaji/payouts/internal/workflow"
)

type fakeAPI struct {
	mu         sync.Mutex
	marked     []string
	listCalls  int
	markStatus int
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/commissions/{id}/duplicate", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.marked = append(f.marked, r.PathValue("id"))
		status := f.markStatus
		f.mu.Unlock()

		if status != 0 {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"message":"commission is locked"}}`))
			return
		}

		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("GET /api/commissions", func(w http.ResponseWriter, _ *http.Request) {
		f.mu.Lock()
		f.listCalls++
		f.mu.Unlock()

		_ = json.NewEncoder(w).Encode([]common.Commission{
			{
				ID:        "cm_old",
				CreatedAt: time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC),
				Quantity:  3,
				Earnings:  300,
				Type:      common.TypeLead,
				Status:    common.StatusPaid,
				Partner:   &common.Partner{Name: "Acme"},
			},
			{
				ID:        "cm_new",
				CreatedAt: time.Date(2024, time.March, 7, 15, 4, 0, 0, time.UTC),
				Amount:    123450,
				Earnings:  500,
				Type:      common.TypeSale,
				Status:    common.StatusPending,
				Customer:  &common.Customer{Name: "Ada"},
			},
		})
	})

	return mux
}

func (f *fakeAPI) markedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.marked...)
}

func setupEnv(t *testing.T) (*fakeAPI, string) {
	t.Helper()

	dir := t.TempDir()
	oldConfig, oldCache, oldState := xdg.ConfigHome, xdg.CacheHome, xdg.StateHome
	xdg.ConfigHome, xdg.CacheHome, xdg.StateHome = dir, dir+"/cache", dir+"/state"
	t.Cleanup(func() {
		xdg.ConfigHome, xdg.CacheHome, xdg.StateHome = oldConfig, oldCache, oldState
	})
	t.Setenv("PAYOUTS_TOKEN", "")

	f := &fakeAPI{}
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)

	return f, srv.URL
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	a := &app{}
	defer a.close()

	var out bytes.Buffer
	root := newRootCmd(a)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

func TestMarkDuplicate_Yes(t *testing.T) {
	f, url := setupEnv(t)

	out, err := run(t, "", "mark-duplicate", "cm_new", "--yes",
		"--api-url", url, "--workspace", "ws_1", "--program", "prog_1")

	require.NoError(t, err)
	assert.Equal(t, []string{"cm_new"}, f.markedIDs())
	assert.Contains(t, out, workflow.SuccessMessage)
	assert.NotContains(t, out, "[y/N]")
}

func TestMarkDuplicate_Prompt(t *testing.T) {
	t.Run("Declined", func(t *testing.T) {
		f, url := setupEnv(t)

		out, err := run(t, "n\n", "mark-duplicate", "cm_new",
			"--api-url", url, "--workspace", "ws_1", "--program", "prog_1")

		require.ErrorIs(t, err, errAborted)
		assert.Contains(t, out, "This action cannot be undone.")
		assert.Empty(t, f.markedIDs())
	})

	t.Run("Empty Input Is No", func(t *testing.T) {
		f, url := setupEnv(t)

		_, err := run(t, "", "mark-duplicate", "cm_new",
			"--api-url", url, "--workspace", "ws_1", "--program", "prog_1")

		require.ErrorIs(t, err, errAborted)
		assert.Empty(t, f.markedIDs())
	})

	t.Run("Accepted", func(t *testing.T) {
		f, url := setupEnv(t)

		_, err := run(t, "yes\n", "mark-duplicate", "cm_new",
			"--api-url", url, "--workspace", "ws_1", "--program", "prog_1")

		require.NoError(t, err)
		assert.Equal(t, []string{"cm_new"}, f.markedIDs())
	})
}

func TestMarkDuplicate_Failure(t *testing.T) {
	f, url := setupEnv(t)
	f.markStatus = http.StatusConflict

	out, err := run(t, "", "mark-duplicate", "cm_new", "-y",
		"--api-url", url, "--workspace", "ws_1", "--program", "prog_1")

	require.ErrorIs(t, err, errMarkFailed)
	assert.Contains(t, out, workflow.FailureMessage)
	assert.NotContains(t, out, workflow.SuccessMessage)
}

func TestMarkDuplicate_MissingIDs(t *testing.T) {
	f, url := setupEnv(t)

	_, err := run(t, "", "mark-duplicate", "cm_new", "--yes", "--api-url", url, "--workspace", "ws_1")

	require.ErrorIs(t, err, errMissingIDs)
	assert.Empty(t, f.markedIDs())
}

func TestCommissions(t *testing.T) {
	f, url := setupEnv(t)
	args := []string{"commissions", "--api-url", url, "--workspace", "ws_1", "--program", "prog_1"}

	out, err := run(t, "", args...)
	require.NoError(t, err)

	assert.Contains(t, out, "$1,234.50")
	assert.Contains(t, out, "3 ")
	assert.Contains(t, out, "Pending")
	assert.Less(t, strings.Index(out, "cm_new"), strings.Index(out, "cm_old"), "newest first")

	_, err = run(t, "", args...)
	require.NoError(t, err)
	assert.Equal(t, 1, f.listCalls, "second run is served from the cache")

	_, err = run(t, "", append(args, "--refresh")...)
	require.NoError(t, err)
	assert.Equal(t, 2, f.listCalls)
}

func TestConfirm(t *testing.T) {
	var out bytes.Buffer

	for input, want := range map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false, "sure\n": false} {
		ok, err := confirm(strings.NewReader(input), &out, "Continue?")
		require.NoError(t, err)
		assert.Equal(t, want, ok, input)
	}

	assert.Contains(t, out.String(), "Continue? [y/N]")
}
