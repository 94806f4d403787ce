// internal/rest/handlers_test.go
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"librarium/internal/catalog"
)

func newTestServer(t *testing.T) (*httptest.Server, catalog.Service) {
	t.Helper()
	svc := catalog.NewService()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(NewRouter(NewHandler(svc), log, nil))
	t.Cleanup(srv.Close)
	return srv, svc
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestItemAndLoanFlow(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/items", map[string]string{
		"id": "I1", "title": "Clean Code", "author": "Robert C. Martin", "category": "Eng",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp = doJSON(t, http.MethodPost, srv.URL+"/holders", map[string]string{
		"id": "U1", "name": "Marlon Avila",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/loans", map[string]string{
		"item_id": "I1", "holder_id": "U1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Removing a loaned item conflicts.
	resp = doJSON(t, http.MethodDelete, srv.URL+"/items/I1", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var errBody struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	assert.Contains(t, errBody.Error, "loaned")

	resp = doJSON(t, http.MethodGet, srv.URL+"/items/I1/holder", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var holderBody struct {
		Loaned bool           `json:"loaned"`
		Holder catalog.Holder `json:"holder"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&holderBody))
	assert.True(t, holderBody.Loaned)
	assert.Equal(t, "U1", holderBody.Holder.ID)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/loans/I1", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Double return is a conflict, not a no-op.
	resp = doJSON(t, http.MethodDelete, srv.URL+"/loans/I1", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/items/I1", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestStatusMapping(t *testing.T) {
	srv, svc := newTestServer(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "I1", "Clean Code", "Martin", "Eng")
	require.NoError(t, err)

	// 404 for unknown ids.
	resp := doJSON(t, http.MethodGet, srv.URL+"/items/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = doJSON(t, http.MethodDelete, srv.URL+"/holders/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// 409 for duplicates.
	resp = doJSON(t, http.MethodPost, srv.URL+"/items", map[string]string{"id": "I1", "title": "Again"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// 400 for construction failures.
	resp = doJSON(t, http.MethodPost, srv.URL+"/items", map[string]string{"id": "", "title": "X"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// 400 for malformed JSON.
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/items", bytes.NewBufferString("{broken"))
	require.NoError(t, err)
	raw, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer raw.Body.Close()
	assert.Equal(t, http.StatusBadRequest, raw.StatusCode)
}

func TestSearchEndpoint(t *testing.T) {
	srv, svc := newTestServer(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "I1", "Clean Code", "Robert C. Martin", "Eng")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "I2", "Cien años de soledad", "Gabriel García Márquez", "Novel")
	require.NoError(t, err)

	resp := doJSON(t, http.MethodGet, srv.URL+"/search?author=martin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var items []catalog.Item
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.Equal(t, "I1", items[0].ID)

	resp = doJSON(t, http.MethodGet, srv.URL+"/search?sort=id", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 2)
	assert.Equal(t, "I1", items[0].ID)
}

func TestSummaryEndpoint(t *testing.T) {
	srv, svc := newTestServer(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "I1", "Clean Code", "Martin", "Eng")
	require.NoError(t, err)
	_, err = svc.RegisterHolder(ctx, "U1", "Ana")
	require.NoError(t, err)

	resp := doJSON(t, http.MethodGet, srv.URL+"/summary", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summary catalog.Summary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	assert.Equal(t, catalog.Summary{Items: 1, Holders: 1, ActiveLoans: 0}, summary)
}

func TestRateLimitMiddleware(t *testing.T) {
	svc := catalog.NewService()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	limiter := rate.NewLimiter(rate.Limit(1), 1)
	srv := httptest.NewServer(NewRouter(NewHandler(svc), log, limiter))
	t.Cleanup(srv.Close)

	resp := doJSON(t, http.MethodGet, srv.URL+"/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/healthz", nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}
