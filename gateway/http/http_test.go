package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	famerrors "github.com/chris-hammersley/family-chart/errors"
	"github.com/chris-hammersley/family-chart/layout"
	"github.com/chris-hammersley/family-chart/person"
	"github.com/chris-hammersley/family-chart/store"
)

func newTestGateway(t *testing.T) (*Gateway, *http.ServeMux) {
	t.Helper()
	g := person.NewGraph()
	g.Add(person.New("a"))
	g.Add(person.New("b"))

	s := store.New(g, "a", layout.DefaultConfig(), nil)
	gw := New(s)
	mux := http.NewServeMux()
	gw.RegisterRoutes("/", mux)
	return gw, mux
}

func TestRequestIDUsesExistingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/layout", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	assert.Equal(t, "fixed-id", requestID(req))
}

func TestRequestIDGeneratesWhenMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/layout", nil)
	id := requestID(req)
	assert.NotEmpty(t, id)
}

func TestHandleLayoutReturnsCurrentTree(t *testing.T) {
	_, mux := newTestGateway(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/layout", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var result layout.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "a", result.MainID)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestHandleLayoutMovesFocus(t *testing.T) {
	_, mux := newTestGateway(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/layout?main=b", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var result layout.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "b", result.MainID)
}

func TestHandleLayoutRejectsUnknownMain(t *testing.T) {
	_, mux := newTestGateway(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/layout?main=ghost", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleLayoutRejectsWrongMethod(t *testing.T) {
	_, mux := newTestGateway(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/layout", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandlePersonReturnsPerson(t *testing.T) {
	_, mux := newTestGateway(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/person?id=a", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var p person.Person
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "a", p.ID)
}

func TestHandlePersonUnknownIDReturnsNotFound(t *testing.T) {
	_, mux := newTestGateway(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/person?id=ghost", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatusForClassifiesErrors(t *testing.T) {
	gw := &Gateway{}

	assert.Equal(t, http.StatusConflict, gw.statusFor(famerrors.WrapInvariant(famerrors.ErrNoCandidate, "x", "y", "z")))
	assert.Equal(t, http.StatusNotFound, gw.statusFor(famerrors.WrapReference(famerrors.ErrPersonNotFound, "x", "y", "z")))
	assert.Equal(t, http.StatusBadRequest, gw.statusFor(famerrors.Wrap(famerrors.ErrPersonNotFound, "x", "y", "z")))
}

func TestWithCORSAllowsConfiguredOrigin(t *testing.T) {
	g := person.NewGraph()
	g.Add(person.New("a"))
	s := store.New(g, "a", layout.DefaultConfig(), nil)
	gw := New(s, WithCORS("https://example.com"))
	mux := http.NewServeMux()
	gw.RegisterRoutes("/", mux)

	req := httptest.NewRequest(http.MethodGet, "/layout", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestStatsTracksRequestsAndFailures(t *testing.T) {
	gw, mux := newTestGateway(t)

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/layout", nil))
	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/person?id=ghost", nil))

	total, failed := gw.Stats()
	assert.GreaterOrEqual(t, total, uint64(2))
	assert.GreaterOrEqual(t, failed, uint64(1))
}
