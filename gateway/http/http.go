// Package http is the HTTP+JSON surface over the Reactive Store: read
// the current layout, read a single person, push a mutation, and
// subscribe to live updates over a websocket. Grounded on the teacher's
// gateway/http package — request-id tagging, a request-size limit, CORS,
// and a uniform JSON error envelope — with the NATS request/reply body
// swapped for direct, in-process calls onto package store and editops
// (this gateway has no message bus to cross).
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	famerrors "github.com/chris-hammersley/family-chart/errors"
	"github.com/chris-hammersley/family-chart/layout"
	"github.com/chris-hammersley/family-chart/metrics"
	"github.com/chris-hammersley/family-chart/persistence"
	"github.com/chris-hammersley/family-chart/store"
)

// maxRequestSize bounds a mutation body, mirroring the teacher's
// per-route MaxRequestSize guard.
const maxRequestSize = 1 << 20 // 1MiB

var errMethodNotAllowed = errors.New("method not allowed")

// defaultMutateRate caps mutations at 50/sec with a burst of 10,
// mirroring the teacher's query-limiter sizing for its more expensive
// routes.
const defaultMutateRate = 50

// Gateway wires the store and editops package to HTTP handlers.
type Gateway struct {
	store       *store.Store
	metrics     *metrics.Recorder
	hub         *hub
	persistence persistence.Adapter

	mutateLimiter *rate.Limiter

	corsOrigins []string

	requestsTotal  atomic.Uint64
	requestsFailed atomic.Uint64
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithCORS allows the given origins (or "*" for any) on every route.
func WithCORS(origins ...string) Option {
	return func(g *Gateway) { g.corsOrigins = origins }
}

// WithMetrics records request counts against rec.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(g *Gateway) { g.metrics = rec }
}

// WithPersistence makes the gateway push every successful mutation
// through a, the wrapper-side pull the persistence package documents.
// A nil adapter (the default) makes the gateway in-memory only.
func WithPersistence(a persistence.Adapter) Option {
	return func(g *Gateway) { g.persistence = a }
}

// WithMutateRateLimit overrides the default mutation rate limit of
// defaultMutateRate requests/sec with the given burst.
func WithMutateRateLimit(perSecond rate.Limit, burst int) Option {
	return func(g *Gateway) { g.mutateLimiter = rate.NewLimiter(perSecond, burst) }
}

// New builds a Gateway over s. Pass the returned Gateway's Broadcast
// method as s's onUpdate subscriber (via store.New) so websocket clients
// receive every layout recomputation.
func New(s *store.Store, opts ...Option) *Gateway {
	g := &Gateway{store: s, hub: newHub(), mutateLimiter: rate.NewLimiter(rate.Limit(defaultMutateRate), 10)}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// RegisterRoutes attaches this gateway's handlers to mux under prefix.
func (g *Gateway) RegisterRoutes(prefix string, mux *http.ServeMux) {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	mux.HandleFunc(prefix+"layout", g.wrap(g.handleLayout))
	mux.HandleFunc(prefix+"person", g.wrap(g.handlePerson))
	mux.HandleFunc(prefix+"mutate", g.wrap(g.handleMutate))
	mux.HandleFunc(prefix+"ws", g.handleWS)
}

// Broadcast forwards a layout result to every connected websocket client.
// Its signature matches store.UpdateFunc — pass it as the onUpdate
// argument to store.New/NewWithMetrics.
func (g *Gateway) Broadcast(result *layout.Result, props store.UpdateProps) {
	g.hub.broadcast(result, props)
}

// Stats reports the request counters accumulated since the gateway was
// created.
func (g *Gateway) Stats() (total, failed uint64) {
	return g.requestsTotal.Load(), g.requestsFailed.Load()
}

// wrap applies request-id tagging, the size limit, CORS, and request
// accounting shared by every route, the way the teacher's
// createRouteHandler does for NATS-backed routes.
func (g *Gateway) wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := requestID(r)
		w.Header().Set("X-Request-ID", reqID)
		g.requestsTotal.Add(1)

		if len(g.corsOrigins) > 0 {
			g.applyCORS(w, r)
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)
		next(w, r)
	}
}

func (g *Gateway) applyCORS(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	allowed := false
	for _, o := range g.corsOrigins {
		if o == "*" || o == origin {
			allowed = true
			break
		}
	}
	if !allowed {
		return
	}
	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
	} else {
		w.Header().Set("Access-Control-Allow-Origin", "*")
	}
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func requestID(r *http.Request) string {
	if id := r.Header.Get("X-Request-ID"); id != "" {
		return id
	}
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("req-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

// handleLayout serves GET /layout?main=<id>: moves focus to main if
// given and resolvable, then returns the current layout result,
// computing it first if the store has none yet.
func (g *Gateway) handleLayout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		g.writeError(w, http.StatusMethodNotAllowed, errMethodNotAllowed)
		return
	}
	if main := r.URL.Query().Get("main"); main != "" && main != g.store.MainID() {
		if err := g.store.UpdateMainID(main); err != nil {
			g.writeError(w, g.statusFor(err), err)
			return
		}
		g.store.UpdateTree(store.UpdateProps{})
	}
	if g.store.GetTree() == nil {
		g.store.UpdateTree(store.UpdateProps{})
	}
	g.writeJSON(w, http.StatusOK, g.store.GetTree())
}

// handlePerson serves GET /person?id=<id>.
func (g *Gateway) handlePerson(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		g.writeError(w, http.StatusMethodNotAllowed, errMethodNotAllowed)
		return
	}
	id := r.URL.Query().Get("id")
	p := g.store.GetDatum(id)
	if p == nil {
		g.writeError(w, http.StatusNotFound, famerrors.WrapReference(famerrors.ErrPersonNotFound, "gateway", "handlePerson", id))
		return
	}
	g.writeJSON(w, http.StatusOK, p)
}

// handleMutate serves POST /mutate: decode, dispatch, recompute, report
// the fresh layout back.
func (g *Gateway) handleMutate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		g.writeError(w, http.StatusMethodNotAllowed, errMethodNotAllowed)
		return
	}
	if !g.mutateLimiter.Allow() {
		err := famerrors.WrapRateLimited(famerrors.ErrRateLimited, "gateway", "handleMutate", "mutation rate limit exceeded")
		g.requestsFailed.Add(1)
		g.writeError(w, g.statusFor(err), err)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		g.writeError(w, http.StatusBadRequest, famerrors.Wrap(err, "gateway", "handleMutate", "read body"))
		return
	}

	var req MutateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		g.writeError(w, http.StatusBadRequest, famerrors.Wrap(err, "gateway", "handleMutate", "decode request"))
		return
	}

	if err := dispatch(g.store, req); err != nil {
		g.metrics.ObserveEditOp(req.Op, err)
		g.requestsFailed.Add(1)
		g.writeError(w, g.statusFor(err), err)
		return
	}
	g.metrics.ObserveEditOp(req.Op, nil)
	g.persist(r.Context(), req)

	g.store.UpdateTree(store.UpdateProps{})
	g.writeJSON(w, http.StatusOK, g.store.GetTree())
}

// persist pushes the outcome of a successful dispatch to the
// configured adapter, if any. A delete that removed the person drops
// her id; then, since any op may have touched more than one person (a
// new spouse placeholder, a cascaded reciprocal link, a demotion to
// unknown), it resyncs the whole graph rather than trying to track
// which ids changed.
func (g *Gateway) persist(ctx context.Context, req MutateRequest) {
	if g.persistence == nil {
		return
	}
	var err error
	if req.Op == OpDeletePerson && !g.store.GetData().Has(req.ID) {
		err = g.persistence.DeletePerson(ctx, req.ID)
	}
	if err == nil {
		err = persistence.SyncGraph(ctx, g.persistence, g.store.GetData())
	}
	if err != nil {
		g.metrics.ObserveStoreError("persistence")
	}
}

// statusFor maps the error classification of package errors onto an
// HTTP status, the way the teacher's mapErrorToHTTPStatus does for its
// own error classes.
func (g *Gateway) statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case famerrors.IsRateLimited(err):
		return http.StatusTooManyRequests
	case famerrors.IsInvariant(err):
		return http.StatusConflict
	case famerrors.IsReference(err):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

func (g *Gateway) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError counts the request as failed and sends the JSON error
// envelope.
func (g *Gateway) writeError(w http.ResponseWriter, status int, err error) {
	g.requestsFailed.Add(1)
	g.writeJSON(w, status, map[string]string{"error": err.Error()})
}
