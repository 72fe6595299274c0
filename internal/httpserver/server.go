// internal/httpserver/server.go
//
// HTTP server wiring for the Enigma backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/metrics", "/wiring".
//   - Machine endpoints (optional auth): mounted under /machine.
//   - Auth + history endpoints: /auth/*, /stats/me, /machines/mine.
//
// Notes:
//   - The cipher core never sees HTTP; handlers call the session layer and
//     render its results.
//   - Optional auth decorates requests with user context when a valid token is
//     present; routes can still run for guests, who get an anonymous cookie.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/robalobadob/enigma/internal/auth"
	"github.com/robalobadob/enigma/internal/enigma"
	"github.com/robalobadob/enigma/internal/history"
	"github.com/robalobadob/enigma/internal/metrics"
	"github.com/robalobadob/enigma/internal/store"
)

// Options bundles the server's collaborators.
type Options struct {
	Store   store.Store
	DB      *sql.DB
	Wiring  *enigma.Wiring
	Metrics *metrics.Collector
	Clock   clockwork.Clock // defaults to the real clock
}

// Server bundles router, session store, and DB-backed stores.
type Server struct {
	r        *chi.Mux
	store    store.Store
	users    *auth.Users
	history  *history.Store
	wiring   *enigma.Wiring
	metrics  *metrics.Collector
	clock    clockwork.Clock
	validate *validator.Validate
	env      settings
}

// settings are the environment knobs of the HTTP layer, read once in New.
type settings struct {
	clientOrigin  string           // CLIENT_ORIGIN, the browser front end
	cookieName    string           // COOKIE_NAME, holds the auth token
	secureCookies bool             // NODE_ENV=production
	tokens        auth.TokenConfig // JWT_SECRET, JWT_EXPIRES_DAYS
}

func settingsFromEnv() settings {
	days := 14
	if n, err := strconv.Atoi(os.Getenv("JWT_EXPIRES_DAYS")); err == nil && n > 0 {
		days = n
	}
	return settings{
		clientOrigin:  envOr("CLIENT_ORIGIN", "http://localhost:5173"),
		cookieName:    envOr("COOKIE_NAME", "enigma_token"),
		secureCookies: os.Getenv("NODE_ENV") == "production",
		tokens: auth.TokenConfig{
			Secret:  envOr("JWT_SECRET", "dev_secret_change_me"),
			Expires: time.Duration(days) * 24 * time.Hour,
		},
	}
}

// cookie fills in the attributes shared by the auth and guest cookies.
// Secure cookies need SameSite=None so the front end can send them cross-site.
func (e settings) cookie(name, value string, expires time.Time) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Expires:  expires,
		SameSite: http.SameSiteLaxMode,
	}
	if e.secureCookies {
		c.Secure, c.SameSite = true, http.SameSiteNoneMode
	}
	return c
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	mc := opts.Metrics
	if mc == nil {
		mc = metrics.New()
	}
	s := &Server{
		r:        chi.NewRouter(),
		store:    opts.Store,
		users:    auth.NewUsers(opts.DB),
		history:  history.NewStore(opts.DB),
		wiring:   opts.Wiring,
		metrics:  mc,
		clock:    clock,
		validate: validator.New(),
		env:      settingsFromEnv(),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonByDefault)                   // every route but /metrics speaks JSON
	s.r.Use(frontEndCORS(s.env.clientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"enigma-go","endpoints":["/health","/wiring","POST /machine/new","POST /machine/{id}/press","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Handle("/metrics", promhttp.HandlerFor(s.metrics.GetRegistry(), promhttp.HandlerOpts{}))
	s.r.Get("/wiring", s.handleWiring)

	// Machine endpoints: OPTIONAL AUTH (guests can play)
	s.mountMachine(s.r.With(s.withOptionalAuth()))

	// Auth + history
	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonByDefault marks responses as JSON. promhttp replaces the header with
// the exposition format on /metrics.
func jsonByDefault(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// frontEndCORS lets the keyboard/lampboard front end at origin call the API
// with its cookies. DELETE is listed for switching a machine off.
// Preflight requests stop here with 204.
func frontEndCORS(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Vary", "Origin")
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ctxUserKey is the context key type for storing the authenticated user.
type ctxUserKey struct{}

func currentUser(r *http.Request) *auth.Claims {
	me, _ := r.Context().Value(ctxUserKey{}).(*auth.Claims)
	return me
}

// authenticate resolves the request's token to an existing user.
func (s *Server) authenticate(r *http.Request) (*auth.Claims, error) {
	tok := s.token(r)
	if tok == "" {
		return nil, auth.ErrInvalidToken
	}
	claims, err := auth.Parse(s.env.tokens, tok, s.clock.Now())
	if err != nil {
		return nil, err
	}
	// Ensure user still exists
	if _, err := s.users.FindByID(r.Context(), claims.ID); err != nil {
		return nil, auth.ErrInvalidToken
	}
	return &claims, nil
}

// withOptionalAuth decorates requests with user context if a valid JWT is present.
// It never 401s; used for routes where guests are allowed.
func (s *Server) withOptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if me, err := s.authenticate(r); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), ctxUserKey{}, me))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requireAuth enforces a valid JWT and injects the user into request context.
func (s *Server) requireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s.token(r) == "" {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			me, err := s.authenticate(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxUserKey{}, me)))
		})
	}
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decode reads a JSON body into v and runs struct validation.
func (s *Server) decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return s.validate.Struct(v)
}

// token returns the JWT sent by the caller. An Authorization: Bearer header
// (used by scripts and the CLI) wins over the browser's auth cookie.
func (s *Server) token(r *http.Request) string {
	if scheme, tok, ok := strings.Cut(r.Header.Get("Authorization"), " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(tok)
	}
	if c, err := r.Cookie(s.env.cookieName); err == nil {
		return c.Value
	}
	return ""
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
