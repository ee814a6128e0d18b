package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pronte/setwalk/pkg/cache"
	"github.com/pronte/setwalk/pkg/graph"

	swerrors "github.com/pronte/setwalk/pkg/errors"
)

// serveOpts collects the flags of the serve command.
type serveOpts struct {
	addr      string
	backend   string
	redisAddr string
	redisDB   int
	mongoURI  string
	mongoDB   string
	cacheTTL  time.Duration
}

func newServeCmd() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose enumeration over an HTTP API",
		Long: `Serve starts an HTTP server with a single enumeration endpoint:

  POST /v1/enumerate   {"graph": {"size": N, "edges": [[u,v], ...]}, "limit": 0}

Results are cached by graph content; the cache backend is selectable
(file for single instances, redis or mongo for fleets).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.backend, "cache", "file", "cache backend: file, redis, mongo or none")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "localhost:6379", "redis address for --cache=redis")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "redis database for --cache=redis")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "mongodb://localhost:27017", "mongo URI for --cache=mongo")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", "setwalk", "mongo database for --cache=mongo")
	cmd.Flags().DurationVar(&opts.cacheTTL, "cache-ttl", 24*time.Hour, "result cache time-to-live")

	return cmd
}

// serveCache builds the configured cache backend.
func serveCache(ctx context.Context, opts *serveOpts, logger *charmlog.Logger) (cache.Cache, error) {
	switch opts.backend {
	case "none":
		return cache.NewNullCache(), nil
	case "file":
		dir, err := cacheDir()
		if err != nil {
			return nil, err
		}
		store, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "redis":
		logger.Debug("connecting to redis", "addr", opts.redisAddr)
		return cache.NewRedisCache(ctx, opts.redisAddr, "", opts.redisDB)
	case "mongo":
		logger.Debug("connecting to mongo", "uri", opts.mongoURI)
		return cache.NewMongoCache(ctx, opts.mongoURI, opts.mongoDB)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.backend)
	}
}

func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	store, err := serveCache(ctx, opts, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := &server{store: store, logger: logger, ttl: opts.cacheTTL}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(chimw.Recoverer)
	r.Get("/healthz", srv.health)
	r.Post("/v1/enumerate", srv.enumerate)

	httpServer := &http.Server{Addr: opts.addr, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", "addr", opts.addr, "cache", opts.backend)
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// requestID stamps every request with a UUID, echoed in the response
// and attached to log lines.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

const requestIDKey ctxKey = 1

type server struct {
	store  cache.Cache
	logger *charmlog.Logger
	ttl    time.Duration
}

// enumerateRequest is the body of POST /v1/enumerate.
type enumerateRequest struct {
	Graph json.RawMessage `json:"graph"`
	Limit int             `json:"limit"`
}

func (s *server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *server) enumerate(w http.ResponseWriter, r *http.Request) {
	var req enumerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, swerrors.Wrap(swerrors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	if req.Limit < 0 {
		s.writeError(w, http.StatusBadRequest, swerrors.New(swerrors.ErrCodeInvalidInput, "limit must be non-negative"))
		return
	}

	g, err := graph.Read(bytes.NewReader(req.Graph))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, swerrors.Wrap(swerrors.ErrCodeInvalidGraph, err, "decode graph"))
		return
	}

	canonical, err := graph.Marshal(g)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, swerrors.Wrap(swerrors.ErrCodeInternal, err, "canonicalize graph"))
		return
	}
	key := cache.ResultKey(cache.GraphHash(canonical), cache.ResultKeyOpts{Problem: "cliques", Limit: req.Limit})

	reqLogger := s.logger
	if id, ok := r.Context().Value(requestIDKey).(string); ok {
		reqLogger = s.logger.With("request", id)
	}

	if data, hit, err := s.store.Get(r.Context(), key); err == nil && hit {
		reqLogger.Debug("cache hit", "nodes", g.Size())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
		return
	}

	opts := &enumerateOpts{limit: req.Limit, problem: "cliques"}
	res, err := enumerateAll(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, swerrors.Wrap(swerrors.ErrCodeInternal, err, "enumerate"))
		return
	}
	reqLogger.Info("enumerated", "nodes", g.Size(), "solutions", res.Count)

	data, err := json.Marshal(res)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, swerrors.Wrap(swerrors.ErrCodeInternal, err, "encode result"))
		return
	}
	if err := s.store.Set(r.Context(), key, data, s.ttl); err != nil {
		reqLogger.Warn("cache write failed", "err", err)
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *server) writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Code:    string(swerrors.GetCode(err)),
		Message: swerrors.UserMessage(err),
	})
}
