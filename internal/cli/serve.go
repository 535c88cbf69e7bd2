package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-nodeview/pkg/render"
)

const requestIDHeader = "X-Request-Id"

type serveOpts struct {
	addr  string
	watch bool
}

func newServeCmd(global *globalOpts) *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Preview nodes over HTTP",
		Long:  `Serve GET /view?node=<iri>&context=<ctx> and GET /renderers. Any other query parameter is passed to templates as an option.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), global)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				opts.addr = a.cfg.Serve.Addr
			}
			if !cmd.Flags().Changed("watch") {
				opts.watch = a.cfg.Serve.Watch
			}
			return runServe(cmd.Context(), a, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "reload templates when files in the search path change")

	return cmd
}

func runServe(ctx context.Context, a *app, opts serveOpts) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if opts.watch {
		go func() {
			err := a.engine.Watch(ctx, func(event fsnotify.Event) {
				a.logger.Info("templates changed", "file", event.Name, "op", event.Op.String())
			})
			if err != nil {
				a.logger.Error("template watch stopped", "err", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           newRouter(a),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("serving", "addr", opts.addr, "watch", opts.watch)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		return srv.Shutdown(shutdownCtx)
	}
}

func newRouter(a *app) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(a.logger))

	r.Get("/view", a.handleView)
	r.Get("/renderers", a.handleRenderers)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

// requestLogger tags every request with an id and logs it once served.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, id)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"id", id,
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"elapsed", time.Since(start).Round(time.Microsecond),
			)
		})
	}
}

func (a *app) handleView(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	extra := make(map[string]string, len(query))
	for key := range query {
		if key == "node" || key == render.KeyContext {
			continue
		}
		extra[key] = query.Get(key)
	}

	var opts render.Options
	if term := query.Get("node"); term != "" {
		node, err := a.node(term)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		opts = viewOptions(node, query.Get(render.KeyContext), extra)
	} else {
		opts = render.Options{}
		for key, value := range extra {
			opts[key] = value
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(a.renderer.View(opts)))
}

func (a *app) handleRenderers(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(describeRenderers(a.registry)); err != nil {
		a.logger.Error("encode renderers", "err", err)
	}
}
