// Command demo runs a small web server that tracks per-session visit
// counts, wiring together the durable store, identity generator, cookie
// binder, and middleware stack.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/currykit/websession/core/config"
	"github.com/currykit/websession/core/durable"
	"github.com/currykit/websession/core/identity"
	"github.com/currykit/websession/core/sessionstore"
	"github.com/currykit/websession/core/sessiontransport"
	redisdb "github.com/currykit/websession/integration/database/redis"
	"github.com/currykit/websession/middleware"
	"github.com/currykit/websession/pkg/logger"
)

type serverConfig struct {
	Addr    string `env:"HTTP_ADDR" envDefault:":8080"`
	DataDir string `env:"SESSION_DATA_DIR" envDefault:".sessiondata"`
	Backend string `env:"SESSION_BACKEND" envDefault:"fs"` // fs or redis
}

func main() {
	log := logger.New("demo")
	if err := run(log); err != nil {
		log.Error("server failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var srvCfg serverConfig
	config.MustLoad(&srvCfg)
	var transportCfg sessiontransport.Config
	config.MustLoad(&transportCfg)

	store, err := buildStore(ctx, srvCfg)
	if err != nil {
		return err
	}

	gen := identity.NewGenerator(store)
	binder := sessiontransport.NewBinderFromConfig(transportCfg, gen)
	visits := sessionstore.New(store, "visits", 0,
		sessionstore.WithLifespan(transportCfg.Lifespan),
	)

	mux := http.NewServeMux()
	mux.Handle("/", visitHandler(visits, log))

	// The profile page depends on session continuity, so first-time
	// visitors get the cookie notice instead.
	profile := middleware.RequireSessionCookie(binder)(profileHandler(visits))
	mux.Handle("/profile", profile)

	handler := middleware.RequestID()(
		middleware.Session(binder)(
			middleware.Logging(log)(mux),
		),
	)

	srv := &http.Server{
		Addr:              srvCfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("listening", slog.String("addr", srvCfg.Addr), slog.String("backend", srvCfg.Backend))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}

func buildStore(ctx context.Context, cfg serverConfig) (durable.Store, error) {
	switch cfg.Backend {
	case "redis":
		var redisCfg redisdb.Config
		config.MustLoad(&redisCfg)
		client, err := redisdb.Connect(ctx, redisCfg)
		if err != nil {
			return nil, err
		}
		return redisdb.NewStore(client, "websession"), nil
	default:
		return durable.NewFS(cfg.DataDir)
	}
}

func visitHandler(visits *sessionstore.Store[int], log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		sid, ok := middleware.GetSessionID(r.Context())
		if !ok {
			http.Error(w, "no session", http.StatusInternalServerError)
			return
		}

		if err := visits.Modify(r.Context(), sid, func(n int) int { return n + 1 }); err != nil {
			log.Error("visit update failed", logger.Error(err), logger.SessionID(sid))
			http.Error(w, "storage unavailable", http.StatusInternalServerError)
			return
		}

		count, err := visits.GetOrDefault(r.Context(), sid)
		if err != nil {
			http.Error(w, "storage unavailable", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintf(w, "you have visited %d time(s) this session\n", count)
	})
}

func profileHandler(visits *sessionstore.Store[int]) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid, _ := middleware.GetSessionID(r.Context())
		count, err := visits.GetOrDefault(r.Context(), sid)
		if err != nil {
			http.Error(w, "storage unavailable", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintf(w, "session %s\nvisits %d\n", sid, count)
	})
}
