package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"accessdesk/internal/platform/config"
	"accessdesk/internal/platform/httpserver"
	"accessdesk/internal/platform/logger"
	"accessdesk/pkg/middleware/requestid"
)

// main runs the edge reverse proxy. Log queries route to the reporting
// deployment, everything else under /api/v1 to the access service. The proxy
// stamps a request ID so both upstreams share one trace handle per request.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.GatewayFromEnv()
	log := logger.New()

	logsProxy, err := newProxy(cfg.LogsURL)
	if err != nil {
		log.Error("invalid logs upstream", "url", cfg.LogsURL, "error", err)
		os.Exit(1)
	}
	appProxy, err := newProxy(cfg.AppURL)
	if err != nil {
		log.Error("invalid app upstream", "url", cfg.AppURL, "error", err)
		os.Exit(1)
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(requestid.RequestID)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/api/v1/logs", logsProxy)
	r.Handle("/api/v1/logs/*", logsProxy)
	r.Handle("/api/v1/*", appProxy)

	srv := httpserver.New(cfg.Addr, r)

	go func() {
		log.Info("starting gateway", "addr", cfg.Addr,
			"logs_upstream", cfg.LogsURL, "app_upstream", cfg.AppURL)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Error("gateway error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

func newProxy(upstream string) (*httputil.ReverseProxy, error) {
	target, err := url.Parse(upstream)
	if err != nil {
		return nil, err
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, errors.New("upstream must be an absolute URL")
	}

	proxy := httputil.NewSingleHostReverseProxy(target)
	director := proxy.Director
	proxy.Director = func(r *http.Request) {
		director(r)
		r.Host = target.Host
		// Upstreams see the original client, not the proxy.
		if ip := clientIP(r); ip != "" {
			prior := r.Header.Get("X-Forwarded-For")
			if prior != "" {
				r.Header.Set("X-Forwarded-For", prior+", "+ip)
			} else {
				r.Header.Set("X-Forwarded-For", ip)
			}
		}
	}
	return proxy, nil
}

func clientIP(r *http.Request) string {
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i >= 0 {
		host = host[:i]
	}
	return strings.Trim(host, "[]")
}
