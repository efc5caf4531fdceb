// Package pprofserver exposes runtime profiles on a side listener.
package pprofserver

import (
	"context"
	"crypto/subtle"
	"errors"
	"net"
	"net/http"
	"net/http/pprof"
	"strings"
	"time"

	"cargo-platform-go/internal/config"
	"cargo-platform-go/internal/logx"
)

const realm = `Basic realm="pprof"`

// Server serves /debug/pprof on its own address, separate from the public API.
type Server struct {
	srv    *http.Server
	logger logx.Logger
}

// New returns nil when profiling is disabled or no address is configured.
func New(cfg config.PprofConfig, logger logx.Logger) *Server {
	if !cfg.Enabled || strings.TrimSpace(cfg.Addr) == "" {
		return nil
	}
	logger = logx.OrNop(logger)
	return &Server{
		srv: &http.Server{
			Addr:              cfg.Addr,
			Handler:           Handler(cfg, logger),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Start listens in the background. Listener failures are logged.
func (s *Server) Start() {
	if s == nil {
		return
	}
	go func() {
		s.logger.Info("pprof server started", logx.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("pprof server failed", logx.Err(err))
		}
	}()
}

// Shutdown stops the listener. It is safe on a nil Server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

// Handler returns the profile routes guarded by loopback or basic auth.
func Handler(cfg config.PprofConfig, logger logx.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)

	for _, name := range []string{"heap", "goroutine", "allocs", "block", "mutex", "threadcreate"} {
		mux.Handle("/debug/pprof/"+name, pprof.Handler(name))
	}
	logger = logx.OrNop(logger)
	return guard(mux, cfg.User, cfg.Pass, logger)
}

func guard(next http.Handler, user, pass string, logger logx.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isLoopback(r.RemoteAddr) {
			next.ServeHTTP(w, r)
			return
		}
		u, p, ok := r.BasicAuth()
		if user == "" || pass == "" || !ok || !secureEq(u, user) || !secureEq(p, pass) {
			logger.Warn("pprof access denied",
				logx.String("remote", r.RemoteAddr),
				logx.String("path", r.URL.Path),
			)
			w.Header().Set("WWW-Authenticate", realm)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func secureEq(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func isLoopback(remoteAddr string) bool {
	host := strings.TrimSpace(remoteAddr)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
