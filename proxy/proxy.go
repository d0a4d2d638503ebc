// Package proxy is the development reverse proxy that forwards API calls
// from the frontend dev server to the backend, with the API prefix removed.
package proxy

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gerunddev/repolens/logging"
	"golang.org/x/sync/errgroup"
)

// Options configures the proxy.
type Options struct {
	// Prefix is the path prefix that is forwarded and stripped, e.g. "/api".
	Prefix string
	// Backend is the base URL requests are sent to.
	Backend string
	// Transport overrides the round tripper used for backend requests.
	Transport http.RoundTripper
}

// ErrInvalidOptions is returned by New for an unusable prefix or backend.
var ErrInvalidOptions = errors.New("invalid proxy options")

// New returns a handler forwarding every path that starts with Prefix to
// the backend with the prefix cut off, so "/apix" arrives as "/x". Other
// paths get 404. The Host header is rewritten to the backend's host.
func New(opts Options) (http.Handler, error) {
	prefix := strings.TrimRight(opts.Prefix, "/")
	if prefix == "" || !strings.HasPrefix(prefix, "/") {
		return nil, fmt.Errorf("%w: prefix %q must start with / and not be the root", ErrInvalidOptions, opts.Prefix)
	}

	target, err := url.Parse(opts.Backend)
	if err != nil {
		return nil, fmt.Errorf("%w: backend: %v", ErrInvalidOptions, err)
	}
	if (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
		return nil, fmt.Errorf("%w: backend %q must be an http(s) URL", ErrInvalidOptions, opts.Backend)
	}

	rp := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		Transport: opts.Transport,
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logging.Warn("backend request failed", "path", r.URL.Path, "error", err)
			http.Error(w, "backend unavailable", http.StatusBadGateway)
		},
	}

	forward := stripPrefix(prefix, rp)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer, requestLog)
	r.Handle("/*", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if !strings.HasPrefix(req.URL.Path, prefix) {
			http.NotFound(w, req)
			return
		}
		forward.ServeHTTP(w, req)
	}))

	return r, nil
}

// stripPrefix removes prefix from the path. The result always starts with
// a slash, so the bare prefix maps to "/".
func stripPrefix(prefix string, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r2 := r.Clone(r.Context())
		r2.URL.Path = rooted(strings.TrimPrefix(r.URL.Path, prefix))
		if r.URL.RawPath != "" {
			r2.URL.RawPath = rooted(strings.TrimPrefix(r.URL.RawPath, prefix))
		}
		h.ServeHTTP(w, r2)
	})
}

func rooted(p string) string {
	if !strings.HasPrefix(p, "/") {
		return "/" + p
	}
	return p
}

func requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logging.Debug("proxy request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

// Serve listens on addr and serves h until ctx is cancelled.
func Serve(ctx context.Context, addr string, h http.Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return ServeListener(ctx, ln, h)
}

// ServeListener serves h on ln until ctx is cancelled, then shuts down
// gracefully.
func ServeListener(ctx context.Context, ln net.Listener, h http.Handler) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: h,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	logging.Info("proxy listening", "addr", ln.Addr().String())

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		logging.Debug("shutting down proxy")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
