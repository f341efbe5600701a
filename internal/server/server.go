package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/armory/internal/character"
	"github.com/osse101/armory/internal/handler"
	"github.com/osse101/armory/internal/logger"
	"github.com/osse101/armory/internal/metrics"
	"github.com/osse101/armory/internal/repository"
	"github.com/osse101/armory/internal/scanner"
)

// Config holds the HTTP surface settings
type Config struct {
	Port             int
	Version          string
	TrustedProxies   []string
	MaxBodyBytes     int64
	MaxUploadBytes   int64
	QRSize           int
	ReceiveRateLimit float64
	ReceiveBurst     int
}

// Dependencies are the services the routes call into
type Dependencies struct {
	Characters character.Service
	Catalog    handler.CatalogReader
	Payloads   handler.PayloadValidator
	Scans      *scanner.Manager
	Store      repository.Pinger
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(cfg Config, deps Dependencies) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           NewRouter(cfg, deps),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter builds the full route tree
func NewRouter(cfg Config, deps Dependencies) http.Handler {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}

	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(SecurityHeadersMiddleware())
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.Store))
	r.Get("/version", handler.HandleVersion(cfg.Version))
	r.Handle("/metrics", promhttp.Handler())

	characters := handler.NewCharacterHandlers(deps.Characters)
	sharing := handler.NewShareHandlers(deps.Characters, deps.Payloads, deps.Scans, handler.ShareConfig{
		QRSize:         cfg.QRSize,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})
	receiveLimiter := NewClientRateLimiter(cfg.ReceiveRateLimit, cfg.ReceiveBurst, cfg.TrustedProxies)

	r.Route("/api/v1", func(r chi.Router) {
		limitBody := RequestSizeLimitMiddleware(cfg.MaxBodyBytes)

		r.Get("/catalog", handler.HandleGetCatalog(deps.Catalog))
		r.Get("/share/qr", sharing.HandleRenderQR())

		r.Route("/characters", func(r chi.Router) {
			r.Get("/", characters.HandleList())
			r.With(limitBody).Post("/", characters.HandleCreate())

			r.Route("/{name}", func(r chi.Router) {
				// JSON endpoints
				r.Group(func(r chi.Router) {
					r.Use(limitBody)

					r.Get("/", characters.HandleGet())
					r.Patch("/", characters.HandlePatch())
					r.Delete("/", characters.HandleDelete())

					r.Post("/damage", characters.HandleDamage())
					r.Post("/heal", characters.HandleHeal())
					r.Post("/kill", characters.HandleKill())

					r.Route("/loot", func(r chi.Router) {
						r.Post("/", characters.HandleGenerateLoot())
						r.Get("/", characters.HandlePeekLoot())
						r.Delete("/", characters.HandleDiscardLoot())
						r.Post("/accept", characters.HandleAcceptLoot())
						r.Post("/share", sharing.HandleShareLoot())
					})

					r.Route("/weapons/{id}", func(r chi.Router) {
						r.Delete("/", characters.HandleRemoveWeapon())
						r.Post("/equip", characters.HandleEquip())
						r.Post("/unequip", characters.HandleUnequip())
						r.Post("/share", sharing.HandleShareWeapon())
					})

					r.With(receiveLimiter.Middleware).Post("/receive", sharing.HandleReceive())
				})

				// Uploads and the scan socket carry their own limits
				r.Group(func(r chi.Router) {
					r.Use(receiveLimiter.Middleware)

					r.Post("/receive/image", sharing.HandleReceiveImage())
					r.Get("/scan", sharing.HandleScan())
				})
			})
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Hijack lets the scan endpoint upgrade to a WebSocket through this wrapper
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	rw.statusCode = http.StatusSwitchingProtocols
	rw.written = true
	return h.Hijack()
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if slices.ContainsFunc(QuietPaths, func(p string) bool { return strings.HasPrefix(r.URL.Path, p) }) {
			next.ServeHTTP(w, r)
			return
		}

		// Reuse the caller's request ID so logs can be joined across services
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" || len(requestID) > 64 {
			requestID = logger.GenerateRequestID()
		}
		w.Header().Set(HeaderRequestID, requestID)

		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header, len(r.Header))
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAuthorization) || strings.EqualFold(k, HeaderCookie) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server. It returns http.ErrServerClosed after Stop.
func (s *Server) Start() error {
	logger.Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
