package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/okian/moonsurvival/internal/adapters/idempotency"
	"github.com/okian/moonsurvival/pkg/logger"
	"github.com/okian/moonsurvival/pkg/metrics"
)

// HTTP status code constants.
const (
	statusBadRequest      = 400
	statusNotFound        = 404
	statusTooManyRequests = 429
	statusInternalError   = 500
)

// Header names.
const (
	RequestIDHeader      = "X-Request-ID"
	IdempotencyKeyHeader = "Idempotency-Key"
	ReplayedHeader       = "Idempotent-Replayed"
)

const maxRequestIDLength = 128

// MetricsMiddleware wraps HTTP handlers to record Prometheus metrics.
func MetricsMiddleware(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		durationMs := float64(time.Since(start).Microseconds()) / 1000
		statusCodeStr := strconv.Itoa(wrapped.statusCode)

		metrics.RecordHTTPRequest(endpoint, r.Method, statusCodeStr)
		metrics.RecordHTTPRequestDuration(endpoint, r.Method, statusCodeStr, durationMs)

		if wrapped.statusCode >= statusBadRequest {
			errorType := getErrorType(wrapped.statusCode)
			metrics.RecordErrorByEndpoint(endpoint, r.Method, errorType)
			metrics.RecordErrorByType(errorType, getErrorSeverity(wrapped.statusCode))
		}
	}
}

// RequestID propagates X-Request-ID, generating a UUID when the client did
// not send a usable one, and stores it in the request context for logging.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logger.WithRequestID(r.Context(), id)))
	})
}

// Tracing wraps next in an OpenTelemetry server span named "METHOD /path".
func Tracing(serviceName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, serviceName,
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	}
}

// Instrument applies request-id and tracing middleware to a whole handler tree.
func Instrument(serviceName string, next http.Handler) http.Handler {
	return RequestID(Tracing(serviceName)(next))
}

// Idempotent replays the first successful response for a repeated
// Idempotency-Key. Keys are scoped to method and path, and a key reused with
// a different body is refused with 422. Requests without the header pass
// through untouched.
func Idempotent(store ResponseStore, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(IdempotencyKeyHeader)
		if store == nil || key == "" || r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}
		if err := idempotency.ValidateKey(key); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_idempotency_key", err)
			return
		}

		raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", WrapKind("idempotent", ErrBadRequest, err))
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(raw))
		hash := idempotency.HashRequest(raw)

		ctx := r.Context()
		scoped := idempotency.ScopedKey(r.Method, r.URL.Path, key)
		if resp, ok := store.LookupResponse(ctx, scoped); ok {
			if resp.RequestHash != hash {
				writeError(w, http.StatusUnprocessableEntity, "idempotency_key_reused", ErrKeyReused)
				return
			}
			for k, v := range resp.Header {
				w.Header()[k] = v
			}
			w.Header().Set(ReplayedHeader, "true")
			w.WriteHeader(resp.Status)
			_, _ = w.Write(resp.Body)
			return
		}

		capture := &captureWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(capture, r)

		if capture.statusCode >= 200 && capture.statusCode < 300 {
			store.SaveResponse(ctx, scoped, idempotency.Response{
				Status:      capture.statusCode,
				Header:      http.Header{"Content-Type": []string{capture.Header().Get("Content-Type")}},
				Body:        capture.body.Bytes(),
				RequestHash: hash,
			})
		}
	}
}

// getErrorType returns a standardized error type based on HTTP status code.
func getErrorType(statusCode int) string {
	switch {
	case statusCode >= statusInternalError:
		return "server_error"
	case statusCode == statusTooManyRequests:
		return "rate_limit"
	case statusCode == statusNotFound:
		return "not_found"
	case statusCode >= statusBadRequest:
		return "client_error"
	default:
		return "unknown"
	}
}

// getErrorSeverity returns error severity based on HTTP status code.
func getErrorSeverity(statusCode int) string {
	switch {
	case statusCode >= statusInternalError:
		return "high"
	case statusCode >= statusBadRequest:
		return "medium"
	default:
		return "low"
	}
}

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	if err != nil {
		return n, fmt.Errorf("failed to write response: %w", err)
	}
	return n, nil
}

// captureWriter records status and body while writing through.
type captureWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
	body        bytes.Buffer
}

func (cw *captureWriter) WriteHeader(code int) {
	if !cw.wroteHeader {
		cw.statusCode = code
		cw.wroteHeader = true
	}
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.wroteHeader = true
	cw.body.Write(b)
	return cw.ResponseWriter.Write(b)
}
