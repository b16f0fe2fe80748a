package api

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/andrescamacho/mbes-planner/internal/application/common"
	"github.com/andrescamacho/mbes-planner/internal/infrastructure/logging"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument attaches a request logger to the context and records the
// request in the API metrics
func (s *server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		route := routeTemplate(req)

		fields := log.Fields{
			"action": route,
		}
		if ip, err := getIP(req); err == nil {
			fields["IP"] = ip
		}
		requestLogger := logging.NewAdapter(s.logger, fields)
		ctx := common.WithLogger(req.Context(), requestLogger)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, req.WithContext(ctx))
		elapsed := time.Since(start)

		requestLogger.Log(common.LevelDebug, "request served", map[string]interface{}{
			"method":      req.Method,
			"status":      rec.status,
			"duration_ms": elapsed.Milliseconds(),
		})
		if s.apiMetrics != nil {
			s.apiMetrics.RecordAPIRequest(req.Method, route, rec.status, elapsed.Seconds())
		}
	})
}

// rateLimit rejects requests beyond the configured token bucket with 429
func (s *server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if !s.limiter.Allow() {
			if s.apiMetrics != nil {
				s.apiMetrics.RecordRateLimited(routeTemplate(req))
			}
			writeJSON(w, http.StatusTooManyRequests, errorBody{
				Kind:    kindRateLimited,
				Message: "too many requests",
			})
			return
		}
		next.ServeHTTP(w, req)
	})
}

func routeTemplate(req *http.Request) string {
	if route := mux.CurrentRoute(req); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return req.URL.Path
}

func getIP(r *http.Request) (string, error) {
	// Get IP from the X-REAL-IP header
	ip := r.Header.Get("X-REAL-IP")
	if net.ParseIP(ip) != nil {
		return ip, nil
	}

	// Get IP from X-FORWARDED-FOR header
	for _, ip := range strings.Split(r.Header.Get("X-FORWARDED-FOR"), ",") {
		ip = strings.TrimSpace(ip)
		if net.ParseIP(ip) != nil {
			return ip, nil
		}
	}

	// Get IP from RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "", err
	}
	return ip, nil
}
