package api

import (
	"net/http"
	"runtime"
	"strconv"
	"time"
)

// metricsMiddleware tracks HTTP request metrics
func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Track in-flight requests
		s.registry.HTTPRequestsInFlight.Inc()
		defer s.registry.HTTPRequestsInFlight.Dec()

		// Wrap the response writer to capture status code and size
		wrapper := &metricsResponseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapper, r)

		duration := time.Since(start)
		statusStr := strconv.Itoa(wrapper.statusCode)

		s.registry.RecordHTTPRequest(r.Method, r.URL.Path, statusStr, duration)
		s.registry.HTTPResponseSizeBytes.WithLabelValues(r.Method, r.URL.Path).Observe(float64(wrapper.bytesWritten))
	})
}

// metricsResponseWriter wraps http.ResponseWriter to capture status code and bytes written
type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (w *metricsResponseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *metricsResponseWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytesWritten += n
	return n, err
}

// updateMetricsPeriodically refreshes system and graph gauges every 10
// seconds until stop closes
func (s *Server) updateMetricsPeriodically(stop <-chan struct{}) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.refreshGauges()
		}
	}
}

// refreshGauges writes current runtime and graph sizes into the registry
func (s *Server) refreshGauges() {
	s.registry.UptimeSeconds.Set(time.Since(s.startTime).Seconds())
	s.registry.GoRoutines.Set(float64(runtime.NumGoroutine()))

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	s.registry.MemoryAllocBytes.Set(float64(m.Alloc))
	s.registry.MemorySysBytes.Set(float64(m.Sys))

	st := s.graph.GetStatistics()
	s.registry.SetGraphSize(st.NodeCount, st.DistinctNodeCount, st.EdgeCount)
}
