// Package web serves a read-only view of a built beans.Container over HTTP.
//
//	GET /healthz       200 once the container is built, 503 before
//	GET /beans         every bean in declaration order
//	GET /beans/{id}    one bean, 404 if it is not declared
//	GET /beans.dot     the dependency graph in Graphviz DOT format
//
// Example:
//
//	r := chi.NewRouter()
//	web.Mount(r, container, logger)
//	http.ListenAndServe(":8080", r)
package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/junioryono/beans"
	"github.com/sirupsen/logrus"
)

// Handler returns a router serving the inspection routes for c.
func Handler(c *beans.Container, logger logrus.FieldLogger) http.Handler {
	r := chi.NewRouter()
	Mount(r, c, logger)
	return r
}

// Mount installs the middleware and inspection routes on r.
func Mount(r chi.Router, c *beans.Container, logger logrus.FieldLogger) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	h := &handlers{container: c}

	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.health)
	r.Get("/beans", h.list)
	r.Get("/beans.dot", h.graph)
	r.Get("/beans/{id}", h.get)
}

// RequestLogger logs one line per request with a fresh request id.
func RequestLogger(logger logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.WithFields(logrus.Fields{
				"request_id": uuid.NewString(),
				"method":     r.Method,
				"path":       r.URL.Path,
				"remote":     r.RemoteAddr,
				"status":     ww.Status(),
				"bytes":      ww.BytesWritten(),
				"duration":   time.Since(start),
			}).Info("request served")
		})
	}
}

type handlers struct {
	container *beans.Container
}

type errorBody struct {
	Error     string   `json:"error"`
	Available []string `json:"available,omitempty"`
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	if !h.container.IsBuilt() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "building"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"container": h.container.ID(),
	})
}

func (h *handlers) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.container.Beans())
}

func (h *handlers) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	info, ok := h.container.Describe(id)
	if !ok {
		err := beans.ResolutionError{BeanID: id, Cause: beans.ErrBeanNotFound, Available: h.container.IDs()}
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error(), Available: err.Available})
		return
	}

	writeJSON(w, http.StatusOK, info)
}

func (h *handlers) graph(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.container.WriteDOT(&buf); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: err.Error()})
		return
	}

	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
