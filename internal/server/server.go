package server

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Handler serves a single request, a non-nil error is reported as an internal error.
type Handler func(r *http.Request) (payload []byte, code int, err error)

// Route binds a handler to a path and an http method.
type Route struct {
	Path   string
	Method string
	Exec   Handler
}

// Server exposes the routes and the prometheus metrics over http.
// Requests are served one at a time, the object behind the routes is not safe for concurrent use.
type Server struct {
	name   string
	addr   string
	lock   *sync.Mutex
	routes []Route
}

// NewServer creates a server listening on the given address.
func NewServer(name string, addr string) *Server {
	return &Server{
		name:   name,
		addr:   addr,
		lock:   new(sync.Mutex),
		routes: make([]Route, 0),
	}
}

// Add adds the given routes to the server.
func (s *Server) Add(routes ...Route) *Server {
	s.routes = append(s.routes, routes...)
	return s
}

func (s *Server) serve(route Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != route.Method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		s.lock.Lock()
		defer s.lock.Unlock()
		start := time.Now()
		payload, code, err := route.Exec(r)
		log.Debug().
			Str("server", s.name).
			Str("method", r.Method).
			Str("path", route.Path).
			Int("code", code).
			Float64("duration", time.Since(start).Seconds()).
			Msg("served request")
		if err != nil {
			log.Error().Err(err).Str("path", route.Path).Msg("could not serve request")
			code = http.StatusInternalServerError
			payload = []byte(err.Error())
		}
		if code == 0 {
			code = http.StatusOK
		}
		w.WriteHeader(code)
		if _, err := w.Write(payload); err != nil {
			log.Error().Err(err).Msg("could not write response")
		}
	}
}

// Handler returns the http handler for all routes and the metrics.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	for _, route := range s.routes {
		mux.HandleFunc(route.Path, s.serve(route))
	}
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// Run starts the server, it blocks until the listener fails.
func (s *Server) Run() error {
	log.Info().Str("server", s.name).Str("addr", s.addr).Msg("starting server")
	if err := http.ListenAndServe(s.addr, s.Handler()); err != nil {
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}
