// Package status serves the controller state over HTTP.
package status

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"

	"github.com/oblq/fancontrol/internal/control"
	"github.com/oblq/fancontrol/internal/curve"
)

// Source is the loop being reported.
type Source interface {
	Stats() control.Stats
	Curve() curve.Curve
}

// Server is a control.Observer keeping the last tick for the status API.
type Server struct {
	runID  string
	source Source
	now    func() time.Time

	mutex   sync.RWMutex
	last    *control.Report
	updated time.Time

	httpServer *http.Server
}

type statusRsp struct {
	RunID   string          `json:"run_id"`
	Stats   control.Stats   `json:"stats"`
	Last    *control.Report `json:"last,omitempty"`
	Updated *time.Time      `json:"updated,omitempty"`
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func New(runID string) *Server {
	s := &Server{runID: runID, now: time.Now}
	s.httpServer = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	return s
}

// Attach sets the loop whose counters and curve are served.
func (s *Server) Attach(source Source) {
	s.source = source
}

func (s *Server) Observe(r control.Report) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.last = &r
	s.updated = s.now()
}

func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/api/status", s.status).Methods(http.MethodGet)
	r.HandleFunc("/api/curve", s.curve).Methods(http.MethodGet)
	r.HandleFunc("/api/curve/{temp:-?[0-9]+}", s.curveAt).Methods(http.MethodGet)
	r.HandleFunc("/api/resource", s.resource).Methods(http.MethodGet)
	return r
}

// ListenAndServe blocks until Shutdown is called or the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	if err := s.httpServer.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.httpServer.Shutdown(ctx)
}

func (s *Server) status(w http.ResponseWriter, _ *http.Request) {
	rsp := statusRsp{RunID: s.runID}
	if s.source != nil {
		rsp.Stats = s.source.Stats()
	}

	s.mutex.RLock()
	if s.last != nil {
		last, updated := *s.last, s.updated
		rsp.Last, rsp.Updated = &last, &updated
	}
	s.mutex.RUnlock()

	writeJSON(w, http.StatusOK, rsp)
}

func (s *Server) curve(w http.ResponseWriter, _ *http.Request) {
	if s.source == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no curve loaded"})
		return
	}
	writeJSON(w, http.StatusOK, s.source.Curve().Points())
}

// curveAt returns the raw target of the curve at the given temperature.
func (s *Server) curveAt(w http.ResponseWriter, r *http.Request) {
	if s.source == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no curve loaded"})
		return
	}

	temp, err := strconv.Atoi(mux.Vars(r)["temp"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, curve.Point{Temp: temp, Duty: s.source.Curve().Target(temp)})
}

func (s *Server) resource(w http.ResponseWriter, _ *http.Request) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	rsp := resourceRsp{}
	if rsp.CPUPercent, err = p.CPUPercent(); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	memory, err := p.MemoryInfo()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	rsp.MemorySize = memory.RSS

	writeJSON(w, http.StatusOK, rsp)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
