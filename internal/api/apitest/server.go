// Package apitest provides an in-memory store API for tests.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jacksmith/storectl/internal/model"
)

// Call records one request received by the server.
type Call struct {
	Method string
	Path   string
}

// Server is an httptest server speaking the /store API.
type Server struct {
	*httptest.Server

	mu     sync.Mutex
	stores map[string]model.Store
	nextID int
	calls  []Call
	failAt map[string]int // HTTP method -> status to return
}

// NewServer starts a server. Callers must Close it.
func NewServer() *Server {
	s := &Server{
		stores: make(map[string]model.Store),
		nextID: 1,
		failAt: make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// Seed inserts stores directly, bypassing the API.
func (s *Server) Seed(stores ...model.Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range stores {
		s.stores[st.ID] = st
		if n, err := strconv.Atoi(st.ID); err == nil && n >= s.nextID {
			s.nextID = n + 1
		}
	}
}

// Store returns the stored record for id.
func (s *Server) Store(id string) (model.Store, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.stores[id]
	return st, ok
}

// Fail makes every request with the given method return status.
func (s *Server) Fail(method string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAt[method] = status
}

// Calls returns the requests received so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CountCalls returns how many requests used method.
func (s *Server) CountCalls(method string) int {
	n := 0
	for _, c := range s.Calls() {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, Call{Method: r.Method, Path: r.URL.Path})

	if status, ok := s.failAt[r.Method]; ok {
		writeError(w, r, status, http.StatusText(status), "An unexpected error occurred")
		return
	}

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/store/createStore":
		s.create(w, r)
	case r.Method == http.MethodPut && r.URL.Path == "/store/updateStore":
		s.update(w, r)
	case r.Method == http.MethodGet && r.URL.Path == "/store/getAllStores":
		s.list(w)
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/store/"):
		s.get(w, r, strings.TrimPrefix(r.URL.Path, "/store/"))
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/store/"):
		s.delete(w, r, strings.TrimPrefix(r.URL.Path, "/store/"))
	default:
		writeError(w, r, http.StatusNotFound, "Not Found", "no route")
	}
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var d model.Draft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, r, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	if err := d.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	for _, st := range s.stores {
		if st.StoreName == d.StoreName && st.Address == d.Address {
			writeError(w, r, http.StatusConflict, "Conflict",
				fmt.Sprintf("Store with name '%s' and address '%s' already exists", d.StoreName, d.Address))
			return
		}
	}

	st := d.WithID(strconv.Itoa(s.nextID))
	s.nextID++
	s.stores[st.ID] = st
	writeJSON(w, http.StatusCreated, st)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request, id string) {
	st, ok := s.stores[id]
	if !ok {
		writeError(w, r, http.StatusNotFound, "Not Found", "Store not found with id: "+id)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	var st model.Store
	if err := json.NewDecoder(r.Body).Decode(&st); err != nil {
		writeError(w, r, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	if _, ok := s.stores[st.ID]; !ok {
		writeError(w, r, http.StatusNotFound, "Not Found", "Store not found with id: "+st.ID)
		return
	}
	if err := st.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	s.stores[st.ID] = st
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request, id string) {
	if _, ok := s.stores[id]; !ok {
		writeError(w, r, http.StatusNotFound, "Not Found", "Store not found with id: "+id)
		return
	}
	delete(s.stores, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) list(w http.ResponseWriter) {
	stores := make([]model.Store, 0, len(s.stores))
	for _, st := range s.stores {
		stores = append(stores, st)
	}
	sort.Slice(stores, func(i, j int) bool { return stores[i].ID < stores[j].ID })
	writeJSON(w, http.StatusOK, stores)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, errText, message string) {
	writeJSON(w, status, map[string]any{
		"timestamp": time.Now().Format(time.RFC3339),
		"status":    status,
		"error":     errText,
		"message":   message,
		"path":      r.URL.Path,
	})
}
