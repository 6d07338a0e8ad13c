// Package servertest provides a fake custody API for tests: an HTTP server
// that records every request and answers from a queue or from routes
// registered on its chi router, plus a RoundTripper that does the same
// without opening a socket.
package servertest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/crmarques/bitgo/config"
)

const Token = "test-token"

// Request is one captured request.
type Request struct {
	Method string
	// URL is the request URL as the receiver saw it; on Server it has no
	// scheme or host.
	URL    string
	// Path excludes the query string.
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// JSON decodes the body into a generic object, keeping numbers as
// json.Number.
func (r Request) JSON() (map[string]any, error) {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return nil, nil
	}
	decoder := json.NewDecoder(bytes.NewReader(r.Body))
	decoder.UseNumber()

	var decoded map[string]any
	if err := decoder.Decode(&decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}

// Response is a canned answer. Body is JSON-encoded unless it is a string or
// []byte, which are sent verbatim.
type Response struct {
	Status int
	Body   any
}

func (r Response) write(w http.ResponseWriter) {
	status := r.Status
	if status == 0 {
		status = http.StatusOK
	}

	switch typed := r.Body.(type) {
	case nil:
		w.WriteHeader(status)
	case string:
		w.WriteHeader(status)
		_, _ = io.WriteString(w, typed)
	case []byte:
		w.WriteHeader(status)
		_, _ = w.Write(typed)
	default:
		JSON(w, status, typed)
	}
}

// JSON writes value as a JSON response.
func JSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if value == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(value)
}

// history is shared by Server and Recorder.
type history struct {
	mu       sync.Mutex
	requests []Request
	queue    []Response
}

func (h *history) record(request *http.Request) (Request, error) {
	var body []byte
	if request.Body != nil {
		read, err := io.ReadAll(request.Body)
		if err != nil {
			return Request{}, err
		}
		body = read
	}

	captured := Request{
		Method: request.Method,
		URL:    request.URL.String(),
		Path:   request.URL.Path,
		Query:  request.URL.Query(),
		Header: request.Header.Clone(),
		Body:   body,
	}

	h.mu.Lock()
	h.requests = append(h.requests, captured)
	h.mu.Unlock()
	return captured, nil
}

func (h *history) next() (Response, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.queue) == 0 {
		return Response{}, false
	}
	response := h.queue[0]
	h.queue = h.queue[1:]
	return response, true
}

func (h *history) Enqueue(responses ...Response) {
	h.mu.Lock()
	h.queue = append(h.queue, responses...)
	h.mu.Unlock()
}

func (h *history) Requests() []Request {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Request(nil), h.requests...)
}

func (h *history) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.requests)
}

// Last returns the most recent request; ok is false when none was made.
func (h *history) Last() (Request, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.requests) == 0 {
		return Request{}, false
	}
	return h.requests[len(h.requests)-1], true
}

// Server answers queued responses first, then routes registered on Router,
// then 200 with an empty object.
type Server struct {
	history
	Router *chi.Mux
	server *httptest.Server
}

// New starts a Server that is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{Router: chi.NewRouter()}
	s.Router.Use(chimw.Recoverer)
	s.Router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		JSON(w, http.StatusOK, map[string]any{})
	})

	s.server = httptest.NewServer(http.HandlerFunc(s.serveHTTP))
	t.Cleanup(s.server.Close)
	return s
}

func (s *Server) serveHTTP(w http.ResponseWriter, request *http.Request) {
	captured, err := s.record(request)
	if err != nil {
		JSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}
	if response, ok := s.next(); ok {
		response.write(w)
		return
	}

	request.Body = io.NopCloser(bytes.NewReader(captured.Body))
	s.Router.ServeHTTP(w, request)
}

func (s *Server) URL() string {
	return s.server.URL
}

// Host is the host:port the server listens on.
func (s *Server) Host() string {
	return strings.TrimPrefix(s.server.URL, "http://")
}

// Config points a client at the server over plain HTTP with Token.
func (s *Server) Config(t testing.TB, opts ...config.Option) config.Config {
	t.Helper()

	cfg, err := config.New(Token, false, s.Host(), opts...)
	if err != nil {
		t.Fatalf("servertest config: %v", err)
	}
	return cfg
}

// Recorder is an http.RoundTripper that captures requests and replies from
// its queue (200 with an empty object when the queue is empty). Err, when
// set, is returned for every request after it is recorded.
type Recorder struct {
	history
	Err error
}

func (r *Recorder) RoundTrip(request *http.Request) (*http.Response, error) {
	if _, err := r.record(request); err != nil {
		return nil, err
	}
	if r.Err != nil {
		return nil, r.Err
	}

	response, ok := r.next()
	if !ok {
		response = Response{Status: http.StatusOK, Body: map[string]any{}}
	}

	recorder := httptest.NewRecorder()
	response.write(recorder)
	result := recorder.Result()
	result.Request = request
	return result, nil
}
