// Package tezaurstest provides a stand-in Tezaurs service for tests.
package tezaurstest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/heartmarshall/tezaurs-gateway/internal/adapter/provider/tezaurs"
	"github.com/heartmarshall/tezaurs-gateway/internal/domain"
)

type reply struct {
	status int
	body   []byte
}

// Server answers the service's routes from registered fixtures.
// Unregistered routes get a 404 with the service's error envelope.
type Server struct {
	*httptest.Server

	t        testing.TB
	mu       sync.Mutex
	replies  map[string]reply
	requests []string
}

// NewServer starts a Server that is closed when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{t: t, replies: make(map[string]reply)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Analyze registers the analyses returned for word.
func (s *Server) Analyze(word string, words ...domain.AnalyzedWord) {
	body, err := tezaurs.EncodeAnalyses(words)
	s.must(err)
	s.Raw("analyze", word, http.StatusOK, string(body))
}

// Tokenize registers the tokens returned for sentence.
func (s *Server) Tokenize(sentence string, tokens ...domain.Token) {
	body, err := tezaurs.EncodeTokens(tokens)
	s.must(err)
	s.Raw("tokenize", sentence, http.StatusOK, string(body))
}

// Normalize registers the plain-text normal form of sentence.
func (s *Server) Normalize(sentence, normalized string) {
	s.Raw("normalize_phrase", sentence, http.StatusOK, normalized)
}

// Paradigms registers the paradigms suggested for word.
func (s *Server) Paradigms(word string, paradigms ...domain.Paradigm) {
	body, err := tezaurs.EncodeParadigms(paradigms)
	s.must(err)
	s.Raw("suitable_paradigm", word, http.StatusOK, string(body))
}

// Inflect registers the case forms returned for sentence.
func (s *Server) Inflect(sentence string, inflections ...domain.Inflection) {
	body, err := tezaurs.EncodeInflections(inflections)
	s.must(err)
	s.Raw("inflect_phrase", sentence, http.StatusOK, string(body))
}

// Raw registers an arbitrary answer for op and its unescaped argument.
func (s *Server) Raw(op, arg string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[op+"/"+arg] = reply{status: status, body: []byte(body)}
}

// Requests returns the escaped request paths received so far.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, r.URL.EscapedPath())
	rep, ok := s.replies[strings.TrimPrefix(r.URL.Path, "/")]
	s.mu.Unlock()

	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"error_code": http.StatusNotFound,
				"error_msg":  "no such route",
				"request_params": []map[string]string{
					{"key": "path", "value": r.URL.Path},
				},
			},
		})
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(rep.status)
	_, _ = w.Write(rep.body)
}

func (s *Server) must(err error) {
	if err != nil {
		s.t.Fatalf("tezaurstest: encode fixture: %v", err)
	}
}
