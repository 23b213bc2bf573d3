// Package sentimenttest provides an in-process fake of the sentiment service
// for tests, in the spirit of net/http/httptest.
package sentimenttest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"

	"github.com/five82/moodline/internal/sentiment"
)

// Server serves /health and /predict following the service contract.
// By default health answers 200 and predictions are labelled with Classify.
type Server struct {
	*httptest.Server

	mu           sync.Mutex
	healthStatus int
	failStatus   int
	failBody     string
	gate         chan struct{}
	started      chan struct{}
	healthCalls  int
	predictCalls int
	last         []string
	headers      http.Header
}

// NewServer starts a fake service. Callers must Close it.
func NewServer() *Server {
	s := &Server{healthStatus: http.StatusOK}
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/predict", s.handlePredict)
	s.Server = httptest.NewServer(mux)
	return s
}

// SetHealthStatus changes the status code returned by /health.
func (s *Server) SetHealthStatus(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.healthStatus = code
}

// FailPredict makes /predict answer with code and the raw body. A zero code
// restores normal behaviour.
func (s *Server) FailPredict(code int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = code
	s.failBody = body
}

// Block holds every /predict request until release is called. started
// receives one value per request that reached the handler.
func (s *Server) Block() (started <-chan struct{}, release func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gate = make(chan struct{})
	s.started = make(chan struct{}, 16)
	gate := s.gate
	var once sync.Once
	return s.started, func() { once.Do(func() { close(gate) }) }
}

// HealthCalls returns the number of /health requests served.
func (s *Server) HealthCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.healthCalls
}

// PredictCalls returns the number of /predict requests received.
func (s *Server) PredictCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.predictCalls
}

// LastConversation returns the sentence list of the most recent /predict body.
func (s *Server) LastConversation() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.last...)
}

// LastHeaders returns the headers of the most recent request.
func (s *Server) LastHeaders() http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.headers.Clone()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.healthCalls++
	s.headers = r.Header.Clone()
	code := s.healthStatus
	s.mu.Unlock()

	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"detail": "Method Not Allowed"})
		return
	}
	writeJSON(w, code, map[string]string{"status": http.StatusText(code)})
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.predictCalls++
	s.headers = r.Header.Clone()
	gate, started := s.gate, s.started
	failStatus, failBody := s.failStatus, s.failBody
	s.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		<-gate
	}

	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"detail": "Method Not Allowed"})
		return
	}
	var req sentiment.PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Conversation == nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{{
				"loc":  []string{"body", "conversation"},
				"msg":  "Field required",
				"type": "missing",
			}},
		})
		return
	}

	s.mu.Lock()
	s.last = append([]string(nil), req.Conversation...)
	s.mu.Unlock()

	if failStatus != 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(failStatus)
		_, _ = w.Write([]byte(failBody))
		return
	}

	results := make([]sentiment.Result, 0, len(req.Conversation))
	for _, sentence := range req.Conversation {
		results = append(results, sentiment.Result{Text: sentence, Sentiment: Classify(sentence)})
	}
	writeJSON(w, http.StatusOK, sentiment.PredictResponse{Results: results})
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

var (
	nonLetters = regexp.MustCompile(`[^a-z\s]`)

	negativeWords = map[string]bool{
		"tired": true, "stress": true, "stressful": true, "sad": true, "angry": true,
		"upset": true, "exhausted": true, "bad": true, "terrible": true, "worried": true,
	}
	positiveWords = map[string]bool{
		"hope": true, "hoping": true, "improve": true, "happy": true, "good": true,
		"great": true, "better": true, "excited": true, "love": true,
	}
)

// Classify labels a sentence from lexical cues only: negative words win over
// positive ones and anything else is neutral.
func Classify(sentence string) string {
	words := strings.Fields(nonLetters.ReplaceAllString(strings.ToLower(sentence), ""))
	positive := false
	for _, w := range words {
		if negativeWords[w] {
			return sentiment.LabelNegative
		}
		if positiveWords[w] {
			positive = true
		}
	}
	if positive {
		return sentiment.LabelPositive
	}
	return sentiment.LabelNeutral
}
