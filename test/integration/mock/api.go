package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// ReceivedRequest is one call captured by ApiMock.
type ReceivedRequest struct {
	Headers map[string]string
	Body    map[string]any
}

type cannedResponse struct {
	status int
	body   any
}

// ApiMock is a fake third party HTTP API. Responses are keyed by method and
// path; an index of -1 sets the fallback for every call.
type ApiMock struct {
	mu        sync.Mutex
	server    *httptest.Server
	received  map[string][]ReceivedRequest
	responses map[string]map[int]cannedResponse
}

// NewApiServer creates an HTTP mock that answers with programmed responses.
func NewApiServer() *ApiMock {
	return &ApiMock{
		received:  map[string][]ReceivedRequest{},
		responses: map[string]map[int]cannedResponse{},
	}
}

// Start starts the mock server.
func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
}

// GetUrl returns the base URL of the mock server.
func (a *ApiMock) GetUrl() string {
	return a.server.URL
}

func (a *ApiMock) handle(w http.ResponseWriter, r *http.Request) {
	key := r.Method + r.URL.Path

	body, _ := io.ReadAll(r.Body)
	request := ReceivedRequest{Headers: map[string]string{}, Body: map[string]any{}}
	_ = json.Unmarshal(body, &request.Body)
	for name, values := range r.Header {
		request.Headers[name] = values[0]
	}

	a.mu.Lock()
	index := len(a.received[key])
	a.received[key] = append(a.received[key], request)
	canned, ok := a.responses[key][index]
	if !ok {
		canned, ok = a.responses[key][-1]
	}
	a.mu.Unlock()

	if !ok {
		canned = cannedResponse{status: http.StatusOK, body: map[string]any{}}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(canned.status)
	_ = json.NewEncoder(w).Encode(canned.body)
}

// SetResponse programs the index-th response for method and path.
func (a *ApiMock) SetResponse(index int, method, path string, status int, response any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	key := method + path
	if a.responses[key] == nil {
		a.responses[key] = map[int]cannedResponse{}
	}
	a.responses[key][index] = cannedResponse{status: status, body: response}
}

// Requests returns the calls received for method and path, oldest first.
func (a *ApiMock) Requests(method, path string) []ReceivedRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]ReceivedRequest(nil), a.received[method+path]...)
}

// Clear forgets every captured request and canned response.
func (a *ApiMock) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.received = map[string][]ReceivedRequest{}
	a.responses = map[string]map[int]cannedResponse{}
}
