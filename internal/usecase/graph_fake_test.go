package usecase

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"messenger-client/internal/interface/graphapi"

	"golang.org/x/oauth2"
)

// graphRequest is one request observed by fakeGraph.
type graphRequest struct {
	Method string
	Path   string
	Query  url.Values
	Body   map[string]any
}

// fakeGraph is an in-process Graph API recording every request. respond
// returns the status and body for each request.
type fakeGraph struct {
	mu       sync.Mutex
	requests []graphRequest
	respond  func(req graphRequest) (int, string)
}

func newFakeGraph(t *testing.T, respond func(req graphRequest) (int, string)) (*fakeGraph, *graphapi.Client) {
	t.Helper()

	f := &fakeGraph{respond: respond}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := graphRequest{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query()}
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			if err := json.Unmarshal(b, &req.Body); err != nil {
				t.Errorf("request body is not JSON: %s", b)
			}
		}

		f.mu.Lock()
		f.requests = append(f.requests, req)
		f.mu.Unlock()

		status, body := http.StatusOK, `{"result":"success"}`
		if f.respond != nil {
			status, body = f.respond(req)
		}
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(ts.Close)

	c, err := graphapi.NewClient(
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "page-token"}),
		graphapi.WithBaseURL(ts.URL),
		graphapi.WithHTTPClient(ts.Client()),
	)
	if err != nil {
		t.Fatal(err)
	}
	return f, c
}

func (f *fakeGraph) Requests() []graphRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]graphRequest(nil), f.requests...)
}

// jsonValue decodes s into the generic form request bodies are compared in.
func jsonValue(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("bad JSON %q: %v", s, err)
	}
	return v
}
