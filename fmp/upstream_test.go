package fmp

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
)

const testAPIKey = "test-key"

// upstream 模拟 FMP stable API, 记录收到的请求
type upstream struct {
	*httptest.Server

	mu       sync.Mutex
	requests []*http.Request
	status   map[string]int
	bodies   map[string]string
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()

	u := &upstream{
		status: make(map[string]int),
		bodies: make(map[string]string),
	}

	r := mux.NewRouter()
	r.HandleFunc("/stable/historical-chart/{interval}", u.handle).Methods(http.MethodGet)
	r.PathPrefix("/stable/").HandlerFunc(u.handle).Methods(http.MethodGet)

	u.Server = httptest.NewServer(r)
	t.Cleanup(u.Close)

	return u
}

func (u *upstream) handle(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	u.requests = append(u.requests, r.Clone(r.Context()))
	status, hasStatus := u.status[r.URL.Path]
	body, hasBody := u.bodies[r.URL.Path]
	delete(u.status, r.URL.Path)
	u.mu.Unlock()

	if hasStatus {
		w.WriteHeader(status)
		return
	}
	if !hasBody {
		body = `[{"symbol":"` + r.URL.Query().Get("symbol") + `","price":1.50}]`
	}
	if interval := mux.Vars(r)["interval"]; interval != "" {
		body = `{"interval":"` + interval + `"}`
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

// failOnce 下一次请求该路径返回 status
func (u *upstream) failOnce(path string, status int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.status["/stable"+path] = status
}

func (u *upstream) respond(path, body string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.bodies["/stable"+path] = body
}

func (u *upstream) last() *http.Request {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.requests) == 0 {
		return nil
	}

	return u.requests[len(u.requests)-1]
}

func (u *upstream) count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.requests)
}

func (u *upstream) client(t *testing.T) *Client {
	t.Helper()

	c, err := NewClient(testAPIKey, WithBaseURL(u.URL+"/stable/"))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	return c
}
