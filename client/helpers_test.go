package client_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/go-jmap/jmap/client"
)

const testAccountID = "u1138"

// testServer is a JMAP server backed by httptest. Handlers left nil answer
// 404.
type testServer struct {
	*httptest.Server

	sessionHits   atomic.Int32
	session       func(s *testServer) string
	sessionStatus int

	api    http.HandlerFunc
	events http.HandlerFunc

	// middleware wraps every handler.
	middleware func(next http.Handler) http.Handler
}

func newTestServer(t *testing.T, ts *testServer) *testServer {
	t.Helper()

	if ts.session == nil {
		ts.session = defaultSession
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /.well-known/jmap", func(w http.ResponseWriter, r *http.Request) {
		ts.sessionHits.Add(1)
		if ts.sessionStatus != 0 {
			http.Error(w, http.StatusText(ts.sessionStatus), ts.sessionStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, ts.session(ts))
	})
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		if ts.api == nil {
			http.NotFound(w, r)
			return
		}
		ts.api(w, r)
	})
	mux.HandleFunc("/events/", func(w http.ResponseWriter, r *http.Request) {
		if ts.events == nil {
			http.NotFound(w, r)
			return
		}
		ts.events(w, r)
	})

	var handler http.Handler = mux
	if ts.middleware != nil {
		handler = ts.middleware(mux)
	}
	ts.Server = httptest.NewTLSServer(handler)
	t.Cleanup(ts.Close)
	return ts
}

func defaultSession(ts *testServer) string {
	return fmt.Sprintf(`{
		"capabilities": {
			"urn:ietf:params:jmap:core": {"maxCallsInRequest": 16},
			"urn:ietf:params:jmap:mail": {},
			"urn:ietf:params:jmap:submission": {}
		},
		"accounts": {
			%[2]q: {"name": "ness@onett.example.net", "isPersonal": true, "isReadOnly": false}
		},
		"primaryAccounts": {
			"urn:ietf:params:jmap:core": %[2]q,
			"urn:ietf:params:jmap:mail": %[2]q
		},
		"username": "ness@onett.example.net",
		"apiUrl": "%[1]s/api/",
		"downloadUrl": "%[1]s/download/{accountId}/{blobId}/{name}?type={type}",
		"uploadUrl": "%[1]s/upload/{accountId}/",
		"eventSourceUrl": "%[1]s/events/?types={types}&closeafter={closeafter}&ping={ping}",
		"state": "2187"
	}`, ts.URL, testAccountID)
}

// host returns the host:port the client should be created with.
func (ts *testServer) host() string {
	return strings.TrimPrefix(ts.URL, "https://")
}

func (ts *testServer) newClient(t *testing.T, opts ...client.Option) *client.Client {
	t.Helper()

	opts = append([]client.Option{client.WithHTTPClient(ts.Client())}, opts...)
	c, err := client.New(ts.host(), opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

// methodResponses writes a response object whose methodResponses member is
// the given JSON array body.
func methodResponses(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"methodResponses": %s, "sessionState": "2187"}`, body)
}
