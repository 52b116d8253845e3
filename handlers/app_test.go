package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"mention-radar/auth"
	"mention-radar/config"
	"mention-radar/database"
	"mention-radar/metrics"
	"mention-radar/notify"
)

const testIngestToken = "ingest-secret"

type testServer struct {
	app    *App
	router *gin.Engine
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Defaults()
	cfg.Database.DSN = filepath.Join(t.TempDir(), "radar.db")
	cfg.Server.TemplatesGlob = "../templates/*"
	cfg.Server.StaticDir = ""
	cfg.Ingest.Token = testIngestToken
	cfg.Display.Timezone = "UTC"

	require.NoError(t, database.InitDB(cfg.Database))
	notes := notify.NewCenter(time.Minute)
	t.Cleanup(func() {
		notes.Close()
		database.Close()
		database.DB = nil
	})

	a := NewApp(cfg, auth.NewService(database.GetDB(), cfg.Auth.SessionTTL), notes, metrics.New())
	return &testServer{app: a, router: NewRouter(a)}
}

// login creates an account and keeps its session token for later requests.
func (s *testServer) login(t *testing.T) {
	t.Helper()
	_, session, err := s.app.Auth.SignUp(context.Background(), "ana@example.com", "segredo", auth.Metadata{FullName: "Ana Souza"})
	require.NoError(t, err)
	s.token = session.Token
}

func (s *testServer) do(t *testing.T, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if s.token != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: s.token})
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) get(t *testing.T, target string) *httptest.ResponseRecorder {
	return s.do(t, http.MethodGet, target, nil, "")
}

func (s *testServer) postJSON(t *testing.T, target, body string) *httptest.ResponseRecorder {
	return s.do(t, http.MethodPost, target, strings.NewReader(body), "application/json")
}

func (s *testServer) postForm(t *testing.T, target string, form url.Values) *httptest.ResponseRecorder {
	return s.do(t, http.MethodPost, target, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
}

func (s *testServer) ingest(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/mentions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Ingest-Token", testIngestToken)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// newRequest builds a GET carrying the session cookie, for tests that need
// to adjust headers before serving.
func newRequest(t *testing.T, s *testServer, target string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: s.token})
	return req
}

func serve(s *testServer, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}
