package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eon-group/expiring-link-service/internal/app/model"
	appserver "github.com/eon-group/expiring-link-service/internal/app/server"
	"github.com/eon-group/expiring-link-service/internal/app/service"
)

type mockLinkService struct {
	createFn  func(ctx context.Context, input service.CreateLinkInput) (*model.Link, error)
	resolveFn func(ctx context.Context, identifier string) service.Resolution

	resolveCalls int
}

func (m *mockLinkService) CreateLink(ctx context.Context, input service.CreateLinkInput) (*model.Link, error) {
	if m.createFn != nil {
		return m.createFn(ctx, input)
	}
	return &model.Link{Identifier: uuid.NewString(), TargetURL: input.URL}, nil
}

func (m *mockLinkService) Resolve(ctx context.Context, identifier string) service.Resolution {
	m.resolveCalls++
	if m.resolveFn != nil {
		return m.resolveFn(ctx, identifier)
	}
	return service.Resolution{Kind: service.ResolveExpiredPage}
}

func newTestApp(t *testing.T, links service.LinkService, apiKey string) *appserver.Server {
	t.Helper()
	return appserver.New(appserver.Dependencies{
		Logger: zap.NewNop(),
		Links:  links,
		APIKey: apiKey,
	})
}

func postCreate(t *testing.T, srv *appserver.Server, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(http.MethodPost, "http://example.com/create", reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	_ = resp.Body.Close()
	return string(data)
}

func TestCreateLink_MissingBody(t *testing.T) {
	srv := newTestApp(t, &mockLinkService{}, "")

	resp := postCreate(t, srv, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if body := readBody(t, resp); body != "Request Body is required" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestCreateLink_CollectsFieldErrors(t *testing.T) {
	srv := newTestApp(t, &mockLinkService{}, "")

	resp := postCreate(t, srv, `{"url":"","expiresIn":0}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var errs map[string]string
	if err := json.Unmarshal([]byte(readBody(t, resp)), &errs); err != nil {
		t.Fatalf("unmarshal errors: %v", err)
	}
	if errs["url"] != "Url is required" {
		t.Fatalf("unexpected url error %q", errs["url"])
	}
	if errs["expiresIn"] != "Expiration (in minutes) must be greater than 0" {
		t.Fatalf("unexpected expiresIn error %q", errs["expiresIn"])
	}
	if len(errs) != 2 {
		t.Fatalf("expected both field errors at once, got %v", errs)
	}
}

func TestCreateLink_NegativeExpiry(t *testing.T) {
	srv := newTestApp(t, &mockLinkService{}, "")

	resp := postCreate(t, srv, `{"url":"https://example.com","expiresIn":-5}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var errs map[string]string
	if err := json.Unmarshal([]byte(readBody(t, resp)), &errs); err != nil {
		t.Fatalf("unmarshal errors: %v", err)
	}
	if len(errs) != 1 || errs["expiresIn"] == "" {
		t.Fatalf("expected only the expiresIn error, got %v", errs)
	}
}

func TestCreateLink_Success(t *testing.T) {
	identifier := uuid.NewString()
	links := &mockLinkService{
		createFn: func(ctx context.Context, input service.CreateLinkInput) (*model.Link, error) {
			if input.URL != "https://example.com/doc" {
				t.Fatalf("unexpected input URL %q", input.URL)
			}
			if input.ExpiresIn != 30 {
				t.Fatalf("unexpected ExpiresIn %d", input.ExpiresIn)
			}
			if !input.ExpiresOnAccess {
				t.Fatal("expected ExpiresOnAccess to pass through")
			}
			return &model.Link{Identifier: identifier, TargetURL: input.URL}, nil
		},
	}
	srv := newTestApp(t, links, "")

	resp := postCreate(t, srv, `{"url":"https://example.com/doc","expiresIn":30,"expiresOnAccess":true}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var out struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal([]byte(readBody(t, resp)), &out); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	want := "http://example.com/r/" + identifier
	if out.URL != want {
		t.Fatalf("resolve URL = %q, want %q", out.URL, want)
	}

	// The embedded identifier must round-trip through the resolve path.
	embedded := out.URL[strings.LastIndex(out.URL, "/")+1:]
	if embedded != identifier {
		t.Fatalf("embedded identifier %q does not match created link", embedded)
	}
}

func TestCreateLink_StoreFailure(t *testing.T) {
	links := &mockLinkService{
		createFn: func(ctx context.Context, input service.CreateLinkInput) (*model.Link, error) {
			return nil, context.DeadlineExceeded
		},
	}
	srv := newTestApp(t, links, "")

	resp := postCreate(t, srv, `{"url":"https://example.com","expiresIn":1}`)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if body := readBody(t, resp); strings.Contains(body, "deadline") {
		t.Fatalf("store detail leaked to caller: %q", body)
	}
}

func TestWake(t *testing.T) {
	srv := newTestApp(t, &mockLinkService{}, "secret")

	req := httptest.NewRequest(http.MethodGet, "http://example.com/w", nil)
	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without key, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "http://example.com/w", nil)
	req.Header.Set("X-Api-Key", "secret")
	resp, err = srv.App().Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with key, got %d", resp.StatusCode)
	}

	// Function-key style query parameter works too.
	req = httptest.NewRequest(http.MethodGet, "http://example.com/w?code=secret", nil)
	resp, err = srv.App().Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with query key, got %d", resp.StatusCode)
	}
}

func TestCreateLink_RequiresAPIKey(t *testing.T) {
	srv := newTestApp(t, &mockLinkService{}, "secret")

	resp := postCreate(t, srv, `{"url":"https://example.com","expiresIn":1}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without key, got %d", resp.StatusCode)
	}
}
