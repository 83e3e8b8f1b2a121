package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/eon-group/expiring-link-service/internal/app/service"
	"github.com/eon-group/expiring-link-service/internal/http/view"
)

func getResolve(t *testing.T, links *mockLinkService, identifier string) *http.Response {
	t.Helper()
	srv := newTestApp(t, links, "")
	req := httptest.NewRequest(http.MethodGet, "http://example.com/r/"+identifier, nil)
	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func TestResolve_RedirectsToTarget(t *testing.T) {
	links := &mockLinkService{
		resolveFn: func(ctx context.Context, identifier string) service.Resolution {
			return service.Resolution{Kind: service.ResolveRedirect, Location: "https://example.com/landing"}
		},
	}

	resp := getResolve(t, links, uuid.NewString())
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "https://example.com/landing" {
		t.Fatalf("unexpected Location %q", loc)
	}
}

func TestResolve_ExpiredRedirect(t *testing.T) {
	links := &mockLinkService{
		resolveFn: func(ctx context.Context, identifier string) service.Resolution {
			return service.Resolution{Kind: service.ResolveExpiredRedirect, Location: "https://example.com/gone"}
		},
	}

	resp := getResolve(t, links, uuid.NewString())
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "https://example.com/gone" {
		t.Fatalf("unexpected Location %q", loc)
	}
}

func TestResolve_ExpiredPage(t *testing.T) {
	links := &mockLinkService{
		resolveFn: func(ctx context.Context, identifier string) service.Resolution {
			return service.Resolution{Kind: service.ResolveExpiredPage}
		},
	}

	resp := getResolve(t, links, uuid.NewString())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expired page is a 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if body := readBody(t, resp); body != view.ExpiredLinkHTML {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestResolve_MalformedIdentifier(t *testing.T) {
	links := &mockLinkService{}

	resp := getResolve(t, links, "not-a-uuid")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("malformed identifier should serve the expired page, got %d", resp.StatusCode)
	}
	if body := readBody(t, resp); body != view.ExpiredLinkHTML {
		t.Fatalf("unexpected body %q", body)
	}
	if links.resolveCalls != 0 {
		t.Fatalf("malformed identifier must not hit the store, got %d resolves", links.resolveCalls)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestApp(t, &mockLinkService{}, "")

	req := httptest.NewRequest(http.MethodGet, "http://example.com/health", nil)
	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
