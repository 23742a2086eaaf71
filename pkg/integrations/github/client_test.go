package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"
)

func testClient(t *testing.T, serverURL string, opts Options) *Client {
	t.Helper()
	opts.BaseURL = serverURL
	opts.Logger = log.New(io.Discard)
	return NewClient(opts)
}

func TestClient_LicenseByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/licenses/mit":
			json.NewEncoder(w).Encode(licenseResponse{Key: "mit", Name: "MIT License", Body: "MIT License text"})
		case "/licenses/empty":
			json.NewEncoder(w).Encode(licenseResponse{Key: "empty"})
		case "/licenses/broken":
			w.Write([]byte("{"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := testClient(t, server.URL, Options{})

	tests := []struct {
		id     string
		want   string
		wantOK bool
	}{
		{"mit", "MIT License text", true},
		{"unknown", "", false},
		{"empty", "", false},
		{"broken", "", false},
		{"../etc", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, ok := c.LicenseByID(context.Background(), tt.id)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("LicenseByID(%q) = (%q, %v), want (%q, %v)", tt.id, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestClient_RepositoryLicense(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("Copyright (c) owner\n\nPermission is hereby granted"))
	// GitHub wraps base64 content
	wrapped := encoded[:20] + "\n" + encoded[20:]

	var gotRef string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/repos/owner/repo/license":
			gotRef = r.URL.Query().Get("ref")
			json.NewEncoder(w).Encode(repoLicenseResponse{Encoding: "base64", Content: wrapped})
		case "/repos/owner/plain/license":
			json.NewEncoder(w).Encode(repoLicenseResponse{Encoding: "utf-8", Content: "plain license"})
		case "/repos/owner/badbase64/license":
			json.NewEncoder(w).Encode(repoLicenseResponse{Encoding: "base64", Content: "!!!"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := testClient(t, server.URL, Options{})
	ctx := context.Background()

	t.Run("base64 at commit", func(t *testing.T) {
		got, ok := c.RepositoryLicense(ctx, "/owner/repo/", "abc123")
		if !ok {
			t.Fatal("RepositoryLicense() not found")
		}
		if got != "Copyright (c) owner\n\nPermission is hereby granted" {
			t.Errorf("RepositoryLicense() = %q", got)
		}
		if gotRef != "abc123" {
			t.Errorf("ref = %q, want abc123", gotRef)
		}
	})

	t.Run("default branch sends no ref", func(t *testing.T) {
		gotRef = "unset"
		if _, ok := c.RepositoryLicense(ctx, "/owner/repo", ""); !ok {
			t.Fatal("RepositoryLicense() not found")
		}
		if gotRef != "" {
			t.Errorf("ref = %q, want empty", gotRef)
		}
	})

	t.Run("non-base64 content returned as-is", func(t *testing.T) {
		got, ok := c.RepositoryLicense(ctx, "/owner/plain", "")
		if !ok || got != "plain license" {
			t.Errorf("RepositoryLicense() = (%q, %v)", got, ok)
		}
	})

	for _, path := range []string{"/owner/badbase64", "/owner/missing", "/owner", "/owner/repo/tree/main", "owner/repo"} {
		t.Run("not found "+path, func(t *testing.T) {
			if got, ok := c.RepositoryLicense(ctx, path, ""); ok {
				t.Errorf("RepositoryLicense(%q) = %q, want not found", path, got)
			}
		})
	}
}

func TestClient_Headers(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantAuth string
	}{
		{"anonymous", Options{}, ""},
		{"token", Options{Token: "tok"}, "Bearer tok"},
		{"oauth", Options{OAuth: "id:secret"}, "Basic " + base64.StdEncoding.EncodeToString([]byte("id:secret"))},
		{"token wins", Options{Token: "tok", OAuth: "id:secret"}, "Bearer tok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotAuth, gotUA string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				gotUA = r.Header.Get("User-Agent")
				json.NewEncoder(w).Encode(licenseResponse{Body: "x"})
			}))
			defer server.Close()

			c := testClient(t, server.URL, tt.opts)
			c.LicenseByID(context.Background(), "mit")

			if gotAuth != tt.wantAuth {
				t.Errorf("Authorization = %q, want %q", gotAuth, tt.wantAuth)
			}
			if gotUA == "" {
				t.Error("User-Agent header missing")
			}
		})
	}
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(licenseResponse{Body: "MIT"})
	}))
	defer server.Close()

	c := testClient(t, server.URL, Options{Attempts: 2})
	if got, ok := c.LicenseByID(context.Background(), "mit"); !ok || got != "MIT" {
		t.Errorf("LicenseByID() = (%q, %v), want (MIT, true)", got, ok)
	}
}

func TestParseRepoPath(t *testing.T) {
	tests := []struct {
		path      string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{"/owner/repo", "owner", "repo", false},
		{"/dotnet/runtime/", "dotnet", "runtime", false},
		{"/JamesNK/Newtonsoft.Json", "JamesNK", "Newtonsoft.Json", false},
		{"/-bad/repo", "", "", true},
		{"/owner/re po", "", "", true},
		{"/owner", "", "", true},
		{"", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			owner, repo, err := ParseRepoPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRepoPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if owner != tt.wantOwner || repo != tt.wantRepo {
				t.Errorf("ParseRepoPath(%q) = (%q, %q), want (%q, %q)", tt.path, owner, repo, tt.wantOwner, tt.wantRepo)
			}
		})
	}
}
