package license

import (
	"context"
	"net/url"
	"testing"
)

func TestRegistry_Find(t *testing.T) {
	r := NewRegistry()
	unsafe := Func{
		Match: func(u *url.URL) bool { return true },
		Fetch: func(context.Context, Request) (string, bool) { return "unsafe", true },
	}
	safe := Func{
		IsSafe: true,
		Match:  func(u *url.URL) bool { return u.Host == "github.com" },
		Fetch:  func(context.Context, Request) (string, bool) { return "safe", true },
	}
	r.Register(FamilyProject, unsafe)
	r.Register(FamilyProject, safe)

	gh, _ := url.Parse("https://github.com/o/r")
	other, _ := url.Parse("https://example.com")

	tests := []struct {
		name        string
		u           *url.URL
		f           Family
		allowUnsafe bool
		want        string
		wantOK      bool
	}{
		{"safe only skips unsafe", gh, FamilyProject, false, "safe", true},
		{"unsafe allowed keeps order", gh, FamilyProject, true, "unsafe", true},
		{"no safe match", other, FamilyProject, false, "", false},
		{"unsafe catch-all", other, FamilyProject, true, "unsafe", true},
		{"other family empty", gh, FamilyLicenseURL, true, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := r.Find(tt.f, tt.u, tt.allowUnsafe)
			if ok != tt.wantOK {
				t.Fatalf("Find() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok {
				if got, _ := c.Resolve(context.Background(), Request{URL: tt.u}); got != tt.want {
					t.Errorf("Find() picked %q, want %q", got, tt.want)
				}
			}
		})
	}

	if !r.Gated(FamilyProject, other) {
		t.Error("Gated() should report a URL only the unsafe capability claims")
	}
	if r.Gated(FamilyProject, gh) {
		t.Error("Gated() should be false when a safe capability also matches")
	}
	if r.Gated(FamilyLicenseURL, gh) {
		t.Error("Gated() on an empty family should be false")
	}

	if r.Len(FamilyProject) != 2 || r.Len(FamilyRepository) != 0 {
		t.Errorf("Len() = %d/%d, want 2/0", r.Len(FamilyProject), r.Len(FamilyRepository))
	}
}

func TestFamilyString(t *testing.T) {
	for f, want := range map[Family]string{
		FamilyLicenseURL: "license-url",
		FamilyRepository: "repository",
		FamilyProject:    "project-url",
		Family(42):       "unknown",
	} {
		if got := f.String(); got != want {
			t.Errorf("Family(%d).String() = %q, want %q", int(f), got, want)
		}
	}
}

func TestSignalsEmpty(t *testing.T) {
	if !(Signals{}).Empty() {
		t.Error("zero Signals should be empty")
	}
	if !(Signals{Repository: Repository{URL: "https://github.com/o/r"}}).Empty() {
		t.Error("repository without commit is not a usable signal")
	}
	if (Signals{ProjectURL: "https://example.com"}).Empty() {
		t.Error("project URL is a signal")
	}
}
