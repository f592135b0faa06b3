package probe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadMatcherMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	got, err := LoadMatcher(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadMatcher() error = %v", err)
	}
	if diff := cmp.Diff(DefaultMatcher(), got); diff != "" {
		t.Errorf("LoadMatcher() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMatcherOverridesPerList(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "selectors.yaml")
	data := []byte(`
username:
  - input#portalId
  - input[name="id"]
button:
  - a.login
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := LoadMatcher(path)
	if err != nil {
		t.Fatalf("LoadMatcher() error = %v", err)
	}

	want := DefaultMatcher()
	want.Username = []string{`input#portalId`, `input[name="id"]`}
	want.Button = []string{`a.login`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadMatcher() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMatcherInvalidYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "selectors.yaml")
	if err := os.WriteFile(path, []byte("username: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMatcher(path); err == nil {
		t.Error("LoadMatcher() error = nil, want error")
	}
}

func TestMatcherMarshalRoundTrips(t *testing.T) {
	t.Parallel()

	data, err := DefaultMatcher().Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	path := filepath.Join(t.TempDir(), "selectors.yaml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := LoadMatcher(path)
	if err != nil {
		t.Fatalf("LoadMatcher() error = %v", err)
	}
	if diff := cmp.Diff(DefaultMatcher(), got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
