package env

import "testing"

func TestFromVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		version string
		want    Environment
	}{
		{version: "v1.2.3", want: Production},
		{version: "1.0.0", want: Production},
		{version: "devel", want: Development},
		{version: "", want: Development},
		{version: "v1.2.3-dirty", want: Development},
		{version: "v0.0.0-0.20250101000000-abcdef123456", want: Development},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			t.Parallel()
			if got := FromVersion(tt.version); got != tt.want {
				t.Errorf("FromVersion(%q) = %q, want %q", tt.version, got, tt.want)
			}
		})
	}
}
