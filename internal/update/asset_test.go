package update

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/garrettladley/sugang/internal/client/github"
)

func assets(names ...string) []github.Asset {
	out := make([]github.Asset, len(names))
	for i, n := range names {
		out[i] = github.Asset{Name: n, BrowserDownloadURL: "https://dl.example/" + n}
	}
	return out
}

const pageURL = "https://github.com/BBIYAKYEE7/sugang/releases/tag/v1.4.0"

func TestClassify(t *testing.T) {
	t.Parallel()

	all := assets(
		"sugang-windows-x64.exe",
		"sugang-win-i386.exe",
		"sugang-windows-arm64.zip",
		"sugang-mac-arm64.dmg",
		"sugang-intel.dmg",
		"sugang.pkg",
		"sugang-linux-amd64.AppImage",
		"sugang_aarch64.deb",
		"sugang-armv7.rpm",
		"sugang-linux.tar.gz",
		"checksums.txt",
	)

	tests := []struct {
		platform Platform
		want     []string
	}{
		{
			platform: PlatformWindows,
			want:     []string{"Windows x64", "Windows x86", "Windows ARM64"},
		},
		{
			platform: PlatformMac,
			want:     []string{"macOS Apple Silicon", "macOS Intel", "macOS"},
		},
		{
			platform: PlatformLinux,
			want:     []string{"Linux x64", "Linux ARM64", "Linux ARM", "Linux"},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.platform), func(t *testing.T) {
			t.Parallel()

			var got []string
			for _, c := range Classify(tt.platform, all, pageURL) {
				got = append(got, c.Label)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Classify(%s) labels mismatch (-want +got):\n%s", tt.platform, diff)
			}
		})
	}
}

func TestClassifyNothingMatches(t *testing.T) {
	t.Parallel()

	got := Classify(PlatformMac, assets("checksums.txt"), pageURL)
	want := []Choice{{Label: "GitHub Releases", URL: pageURL, Filename: "releases"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Classify() mismatch (-want +got):\n%s", diff)
	}
}

func TestSelect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		goos     string
		goarch   string
		assets   []github.Asset
		wantFile string
	}{
		{
			name:     "exact setup name wins",
			goos:     "windows",
			goarch:   "amd64",
			assets:   assets("sugang-windows-x64.exe", "Setup-windows-amd64.exe"),
			wantFile: "Setup-windows-amd64.exe",
		},
		{
			name:     "exact setup name with platform aliases",
			goos:     "darwin",
			goarch:   "arm64",
			assets:   assets("sugang-mac-arm64.dmg", "Setup-mac-apple-silicon.dmg"),
			wantFile: "Setup-mac-apple-silicon.dmg",
		},
		{
			name:     "classified architecture",
			goos:     "darwin",
			goarch:   "amd64",
			assets:   assets("sugang-mac-arm64.dmg", "sugang-mac-intel.dmg"),
			wantFile: "sugang-mac-intel.dmg",
		},
		{
			name:     "generic platform asset",
			goos:     "linux",
			goarch:   "arm64",
			assets:   assets("sugang-linux-amd64.AppImage", "sugang.deb"),
			wantFile: "sugang.deb",
		},
		{
			name:     "wrong architecture only",
			goos:     "windows",
			goarch:   "arm64",
			assets:   assets("sugang-windows-x64.exe"),
			wantFile: "releases",
		},
		{
			name:     "unsupported os",
			goos:     "plan9",
			goarch:   "amd64",
			assets:   assets("sugang-linux-amd64.AppImage"),
			wantFile: "releases",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Select(tt.goos, tt.goarch, &github.Release{HTMLURL: pageURL, Assets: tt.assets})
			if got.Filename != tt.wantFile {
				t.Errorf("Select(%s, %s) = %q, want %q", tt.goos, tt.goarch, got.Filename, tt.wantFile)
			}
		})
	}
}

func TestSelectExactSetupMatchesWholeArch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		goos     string
		goarch   string
		assets   []github.Asset
		wantFile string
		wantArch Arch
	}{
		{
			name:     "arm does not take arm64",
			goos:     "linux",
			goarch:   "arm",
			assets:   assets("Setup-linux-arm64.AppImage", "Setup-linux-arm.AppImage"),
			wantFile: "Setup-linux-arm.AppImage",
			wantArch: ArchARM,
		},
		{
			name:     "arm64 still found",
			goos:     "linux",
			goarch:   "arm64",
			assets:   assets("Setup-linux-arm.AppImage", "Setup-linux-arm64.AppImage"),
			wantFile: "Setup-linux-arm64.AppImage",
			wantArch: ArchARM64,
		},
		{
			name:     "goarch name reports normalised arch",
			goos:     "windows",
			goarch:   "amd64",
			assets:   assets("Setup-windows-amd64.exe"),
			wantFile: "Setup-windows-amd64.exe",
			wantArch: ArchX64,
		},
		{
			name:     "dash suffix is a token boundary",
			goos:     "linux",
			goarch:   "amd64",
			assets:   assets("Setup-linux-x64-1.4.0.deb"),
			wantFile: "Setup-linux-x64-1.4.0.deb",
			wantArch: ArchX64,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Select(tt.goos, tt.goarch, &github.Release{HTMLURL: pageURL, Assets: tt.assets})
			want := Choice{
				Label:    tt.wantFile,
				URL:      "https://dl.example/" + tt.wantFile,
				Filename: tt.wantFile,
				Arch:     tt.wantArch,
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Select(%s, %s) mismatch (-want +got):\n%s", tt.goos, tt.goarch, diff)
			}
		})
	}
}
