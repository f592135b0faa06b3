package update

import (
	"regexp"
	"strings"

	"github.com/garrettladley/sugang/internal/client/github"
)

type Platform string

const (
	PlatformWindows Platform = "windows"
	PlatformMac     Platform = "mac"
	PlatformLinux   Platform = "linux"
)

type Arch string

const (
	ArchGeneric      Arch = ""
	ArchX64          Arch = "x64"
	ArchX86          Arch = "x86"
	ArchARM64        Arch = "arm64"
	ArchARM          Arch = "arm"
	ArchAppleSilicon Arch = "apple-silicon"
	ArchIntel        Arch = "intel"
)

// Choice is a downloadable installer, or the release page when none fits.
type Choice struct {
	Label    string
	URL      string
	Filename string
	Arch     Arch
}

const releasesFilename = "releases"

func (c Choice) IsReleasePage() bool { return c.Filename == releasesFilename }

var (
	windowsName = regexp.MustCompile(`(?i)windows|\.exe$`)
	macName     = regexp.MustCompile(`(?i)mac|\.dmg$|\.pkg$`)
	linuxName   = regexp.MustCompile(`(?i)linux|\.AppImage$|\.deb$|\.rpm$`)

	notWindows = regexp.MustCompile(`(?i)mac|linux`)
	notMac     = regexp.MustCompile(`(?i)windows|linux`)
	notLinux   = regexp.MustCompile(`(?i)windows|mac`)

	x64Name          = regexp.MustCompile(`(?i)x64|amd64`)
	x86Name          = regexp.MustCompile(`(?i)x86|i386`)
	arm64Name        = regexp.MustCompile(`(?i)arm64`)
	arm64LinuxName   = regexp.MustCompile(`(?i)arm64|aarch64`)
	armName          = regexp.MustCompile(`(?i)arm|armv7`)
	appleSiliconName = regexp.MustCompile(`(?i)arm64|m1|m2|apple`)
	intelName        = regexp.MustCompile(`(?i)intel|x86_64`)
)

type archRule struct {
	re   *regexp.Regexp
	arch Arch
}

type platformRule struct {
	label   string
	include *regexp.Regexp
	exclude *regexp.Regexp
	archs   []archRule
}

var platformRules = map[Platform]platformRule{
	PlatformWindows: {
		label:   "Windows",
		include: windowsName,
		exclude: notWindows,
		archs:   []archRule{{x64Name, ArchX64}, {x86Name, ArchX86}, {arm64Name, ArchARM64}},
	},
	PlatformMac: {
		label:   "macOS",
		include: macName,
		exclude: notMac,
		archs:   []archRule{{appleSiliconName, ArchAppleSilicon}, {intelName, ArchIntel}},
	},
	PlatformLinux: {
		label:   "Linux",
		include: linuxName,
		exclude: notLinux,
		archs:   []archRule{{x64Name, ArchX64}, {x86Name, ArchX86}, {arm64LinuxName, ArchARM64}, {armName, ArchARM}},
	},
}

var archLabels = map[Arch]string{
	ArchX64:          "x64",
	ArchX86:          "x86",
	ArchARM64:        "ARM64",
	ArchARM:          "ARM",
	ArchAppleSilicon: "Apple Silicon",
	ArchIntel:        "Intel",
}

// Classify lists the installers in assets for platform, in asset order.
// It returns only the release page when nothing matches.
func Classify(platform Platform, assets []github.Asset, releaseURL string) []Choice {
	rule, ok := platformRules[platform]
	if !ok {
		return []Choice{releasePage(releaseURL)}
	}

	var out []Choice
	for _, a := range assets {
		if !rule.include.MatchString(a.Name) || rule.exclude.MatchString(a.Name) {
			continue
		}
		arch := ArchGeneric
		for _, r := range rule.archs {
			if r.re.MatchString(a.Name) {
				arch = r.arch
				break
			}
		}
		label := rule.label
		if arch != ArchGeneric {
			label += " " + archLabels[arch]
		}
		out = append(out, Choice{Label: label, URL: a.BrowserDownloadURL, Filename: a.Name, Arch: arch})
	}
	if len(out) == 0 {
		return []Choice{releasePage(releaseURL)}
	}
	return out
}

// Select picks the installer for goos/goarch. An asset named
// Setup-<os>-<arch> wins; otherwise the classified asset for the
// architecture, then a generic one for the platform, then the release page.
func Select(goos, goarch string, release *github.Release) Choice {
	if c, ok := exactSetup(goos, goarch, release.Assets); ok {
		return c
	}

	platform, ok := platformOf(goos)
	if !ok {
		return releasePage(release.HTMLURL)
	}
	want := archOf(platform, goarch)

	var generic *Choice
	for _, c := range Classify(platform, release.Assets, release.HTMLURL) {
		if c.IsReleasePage() {
			break
		}
		if c.Arch == want {
			return c
		}
		if c.Arch == ArchGeneric && generic == nil {
			generic = &c
		}
	}
	if generic != nil {
		return *generic
	}
	return releasePage(release.HTMLURL)
}

func exactSetup(goos, goarch string, assets []github.Asset) (Choice, bool) {
	osNames := []string{goos}
	archNames := []string{goarch}
	arch := ArchGeneric
	if p, ok := platformOf(goos); ok {
		if string(p) != goos {
			osNames = append(osNames, string(p))
		}
		arch = archOf(p, goarch)
		if arch != ArchGeneric && string(arch) != goarch {
			archNames = append(archNames, string(arch))
		}
	}

	for _, a := range assets {
		name := strings.ToLower(a.Name)
		for _, o := range osNames {
			for _, ar := range archNames {
				if hasToken(name, "setup-"+o+"-"+ar) {
					return Choice{Label: a.Name, URL: a.BrowserDownloadURL, Filename: a.Name, Arch: arch}, true
				}
			}
		}
	}
	return Choice{}, false
}

// hasToken reports whether name starts with prefix as a whole token, so
// "setup-linux-arm" does not claim "setup-linux-arm64.appimage".
func hasToken(name, prefix string) bool {
	rest, ok := strings.CutPrefix(name, prefix)
	return ok && (rest == "" || rest[0] == '.' || rest[0] == '-')
}

func platformOf(goos string) (Platform, bool) {
	switch goos {
	case "windows":
		return PlatformWindows, true
	case "darwin":
		return PlatformMac, true
	case "linux":
		return PlatformLinux, true
	default:
		return "", false
	}
}

func archOf(p Platform, goarch string) Arch {
	if p == PlatformMac {
		switch goarch {
		case "arm64":
			return ArchAppleSilicon
		case "amd64":
			return ArchIntel
		}
		return ArchGeneric
	}
	switch goarch {
	case "amd64":
		return ArchX64
	case "386":
		return ArchX86
	case "arm64":
		return ArchARM64
	case "arm":
		return ArchARM
	default:
		return ArchGeneric
	}
}

func releasePage(url string) Choice {
	if url == "" {
		url = DefaultReleasePage
	}
	return Choice{Label: "GitHub Releases", URL: url, Filename: releasesFilename}
}
