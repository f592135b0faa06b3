//go:build !release

package footer

import "github.com/garrettladley/sugang/internal/version"

// dev builds show which binary is running
func (f Footer) leftContent() string {
	return version.Get()
}
