package env

import "github.com/garrettladley/sugang/internal/version"

type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

func (e Environment) IsProduction() bool { return e == Production }

// FromVersion classifies a build. Release builds wipe credentials on first
// launch and check for updates; development builds do neither.
func FromVersion(v string) Environment {
	if version.IsDevelopment(v) {
		return Development
	}
	return Production
}

func Current() Environment { return FromVersion(version.Get()) }
