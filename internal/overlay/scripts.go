package overlay

import _ "embed"

var (
	//go:embed scripts/readout.js
	readoutScript string
	//go:embed scripts/settings.js
	settingsScript string
	//go:embed scripts/result.js
	resultScript string
	//go:embed scripts/update.js
	updateScript string
)
