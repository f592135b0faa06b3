package probe

import _ "embed"

var (
	//go:embed scripts/survey.js
	surveyScript string
	//go:embed scripts/fill.js
	fillScript string
	//go:embed scripts/click.js
	clickScript string
	//go:embed scripts/ready.js
	readyScript string
)
