package validator

import (
	"strings"

	"github.com/garrettladley/sugang/internal/xerrors"
)

type Validator interface {
	// Validate validates the fields of the struct and returns a map of errors.
	// returns nil if no errors are found
	Validate() map[string]string
}

func Validate(v Validator) error {
	if fields := v.Validate(); len(fields) > 0 {
		return xerrors.Validation(fields)
	}
	return nil
}

// Fields collects one message per field. The first failure for a field wins.
type Fields struct {
	errs map[string]string
}

// Require fails field when value is empty after trimming whitespace.
func (f *Fields) Require(field, value string) {
	f.Check(strings.TrimSpace(value) != "", field, field+" is required")
}

func (f *Fields) Check(ok bool, field, msg string) {
	if ok {
		return
	}
	if f.errs == nil {
		f.errs = make(map[string]string)
	}
	if _, seen := f.errs[field]; !seen {
		f.errs[field] = msg
	}
}

// Map returns nil when every check passed.
func (f *Fields) Map() map[string]string {
	if len(f.errs) == 0 {
		return nil
	}
	return f.errs
}
