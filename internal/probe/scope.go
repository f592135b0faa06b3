package probe

// Access is the tri-state outcome of inspecting one scope.
type Access int

const (
	// AccessInaccessible means the frame's document could not be read.
	AccessInaccessible Access = iota
	AccessNoMatch
	AccessMatch
)

func (a Access) String() string {
	switch a {
	case AccessMatch:
		return "match"
	case AccessNoMatch:
		return "no_match"
	default:
		return "inaccessible"
	}
}

const (
	ScopeMain     = "main"
	ScopeDocument = "document"
)

// ScopeReport is what the page reports for one document it searched.
// Username and Password hold the winning selector, or "" when none matched.
type ScopeReport struct {
	Scope      string `json:"scope"`
	Accessible bool   `json:"accessible"`
	Username   string `json:"username"`
	Password   string `json:"password"`
}

func (r ScopeReport) Access() Access {
	switch {
	case !r.Accessible:
		return AccessInaccessible
	case r.Username != "" && r.Password != "":
		return AccessMatch
	default:
		return AccessNoMatch
	}
}

// Resolve picks the first scope, in search order, where both fields matched.
func Resolve(reports []ScopeReport) (ScopeReport, bool) {
	for _, r := range reports {
		if r.Access() == AccessMatch {
			return r, true
		}
	}
	return ScopeReport{}, false
}
