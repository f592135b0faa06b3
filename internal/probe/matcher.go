package probe

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Matcher holds the ordered selector candidates. Earlier entries win.
type Matcher struct {
	MainFrame string   `yaml:"main_frame" json:"mainFrame"`
	Username  []string `yaml:"username" json:"username"`
	Password  []string `yaml:"password" json:"password"`
	Button    []string `yaml:"button" json:"button"`
}

func DefaultMatcher() Matcher {
	return Matcher{
		MainFrame: `iframe[name="Main"], iframe#Main`,
		Username: []string{
			`input[name="id"]`,
			`input#id`,
			`.input-id`,
			`input[name="userid"]`,
			`input[name="username"]`,
			`input[name="student_id"]`,
			`input#userId`,
			`input#userid`,
			`input#loginId`,
			`input[type="text"]:not([name="captcha"])`,
		},
		Password: []string{
			`input[name="pwd"]`,
			`input#pwd`,
			`.input-pw`,
			`input[name="password"]`,
			`input[name="passwd"]`,
			`input#password`,
			`input#passwd`,
			`input[type="password"]`,
		},
		Button: []string{
			`button#btn-login`,
			`.btn-login`,
			`button[type="button"]`,
			`input[type="submit"]`,
			`button[type="submit"]`,
			`.btn_login`,
			`.login_btn`,
		},
	}
}

// LoadMatcher overlays the YAML file at path on the defaults. Each list in
// the file replaces the default list wholesale; omitted keys keep defaults.
// A missing file yields the defaults.
func LoadMatcher(path string) (Matcher, error) {
	m := DefaultMatcher()
	if path == "" {
		return m, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return Matcher{}, fmt.Errorf("failed to read selectors file: %w", err)
	}

	var override Matcher
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Matcher{}, fmt.Errorf("failed to parse selectors file %s: %w", path, err)
	}
	if override.MainFrame != "" {
		m.MainFrame = override.MainFrame
	}
	if len(override.Username) > 0 {
		m.Username = override.Username
	}
	if len(override.Password) > 0 {
		m.Password = override.Password
	}
	if len(override.Button) > 0 {
		m.Button = override.Button
	}
	return m, nil
}

// Marshal renders the matcher as YAML, the format LoadMatcher reads.
func (m Matcher) Marshal() ([]byte, error) {
	return yaml.Marshal(m)
}
