// Package credential holds the single saved login for the registration site.
package credential

import (
	"strings"

	"github.com/garrettladley/sugang/internal/validator"
)

type Credentials struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	AutoLogin bool   `json:"autoLogin"`
	SaveInfo  bool   `json:"saveInfo"`
}

var _ validator.Validator = Credentials{}

func (c Credentials) Validate() map[string]string {
	var f validator.Fields
	f.Require("username", c.Username)
	f.Require("password", c.Password)
	return f.Map()
}

// Normalize trims surrounding whitespace from both fields.
func (c Credentials) Normalize() Credentials {
	c.Username = strings.TrimSpace(c.Username)
	c.Password = strings.TrimSpace(c.Password)
	return c
}

// Payload is what the settings form submits. Absent flags default to true.
type Payload struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	AutoLogin *bool  `json:"autoLogin,omitempty"`
	SaveInfo  *bool  `json:"saveInfo,omitempty"`
}

// Credentials converts and validates the payload.
func (p Payload) Credentials() (Credentials, error) {
	c := Credentials{
		Username:  p.Username,
		Password:  p.Password,
		AutoLogin: p.AutoLogin == nil || *p.AutoLogin,
		SaveInfo:  p.SaveInfo == nil || *p.SaveInfo,
	}.Normalize()
	if err := validator.Validate(c); err != nil {
		return Credentials{}, err
	}
	return c, nil
}

// Masked renders the password as asterisks for display.
func (c Credentials) Masked() string {
	return strings.Repeat("*", len([]rune(c.Password)))
}
