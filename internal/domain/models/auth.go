package models

// Credential is one entry of the credential file.
type Credential struct {
	Username string `yaml:"-"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// Session is the per-browser authentication record.
// The zero value (apart from ID) is the logged-out state.
type Session struct {
	ID            string `json:"id"`
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username"`
	DisplayName   string `json:"display_name"`
}

// LoggedIn reports whether the session is in the authenticated state.
func (s Session) LoggedIn() bool { return s.Authenticated }
