package models

// Session mirrors the credential store. Zero values mean absent.
type Session struct {
	Token     string
	Email     string
	PartnerID int64
}

// LoggedIn reports whether a token is cached.
func (s Session) LoggedIn() bool {
	return s.Token != ""
}
