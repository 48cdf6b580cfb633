// Package models defines the client-side data types: the cached session and
// partner profile, and the DTOs exchanged with the REST API.
package models

// PartnerProfile is the locally cached profile of the logged-in partner.
// Optional fields are nil when the server has no value.
type PartnerProfile struct {
	ID          int64
	Name        string
	Email       string
	Phone       string
	Address     *string
	PhotoPath   *string
	BankAccount *string
	BirthDate   *string
	Verified    bool
}

// Clone returns a deep copy, so callers can hand out profiles without sharing
// the optional-field pointers.
func (p *PartnerProfile) Clone() *PartnerProfile {
	if p == nil {
		return nil
	}
	c := *p
	c.Address = cloneString(p.Address)
	c.PhotoPath = cloneString(p.PhotoPath)
	c.BankAccount = cloneString(p.BankAccount)
	c.BirthDate = cloneString(p.BirthDate)
	return &c
}

// ProfileUpdate carries the optional changes of a profile update. Nil fields
// are not sent. Photo is a content reference when handed to the coordinator
// and a local file path when handed to the API client.
type ProfileUpdate struct {
	Name        *string
	Address     *string
	BirthDate   *string
	BankAccount *string
	Photo       string
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
