package models

import "time"

// Credential is one stored secret. A row with SharedToID == nil is an
// original, encrypted under the owner's vault key; a row with SharedToID set
// is a shared copy, encrypted under the system secret. Login and Secret hold
// ciphertext at rest and plaintext only transiently inside a request.
type Credential struct {
	ID         string
	OwnerID    string
	SharedToID *string
	URL        string
	Login      string
	Secret     string
	Label      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsShared reports whether the row is a shared copy.
func (c *Credential) IsShared() bool {
	return c.SharedToID != nil
}

// SharedCredential is a listing row for the sharing views. RecipientEmail is
// set when listing credentials the owner shared out; OwnerEmail is set when
// listing credentials shared with the user.
type SharedCredential struct {
	ID             string
	URL            string
	Login          string
	Secret         string
	Label          string
	OwnerEmail     string
	RecipientEmail string
}
