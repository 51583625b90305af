package domain

import (
	"time"
)

// IssueTokenInput contains the credentials presented at the token endpoint.
type IssueTokenInput struct {
	Username string
	Password string
}

// IssueTokenOutput contains the result of a successful token issuance.
// The access token is only returned once and must be transmitted securely.
type IssueTokenOutput struct {
	AccessToken string
	ExpiresAt   time.Time
}

// Claims is the payload of a self-contained signed token. The authority set is
// frozen at issuance: role or permission changes made afterwards do not take
// effect until the token is re-issued.
type Claims struct {
	Subject     string
	IssuedAt    time.Time
	ExpiresAt   time.Time
	TokenID     string
	Authorities []string
}
