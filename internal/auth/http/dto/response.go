package dto

// IssueTokenResponse carries the freshly issued access token. The casing of
// the accessToken field is part of the public contract.
type IssueTokenResponse struct {
	AccessToken string `json:"accessToken"`
}
