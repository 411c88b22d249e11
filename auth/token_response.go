package auth

import "github.com/jrsteele09/go-shop-admin/internal/utils"

// TokenResponse is the body returned by the login and refresh endpoints.
// Backends disagree on the access token field name, so all known spellings
// are accepted.
type TokenResponse struct {
	// AccessToken is the bearer token, snake_case spelling.
	// Checked first.
	AccessToken *string `json:"access_token,omitempty"`

	// Token is the bearer token as returned by the shop backend.
	// Checked second.
	Token *string `json:"token,omitempty"`

	// AccessTokenCamel is the camelCase spelling. Checked last.
	AccessTokenCamel *string `json:"accessToken,omitempty"`

	// RefreshToken rotates the stored refresh token when present.
	RefreshToken *string `json:"refresh_token,omitempty"`
}

// BearerToken returns the first non-empty access token spelling.
func (r TokenResponse) BearerToken() string {
	for _, t := range []*string{r.AccessToken, r.Token, r.AccessTokenCamel} {
		if v := utils.Value(t); v != "" {
			return v
		}
	}
	return ""
}

// loginFailureFields are probed, in order, for the reason a login response
// carried no token.
var loginFailureFields = []string{"error", "message", "msg"}

func failureReason(fields map[string]any) string {
	reason, _ := utils.FirstText(fields, loginFailureFields...)
	return reason
}
