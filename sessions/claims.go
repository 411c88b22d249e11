package sessions

import (
	"encoding/json"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-shop-admin/internal/utils"
)

// Claim and response field names probed in priority order; the first
// present non-empty value wins.
var (
	idClaims   = []string{"sub", "userId"}
	emailClaim = []string{"email"}
	nameClaims = []string{"name", "username"}
	roleClaims = []string{"role"}

	idFields    = []string{"id"}
	emailFields = []string{"email"}
	nameFields  = []string{"name"}
	roleFields  = []string{"role"}
)

// DecodeClaims reads the payload of a JWT without verifying its signature.
// It returns nil when the token is not a decodable JWT.
func DecodeClaims(rawToken string) map[string]any {
	if strings.TrimSpace(rawToken) == "" {
		return nil
	}
	token, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return nil
	}
	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil
	}
	return claims
}

// Derive builds a snapshot from the token claims first, then the login
// response (its nested "user" object before its top level fields), then the
// email used to sign in.
func Derive(rawToken string, response map[string]any, loginEmail string) *Snapshot {
	claims := DecodeClaims(rawToken)
	user, _ := response["user"].(map[string]any)

	pick := func(claimFields, responseFields []string, fallback string) string {
		if s, ok := utils.FirstString(claims, claimFields...); ok {
			return s
		}
		if s, ok := utils.FirstString(user, responseFields...); ok {
			return s
		}
		if s, ok := utils.FirstString(response, responseFields...); ok {
			return s
		}
		return fallback
	}

	localPart, _, _ := strings.Cut(loginEmail, "@")
	s := &Snapshot{
		ID:    pick(idClaims, idFields, ""),
		Email: pick(emailClaim, emailFields, loginEmail),
		Name:  pick(nameClaims, nameFields, localPart),
		Role:  pick(roleClaims, roleFields, ""),
	}
	if s.Role == "" {
		if roles, ok := claims["roles"].([]any); ok {
			if r := utils.ToStringSlice(roles); len(r) > 0 {
				s.Role = r[0]
			}
		}
	}
	if s.Role == "" {
		s.Role = RoleClient
	}
	s.Rut, _ = utils.FirstString(user, "rut")
	s.Address, _ = utils.FirstString(user, "address")
	s.Phone, _ = utils.FirstString(user, "phone")
	return s
}

// Marshal renders the snapshot for storage under a fixed key.
func (s *Snapshot) Marshal() string {
	if s == nil {
		return ""
	}
	b, _ := json.Marshal(s)
	return string(b)
}

// Unmarshal is total: a blob that cannot be read yields nil.
func Unmarshal(blob string) *Snapshot {
	if blob == "" {
		return nil
	}
	var s Snapshot
	if err := json.Unmarshal([]byte(blob), &s); err != nil {
		return nil
	}
	return &s
}

// Expiry reads the exp claim without verifying the token.
func Expiry(rawToken string) (time.Time, bool) {
	exp, ok := DecodeClaims(rawToken)["exp"].(float64)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(int64(exp), 0), true
}
