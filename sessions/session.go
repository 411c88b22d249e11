package sessions

// RoleClient is the role assumed when neither the token nor the login
// response names one.
const RoleClient = "client"

// Snapshot is a locally cached copy of the signed-in user's identity.
// It is derived from unverified token claims or login response fields and is
// only a display hint. The backend stays authoritative for every access
// decision.
type Snapshot struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Rut     string `json:"rut,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// IsAdmin reports whether any role is present. Admin pages rely on the
// backend to reject non-admin tokens.
func (s *Snapshot) IsAdmin() bool {
	return s != nil && s.Role != ""
}

func (s *Snapshot) IsClient() bool {
	return s != nil && s.Role == RoleClient
}
