package credentials

// Record is the persisted credential state. The JSON tags are the fixed
// storage keys; the values are opaque blobs.
type Record struct {
	AuthToken    string `json:"auth_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	User         string `json:"user,omitempty"` // serialised sessions.Snapshot
}

func (r Record) IsZero() bool {
	return r == Record{}
}

// Persister is durable storage for a Record.
type Persister interface {
	Load() (Record, error)
	Save(record Record) error
	Delete() error
}
