package filestore

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/jrsteele09/go-shop-admin/credentials"
	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
)

var _ credentials.Persister = (*FileStore)(nil)

var (
	ErrWrongPassphrase  = errors.New("credentials file cannot be opened with this passphrase")
	ErrPassphraseNeeded = errors.New("credentials file is encrypted, passphrase required")
)

const (
	saltLength  = 16
	nonceLength = 24
	keyLength   = 32

	// scrypt parameters recommended for interactive logins
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

// envelope is the on-disk form of an encrypted record.
type envelope struct {
	Salt   []byte `json:"salt"`
	Sealed []byte `json:"sealed"`
}

// FileStore persists credentials as a JSON file readable only by the owner.
// With a passphrase the record is sealed with NaCl secretbox under a
// scrypt-derived key.
type FileStore struct {
	path       string
	passphrase string

	mu   sync.Mutex
	salt []byte
	key  *[keyLength]byte
}

type Option func(*FileStore)

func WithPassphrase(passphrase string) Option {
	return func(f *FileStore) {
		f.passphrase = passphrase
	}
}

func New(path string, opts ...Option) *FileStore {
	f := &FileStore{path: path}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *FileStore) Path() string {
	return f.path
}

// Load returns an empty record when the file does not exist. A plaintext file
// is accepted even with a passphrase set; the next Save encrypts it.
func (f *FileStore) Load() (credentials.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return credentials.Record{}, nil
	}
	if err != nil {
		return credentials.Record{}, fmt.Errorf("[filestore Load] read %s: %w", f.path, err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err == nil && len(env.Sealed) > 0 {
		if f.passphrase == "" {
			return credentials.Record{}, ErrPassphraseNeeded
		}
		if data, err = f.open(env); err != nil {
			return credentials.Record{}, err
		}
	}

	var record credentials.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return credentials.Record{}, fmt.Errorf("[filestore Load] decode %s: %w", f.path, err)
	}
	return record, nil
}

// Save writes the record atomically through a temporary file in the same directory.
func (f *FileStore) Save(record credentials.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("[filestore Save] encode: %w", err)
	}
	if f.passphrase != "" {
		if data, err = f.seal(data); err != nil {
			return err
		}
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("[filestore Save] mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".credentials-*")
	if err != nil {
		return fmt.Errorf("[filestore Save] create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("[filestore Save] write: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("[filestore Save] chmod: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("[filestore Save] close: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("[filestore Save] rename: %w", err)
	}
	return nil
}

// Delete removes the file; a missing file is not an error.
func (f *FileStore) Delete() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("[filestore Delete] %w", err)
	}
	return nil
}

func (f *FileStore) seal(plaintext []byte) ([]byte, error) {
	if f.key == nil {
		salt := make([]byte, saltLength)
		if _, err := rand.Read(salt); err != nil {
			return nil, fmt.Errorf("[filestore seal] salt: %w", err)
		}
		if err := f.deriveKey(salt); err != nil {
			return nil, err
		}
	}

	var nonce [nonceLength]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("[filestore seal] nonce: %w", err)
	}
	sealed := secretbox.Seal(nonce[:], plaintext, &nonce, f.key)
	return json.Marshal(envelope{Salt: f.salt, Sealed: sealed})
}

func (f *FileStore) open(env envelope) ([]byte, error) {
	if len(env.Sealed) < nonceLength+secretbox.Overhead {
		return nil, ErrWrongPassphrase
	}
	if err := f.deriveKey(env.Salt); err != nil {
		return nil, err
	}

	var nonce [nonceLength]byte
	copy(nonce[:], env.Sealed[:nonceLength])
	plaintext, ok := secretbox.Open(nil, env.Sealed[nonceLength:], &nonce, f.key)
	if !ok {
		return nil, ErrWrongPassphrase
	}
	return plaintext, nil
}

// deriveKey caches the key for salt so repeated saves skip scrypt.
func (f *FileStore) deriveKey(salt []byte) error {
	if f.key != nil && string(f.salt) == string(salt) {
		return nil
	}
	derived, err := scrypt.Key([]byte(f.passphrase), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return fmt.Errorf("[filestore deriveKey] %w", err)
	}
	var key [keyLength]byte
	copy(key[:], derived)
	f.salt = append([]byte(nil), salt...)
	f.key = &key
	return nil
}
