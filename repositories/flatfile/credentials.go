package flatfile

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/gocarina/gocsv"
)

// Credential is one row of the users file
type Credential struct {
	Email        string `csv:"email"`
	PasswordHash string `csv:"password"`
}

type CredentialRepository struct {
	path        string
	mux         sync.RWMutex
	credentials map[string]*Credential
}

// NewCredentialRepository reads the whole users file up front;
// a missing file is treated as an empty one
func NewCredentialRepository(path string) (*CredentialRepository, error) {
	repo := &CredentialRepository{
		path:        path,
		credentials: map[string]*Credential{},
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return repo, nil
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rows := []*Credential{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return repo, nil
		}
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	for _, row := range rows {
		repo.credentials[NormalizeEmail(row.Email)] = row
	}

	return repo, nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *CredentialRepository) Find(email string) (*Credential, bool) {
	r.mux.RLock()
	defer r.mux.RUnlock()

	c, ok := r.credentials[NormalizeEmail(email)]
	return c, ok
}

func (r *CredentialRepository) Count() int {
	r.mux.RLock()
	defer r.mux.RUnlock()

	return len(r.credentials)
}

// Append adds the credential to the users file, then to memory.
// It reports false when the email is already registered.
func (r *CredentialRepository) Append(c Credential) (bool, error) {
	r.mux.Lock()
	defer r.mux.Unlock()

	key := NormalizeEmail(c.Email)
	if _, exists := r.credentials[key]; exists {
		return false, nil
	}
	c.Email = key

	f, err := os.OpenFile(r.path, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0600)
	if err != nil {
		return false, fmt.Errorf("opening %s: %w", r.path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", r.path, err)
	}

	rows := []*Credential{&c}
	if info.Size() == 0 {
		err = gocsv.Marshal(&rows, f)
	} else {
		err = gocsv.MarshalWithoutHeaders(&rows, f)
	}
	if err != nil {
		return false, fmt.Errorf("appending to %s: %w", r.path, err)
	}

	r.credentials[key] = &c
	return true, nil
}
