package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/medtrack/medtrack/internal/platform/fhir"
)

// ErrNotFound is returned when no account matches the requested username.
var ErrNotFound = errors.New("account not found")

// Repository reads and writes login accounts.
type Repository interface {
	// GetByUsername returns the account with the given username, or
	// ErrNotFound.
	GetByUsername(ctx context.Context, username string) (*Account, error)
	// SaveAll overwrites the account store in full. Used by seeding only.
	SaveAll(ctx context.Context, accounts []Account) error
}

// FileRepo stores accounts as a single JSON array file.
type FileRepo struct {
	path string
}

func NewFileRepo(path string) *FileRepo {
	return &FileRepo{path: path}
}

func (r *FileRepo) load() ([]Account, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	var accounts []Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}
	return accounts, nil
}

// All returns every stored account. A missing file reads as empty.
func (r *FileRepo) All(ctx context.Context) ([]Account, error) {
	return r.load()
}

func (r *FileRepo) GetByUsername(ctx context.Context, username string) (*Account, error) {
	accounts, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].Username == username {
			return &accounts[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *FileRepo) SaveAll(ctx context.Context, accounts []Account) error {
	if err := fhir.WriteJSONAtomic(r.path, accounts); err != nil {
		return fmt.Errorf("write %s: %w", r.path, err)
	}
	return nil
}
