package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/medtrack/medtrack/internal/platform/fhir"
)

// FileRepo stores the profile as a single JSON document, fully overwritten
// on each save.
type FileRepo struct {
	path string
}

func NewFileRepo(path string) *FileRepo {
	return &FileRepo{path: path}
}

func (r *FileRepo) Load(ctx context.Context) (*Profile, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}
	return &p, nil
}

func (r *FileRepo) Save(ctx context.Context, p *Profile) error {
	if err := fhir.WriteJSONAtomic(r.path, p); err != nil {
		return fmt.Errorf("write %s: %w", r.path, err)
	}
	return nil
}
