package resume

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"jobflow/internal/store"
)

// DocumentName is the single key the master resume lives under.
const DocumentName = "resume.json"

// ErrMissing means no resume has been uploaded yet; ErrCorrupt means
// the stored document is not valid JSON. Callers treat the two
// differently, so they stay distinct.
var (
	ErrMissing = errors.New("no resume stored")
	ErrCorrupt = errors.New("stored resume is corrupted")
)

// Documents is the slice of the store the service needs.
type Documents interface {
	GetDocument(ctx context.Context, name string) ([]byte, error)
	PutDocument(ctx context.Context, name string, content []byte) error
}

type Service struct {
	docs Documents
}

func NewService(docs Documents) *Service {
	return &Service{docs: docs}
}

// Get loads the master resume.
func (s *Service) Get(ctx context.Context) (*Resume, error) {
	raw, err := s.docs.GetDocument(ctx, DocumentName)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrMissing
	}
	if err != nil {
		return nil, fmt.Errorf("load resume: %w", err)
	}

	var r Resume
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, ErrCorrupt
	}
	return &r, nil
}

// Put validates and stores the resume, replacing whatever was there.
func (s *Service) Put(ctx context.Context, r *Resume) error {
	if err := r.Validate(); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode resume: %w", err)
	}
	if err := s.docs.PutDocument(ctx, DocumentName, raw); err != nil {
		return fmt.Errorf("store resume: %w", err)
	}
	return nil
}
