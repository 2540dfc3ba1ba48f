package resume

import (
	"context"
	"errors"
	"testing"

	"jobflow/internal/store"
)

type memDocs struct {
	m map[string][]byte
}

func (d *memDocs) GetDocument(_ context.Context, name string) ([]byte, error) {
	b, ok := d.m[name]
	if !ok {
		return nil, store.ErrNotFound
	}
	return b, nil
}

func (d *memDocs) PutDocument(_ context.Context, name string, content []byte) error {
	if d.m == nil {
		d.m = map[string][]byte{}
	}
	d.m[name] = content
	return nil
}

func TestServiceGetMissing(t *testing.T) {
	svc := NewService(&memDocs{})
	if _, err := svc.Get(context.Background()); !errors.Is(err, ErrMissing) {
		t.Fatalf("expected ErrMissing, got %v", err)
	}
}

func TestServiceGetCorrupt(t *testing.T) {
	svc := NewService(&memDocs{m: map[string][]byte{DocumentName: []byte("{broken")}})
	if _, err := svc.Get(context.Background()); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestServicePutGetRoundTrip(t *testing.T) {
	docs := &memDocs{}
	svc := NewService(docs)

	in := &Resume{
		Basics: Basics{Name: "Test User", Label: "Engineer"},
		Skills: []Skill{{Name: "Go", Keywords: []string{"concurrency"}}},
	}
	if err := svc.Put(context.Background(), in); err != nil {
		t.Fatalf("put: %v", err)
	}

	out, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if out.Basics.Name != "Test User" || len(out.Skills) != 1 {
		t.Fatalf("round trip lost data: %+v", out)
	}
}

func TestServicePutRejectsMissingName(t *testing.T) {
	svc := NewService(&memDocs{})
	err := svc.Put(context.Background(), &Resume{})
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}
