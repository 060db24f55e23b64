package testutil

import (
	"context"
	"path"
	"sync"

	ierr "github.com/betulabla/foundation/internal/errors"
	"github.com/betulabla/foundation/internal/s3"
)

var _ s3.Service = (*InMemoryS3)(nil)

// InMemoryS3 keeps uploaded documents in a map
type InMemoryS3 struct {
	mu      sync.RWMutex
	objects map[string]*s3.Document
}

func NewInMemoryS3() *InMemoryS3 {
	return &InMemoryS3{objects: make(map[string]*s3.Document)}
}

func (s *InMemoryS3) ObjectKey(docType s3.DocumentType, ownerID, fileName string) string {
	return path.Join(string(docType), ownerID, fileName)
}

func (s *InMemoryS3) UploadDocument(ctx context.Context, document *s3.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *document
	s.objects[document.Key] = &c
	return nil
}

func (s *InMemoryS3) GetPresignedUrl(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.objects[key]; !ok {
		return "", ierr.NewError("object not found").
			WithHint("Document not found").
			Mark(ierr.ErrNotFound)
	}
	return "https://media.test/" + key, nil
}

func (s *InMemoryS3) DeleteDocument(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *InMemoryS3) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok, nil
}

// Get returns the stored document, nil when absent
func (s *InMemoryS3) Get(key string) *s3.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.objects[key]
}

// Len reports how many objects are stored
func (s *InMemoryS3) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

func (s *InMemoryS3) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = make(map[string]*s3.Document)
}
