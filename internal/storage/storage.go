package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/sandeepkv93/plantbot/internal/model"
)

const defaultTimeout = 15 * time.Second

// Blob is one remote JSON object, read and written wholesale.
type Blob interface {
	Download(ctx context.Context) ([]byte, error)
	Upload(ctx context.Context, data []byte) error
}

// DocumentStore loads and saves the single document holding all users'
// state. It never fails outwardly: an unreadable or corrupt blob loads as
// an empty document, and a failed save is logged and dropped. There is no
// retrying, versioning or locking; concurrent writers race last-write-wins.
type DocumentStore struct {
	blob    Blob
	log     *slog.Logger
	timeout time.Duration
}

func NewDocumentStore(blob Blob, log *slog.Logger) *DocumentStore {
	return &DocumentStore{blob: blob, log: log, timeout: defaultTimeout}
}

func (s *DocumentStore) Load(ctx context.Context) model.Document {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.blob.Download(ctx)
	if err != nil {
		s.log.Warn("document load failed, starting empty", "error", err)
		return model.Document{}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return model.Document{}
	}
	var doc model.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.log.Warn("document is not valid JSON, starting empty", "error", err)
		return model.Document{}
	}
	if doc == nil {
		doc = model.Document{}
	}
	doc.Normalize()
	return doc
}

func (s *DocumentStore) Save(ctx context.Context, doc model.Document) {
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		s.log.Error("document marshal failed, write dropped", "error", err)
		return
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.blob.Upload(ctx, payload); err != nil {
		s.log.Error("document save failed, write dropped", "error", err)
		return
	}
	s.log.Debug("document saved", "bytes", len(payload))
}
