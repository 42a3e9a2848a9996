package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/sandeepkv93/plantbot/internal/model"
)

type fakeBlob struct {
	data        []byte
	downloadErr error
	uploadErr   error
	uploads     [][]byte
}

func (b *fakeBlob) Download(context.Context) ([]byte, error) {
	if b.downloadErr != nil {
		return nil, b.downloadErr
	}
	return b.data, nil
}

func (b *fakeBlob) Upload(_ context.Context, data []byte) error {
	if b.uploadErr != nil {
		return b.uploadErr
	}
	b.uploads = append(b.uploads, data)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadDegradesToEmptyOnError(t *testing.T) {
	store := NewDocumentStore(&fakeBlob{downloadErr: errors.New("boom")}, testLogger())
	doc := store.Load(context.Background())
	if doc == nil || len(doc) != 0 {
		t.Fatalf("expected empty document, got: %v", doc)
	}
}

func TestLoadDegradesToEmptyOnCorruptJSON(t *testing.T) {
	store := NewDocumentStore(&fakeBlob{data: []byte("{not json")}, testLogger())
	doc := store.Load(context.Background())
	if len(doc) != 0 {
		t.Fatalf("expected empty document, got: %v", doc)
	}

	store = NewDocumentStore(&fakeBlob{data: []byte("   ")}, testLogger())
	if doc = store.Load(context.Background()); len(doc) != 0 {
		t.Fatalf("expected empty document for blank blob, got: %v", doc)
	}
}

func TestLoadNormalizesLegacyDocument(t *testing.T) {
	raw := []byte(`{"42":{"plants":[{"name":"Monstera","age":"6 months","added":"2026-01-01 10:00:00","tasks":[{"title":"Water","interval_days":0,"done_today":false}]}]}}`)
	store := NewDocumentStore(&fakeBlob{data: raw}, testLogger())

	doc := store.Load(context.Background())
	p := doc["42"].Plants[0]
	if p.ID == "" || p.Tasks[0].ID == "" {
		t.Fatal("expected IDs assigned to legacy document")
	}
	if p.Tasks[0].IntervalDays != model.DefaultIntervalDays {
		t.Fatalf("expected repaired interval, got %d", p.Tasks[0].IntervalDays)
	}
}

func TestSaveDropsWriteOnFailure(t *testing.T) {
	blob := &fakeBlob{uploadErr: errors.New("unreachable")}
	store := NewDocumentStore(blob, testLogger())
	store.Save(context.Background(), model.Document{"42": {Plants: []model.Plant{}}})
	if len(blob.uploads) != 0 {
		t.Fatal("expected no successful upload")
	}
}

func TestSaveAndReloadRoundTrip(t *testing.T) {
	blob := &fakeBlob{}
	store := NewDocumentStore(blob, testLogger())

	doc := model.Document{}
	rec := doc.User("42")
	rec.Plants = append(rec.Plants, model.Plant{
		ID:    rec.MintPlantID(),
		Name:  "Fern",
		Age:   "1 year",
		Added: "2026-01-01 10:00:00",
		Tasks: []model.Task{{ID: rec.MintTaskID(), Title: "Water", Description: "d", IntervalDays: 3}},
	})
	store.Save(context.Background(), doc)
	if len(blob.uploads) != 1 {
		t.Fatalf("expected 1 upload, got %d", len(blob.uploads))
	}

	blob.data = blob.uploads[0]
	loaded := store.Load(context.Background())
	got := loaded["42"].Plants[0]
	if got.Name != "Fern" || got.Tasks[0].IntervalDays != 3 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestFileBlobRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "plants.json")
	blob := NewFileBlob(path)

	if _, err := blob.Download(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}
	if err := blob.Upload(context.Background(), []byte(`{"42":{"plants":[]}}`)); err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	raw, err := blob.Download(context.Background())
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	store := NewDocumentStore(blob, testLogger())
	if doc := store.Load(context.Background()); doc["42"] == nil {
		t.Fatalf("expected stored user record, raw: %s", raw)
	}
}
