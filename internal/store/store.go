// Package store persists documents and their analyses in a bolt database.
// Records are JSON encoded and snappy compressed.
package store

import (
	"bytes"
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/boltdb/bolt"
	"github.com/golang/snappy"
	"github.com/google/uuid"

	"github.com/tsawler/lexico"
)

// ErrNotFound is returned when a document or analysis does not exist.
var ErrNotFound = errors.New("not found")

var (
	bucketDocuments  = []byte("documents")
	bucketAnalyses   = []byte("analyses")
	bucketByDocument = []byte("analyses_by_document")
)

// Document is a stored text.
type Document struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Language  lexico.Language `json:"language"`
	Text      string          `json:"text,omitempty"`
	Size      int             `json:"size"`
	CreatedAt time.Time       `json:"created_at"`
}

// Analysis is a persisted analysis of a document.
type Analysis struct {
	ID         string                 `json:"id"`
	DocumentID string                 `json:"document_id"`
	CreatedAt  time.Time              `json:"created_at"`
	Duration   time.Duration          `json:"duration"`
	Result     *lexico.AnalysisResult `json:"result"`
	Stats      lexico.Stats           `json:"stats"`
}

// Store provides persistent storage for documents and analyses using BoltDB.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the database in dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	db, err := bolt.Open(filepath.Join(dir, "lexico.db"), 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketDocuments, bucketAnalyses, bucketByDocument} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialise buckets: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// PutDocument stores doc, assigning an ID and creation time when missing.
func (s *Store) PutDocument(doc *Document) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	doc.Size = len(doc.Text)

	return s.db.Update(func(tx *bolt.Tx) error {
		return put(tx.Bucket(bucketDocuments), doc.ID, doc)
	})
}

// Document returns the document with the given ID.
func (s *Store) Document(id string) (*Document, error) {
	var doc Document
	err := s.db.View(func(tx *bolt.Tx) error {
		return get(tx.Bucket(bucketDocuments), id, &doc)
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Documents lists every document without its text, oldest first.
func (s *Store) Documents() ([]Document, error) {
	docs := []Document{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketDocuments).ForEach(func(k, v []byte) error {
			var doc Document
			if err := decode(v, &doc); err != nil {
				return fmt.Errorf("document %s: %w", k, err)
			}
			doc.Text = ""
			docs = append(docs, doc)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(docs, func(a, b Document) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return docs, nil
}

// PutAnalysis stores a, assigning an ID and creation time when missing. The
// referenced document must exist.
func (s *Store) PutAnalysis(a *Analysis) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketDocuments).Get([]byte(a.DocumentID)) == nil {
			return fmt.Errorf("document %s: %w", a.DocumentID, ErrNotFound)
		}
		if err := put(tx.Bucket(bucketAnalyses), a.ID, a); err != nil {
			return err
		}
		created, err := a.CreatedAt.MarshalBinary()
		if err != nil {
			return err
		}
		return tx.Bucket(bucketByDocument).Put(indexKey(a.DocumentID, a.ID), created)
	})
}

// Analysis returns the analysis with the given ID.
func (s *Store) Analysis(id string) (*Analysis, error) {
	var a Analysis
	err := s.db.View(func(tx *bolt.Tx) error {
		return get(tx.Bucket(bucketAnalyses), id, &a)
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// AnalysisIDs returns the IDs of the analyses of a document, oldest first.
func (s *Store) AnalysisIDs(documentID string) ([]string, error) {
	type entry struct {
		id      string
		created time.Time
	}
	entries := []entry{}
	prefix := indexKey(documentID, "")
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketByDocument).Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			e := entry{id: string(k[len(prefix):])}
			if err := e.created.UnmarshalBinary(v); err != nil {
				return fmt.Errorf("analysis %s: %w", e.id, err)
			}
			entries = append(entries, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(entries, func(a, b entry) int {
		if c := a.created.Compare(b.created); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.id
	}
	return ids, nil
}

func indexKey(documentID, analysisID string) []byte {
	return []byte(documentID + "/" + analysisID)
}

func put(b *bolt.Bucket, id string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.Put([]byte(id), snappy.Encode(nil, data))
}

func get(b *bolt.Bucket, id string, v any) error {
	data := b.Get([]byte(id))
	if data == nil {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return decode(data, v)
}

func decode(data []byte, v any) error {
	raw, err := snappy.Decode(nil, data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
