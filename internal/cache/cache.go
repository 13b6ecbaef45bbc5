// Package cache persists compiled package output keyed by a content
// digest, so unchanged packages skip recompilation across runs.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/funvibe/pyschema/internal/config"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS package_results (
	digest     TEXT PRIMARY KEY,
	run_id     TEXT NOT NULL,
	created_at TEXT NOT NULL,
	payload    BLOB NOT NULL
);`

// Store is a content-addressed result store backed by a SQLite file.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the store at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	if _, err := db.Exec(schemaDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize cache: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the payload stored under digest, if any.
func (s *Store) Get(digest string) ([]byte, bool, error) {
	var payload []byte
	err := s.db.QueryRow(
		`SELECT payload FROM package_results WHERE digest = ?`, digest,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

// Put stores payload under digest, replacing any previous entry. Each
// write is tagged with a fresh run identifier.
func (s *Store) Put(digest string, payload []byte) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO package_results (digest, run_id, created_at, payload) VALUES (?, ?, ?, ?)`,
		digest, uuid.NewString(), time.Now().UTC().Format(time.RFC3339), payload,
	)
	return err
}

// PackageDigest hashes every source file under packagePath together with
// the filter patterns. Any change to a file's content, the set of files,
// or the patterns yields a new digest.
func PackageDigest(packagePath string, include, exclude []string) (string, error) {
	type entry struct {
		rel string
		sum string
	}
	var entries []entry

	err := filepath.WalkDir(packagePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), config.SourceFileExt) {
			return nil
		}
		rel, err := filepath.Rel(packagePath, path)
		if err != nil {
			return err
		}
		sum, err := fileDigest(path)
		if err != nil {
			return err
		}
		entries = append(entries, entry{rel: filepath.ToSlash(rel), sum: sum})
		return nil
	})
	if err != nil {
		return "", err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].rel < entries[j].rel })

	h := sha256.New()
	for _, pattern := range include {
		fmt.Fprintf(h, "include:%s\n", pattern)
	}
	for _, pattern := range exclude {
		fmt.Fprintf(h, "exclude:%s\n", pattern)
	}
	for _, e := range entries {
		fmt.Fprintf(h, "%s\x00%s\n", e.rel, e.sum)
	}
	digest := hex.EncodeToString(h.Sum(nil))
	logrus.Debugf("Package digest for %s: %s", packagePath, digest)
	return digest, nil
}

func fileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
