// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package keystore

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/H0llyW00dzZ/x509-trust-path-validator/src/internal/helper/gc"
	x509certs "github.com/H0llyW00dzZ/x509-trust-path-validator/src/internal/x509/certs"
)

// ErrNoPaths indicates a [FileSource] without any path to load.
var ErrNoPaths = errors.New("keystore: no paths configured")

// Entry is a certificate with the alias it was loaded under.
type Entry struct {
	Alias string
	Cert  *x509.Certificate
}

// Store is an ordered collection of aliased certificates.
type Store struct {
	entries []Entry
	aliases map[string]int
}

// NewStore creates a Store holding entries in the given order. A repeated
// alias replaces the earlier certificate in place.
func NewStore(entries ...Entry) *Store {
	s := &Store{aliases: make(map[string]int, len(entries))}
	for _, e := range entries {
		s.Add(e.Alias, e.Cert)
	}
	return s
}

// Add appends cert under alias, or replaces the certificate already stored
// under that alias without changing its position.
func (s *Store) Add(alias string, cert *x509.Certificate) {
	if s.aliases == nil {
		s.aliases = make(map[string]int)
	}
	if i, ok := s.aliases[alias]; ok {
		s.entries[i].Cert = cert
		return
	}
	s.aliases[alias] = len(s.entries)
	s.entries = append(s.entries, Entry{Alias: alias, Cert: cert})
}

// Len returns the number of entries.
func (s *Store) Len() int { return len(s.entries) }

// Entries returns a copy of the entries in load order.
func (s *Store) Entries() []Entry {
	return append([]Entry(nil), s.entries...)
}

// Certificates returns the certificates in load order, ready to be used as
// a trust pool.
func (s *Store) Certificates() []*x509.Certificate {
	certs := make([]*x509.Certificate, len(s.entries))
	for i, e := range s.entries {
		certs[i] = e.Cert
	}
	return certs
}

// Lookup returns the certificate stored under alias.
func (s *Store) Lookup(alias string) (*x509.Certificate, bool) {
	i, ok := s.aliases[alias]
	if !ok {
		return nil, false
	}
	return s.entries[i].Cert, true
}

// Merge appends every entry of other, keeping the replace-in-place rule for
// repeated aliases.
func (s *Store) Merge(other *Store) {
	for _, e := range other.entries {
		s.Add(e.Alias, e.Cert)
	}
}

// Source produces a Store.
type Source interface {
	Load(ctx context.Context) (*Store, error)
}

// IsPKCS12 reports whether name carries a PKCS12 keystore extension.
func IsPKCS12(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".p12", ".pfx":
		return true
	}
	return false
}

// knownExtensions are the directory members a FileSource picks up.
var knownExtensions = map[string]struct{}{
	".pem": {}, ".crt": {}, ".cer": {}, ".der": {},
	".p7b": {}, ".p7c": {}, ".p12": {}, ".pfx": {},
}

// Decode turns data into certificates, treating it as a PKCS12 keystore when
// name has a .p12 or .pfx extension and as a PEM, DER or PKCS7 bundle
// otherwise. Data that is not a bundle is retried as PKCS12, which covers
// keystores passed without a file name; the bundle error is kept when that
// fails too.
func Decode(name string, data []byte, password string) ([]*x509.Certificate, error) {
	decoder := x509certs.New()
	if IsPKCS12(name) {
		return decoder.DecodePKCS12(data, password)
	}

	certs, err := decoder.DecodeMultiple(data)
	if err == nil {
		return certs, nil
	}
	if p12, p12Err := decoder.DecodePKCS12(data, password); p12Err == nil {
		return p12, nil
	}
	return nil, err
}

// FileSource loads certificates from files and directories.
type FileSource struct {
	// Paths lists files or directories. Directories are read one level deep.
	Paths []string
	// Password unlocks PKCS12 keystores.
	Password string
}

// Load reads every configured path in order. Certificates are aliased
// "<file path>#<index>", the index counting from zero within each file, so
// files sharing a base name in different directories never replace each
// other.
func (f *FileSource) Load(ctx context.Context) (*Store, error) {
	if len(f.Paths) == 0 {
		return nil, ErrNoPaths
	}

	store := NewStore()
	for _, path := range f.Paths {
		files, err := expand(path)
		if err != nil {
			return nil, fmt.Errorf("keystore: %w", err)
		}

		for _, file := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := f.loadFile(store, file); err != nil {
				return nil, err
			}
		}
	}

	return store, nil
}

func (f *FileSource) loadFile(store *Store, file string) error {
	data, err := gc.ReadFile(file)
	if err != nil {
		return fmt.Errorf("keystore: %w", err)
	}

	certs, err := Decode(file, data, f.Password)
	if err != nil {
		return fmt.Errorf("keystore: %s: %w", file, err)
	}

	for i, cert := range certs {
		store.Add(fmt.Sprintf("%s#%d", file, i), cert)
	}
	return nil
}

// expand resolves path to the files it names.
func expand(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	// os.ReadDir sorts by file name
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if _, ok := knownExtensions[strings.ToLower(filepath.Ext(e.Name()))]; !ok {
			continue
		}
		files = append(files, filepath.Join(path, e.Name()))
	}
	return files, nil
}

// StaticSource serves certificates already held in memory.
type StaticSource struct {
	// Name prefixes the aliases; "static" when empty.
	Name  string
	Certs []*x509.Certificate
}

// Load returns a Store aliasing Certs "<name>#<index>".
func (s *StaticSource) Load(ctx context.Context) (*Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := s.Name
	if name == "" {
		name = "static"
	}

	store := NewStore()
	for i, cert := range s.Certs {
		store.Add(fmt.Sprintf("%s#%d", name, i), cert)
	}
	return store, nil
}

// Sources chains several sources into one, merging their stores in order.
type Sources []Source

// Load loads every source in order and merges the results.
func (ss Sources) Load(ctx context.Context) (*Store, error) {
	store := NewStore()
	for _, src := range ss {
		s, err := src.Load(ctx)
		if err != nil {
			return nil, err
		}
		store.Merge(s)
	}
	return store, nil
}
