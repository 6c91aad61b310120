// Package lookup resolves material identifiers against a local mirror of a
// refractiveindex.info-style catalog.
//
// A mirror is any fs.FS holding entry files, optionally indexed by a
// library.yml at its root (shelves → books → pages). Identifiers take the
// "shelf/book/page" form; raw entry paths inside the mirror are accepted as
// a fallback for mirrors without an index. Parsed entries are cached in an
// LRU, so repeated lookups of popular materials do not re-read the mirror.
package lookup

import (
	"errors"
	"fmt"
	"io/fs"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"github.com/ultrafast-optics/ultrafast/catalog"
	"github.com/ultrafast-optics/ultrafast/optics/material"
)

const defaultCacheSize = 128

// NotFoundError reports an identifier absent from the mirror.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("lookup: material %q not found in catalog", e.ID)
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger attaches a logger; the default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Catalog) { c.log = log }
}

// WithCacheSize sets the parsed-entry cache capacity.
func WithCacheSize(n int) Option {
	return func(c *Catalog) { c.cacheSize = n }
}

// Catalog is a read-only client for one mirror. It is immutable after Open;
// the entry cache is internally synchronized.
type Catalog struct {
	fsys      fs.FS
	log       zerolog.Logger
	cacheSize int
	cache     *lru.Cache[string, *catalog.Entry]
	pages     []PageRef
	byID      map[string]PageRef
}

// Open loads the mirror's library index when present. A mirror without a
// library.yml still serves lookups by raw entry path.
func Open(fsys fs.FS, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		fsys:      fsys,
		log:       zerolog.Nop(),
		cacheSize: defaultCacheSize,
	}

	for _, opt := range opts {
		opt(c)
	}

	cache, err := lru.New[string, *catalog.Entry](c.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("lookup: cache: %w", err)
	}

	c.cache = cache

	shelves, err := loadLibrary(fsys)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		c.byID = map[string]PageRef{}
	case err != nil:
		return nil, err
	default:
		c.pages, c.byID = indexPages(shelves)
	}

	c.log.Debug().Int("pages", len(c.pages)).Msg("catalog mirror opened")

	return c, nil
}

// Pages returns the indexed library pages.
func (c *Catalog) Pages() []PageRef {
	out := make([]PageRef, len(c.pages))
	copy(out, c.pages)

	return out
}

// Resolve maps an identifier to a library page. Identifiers missing from
// the index resolve as raw entry paths when such a file exists.
func (c *Catalog) Resolve(id string) (PageRef, error) {
	if ref, ok := c.byID[id]; ok {
		return ref, validatePage(ref)
	}

	for _, path := range []string{id, id + ".yml"} {
		if info, err := fs.Stat(c.fsys, path); err == nil && !info.IsDir() {
			return PageRef{Page: id, Path: path}, nil
		}
	}

	return PageRef{}, &NotFoundError{ID: id}
}

// Entry returns the parsed catalog record for an identifier.
func (c *Catalog) Entry(id string) (*catalog.Entry, error) {
	ref, err := c.Resolve(id)
	if err != nil {
		return nil, err
	}

	if entry, ok := c.cache.Get(ref.Path); ok {
		c.log.Debug().Str("id", id).Str("path", ref.Path).Msg("entry cache hit")
		return entry, nil
	}

	f, err := c.fsys.Open(ref.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{ID: id}
		}

		return nil, fmt.Errorf("lookup: open %s: %w", ref.Path, err)
	}
	defer f.Close()

	entry, err := catalog.Decode(f)
	if err != nil {
		var parseErr *catalog.ParseError
		if errors.As(err, &parseErr) {
			return nil, &catalog.ParseError{Name: ref.Path, Err: parseErr.Err}
		}

		return nil, err
	}

	c.cache.Add(ref.Path, entry)
	c.log.Debug().Str("id", id).Str("path", ref.Path).Msg("entry loaded")

	return entry, nil
}

// Lookup resolves an identifier to a bounded material.
func (c *Catalog) Lookup(id string) (*material.Material, error) {
	return c.LookupWith(id, catalog.BuildOptions{})
}

// LookupWith resolves an identifier with explicit build options.
func (c *Catalog) LookupWith(id string, opts catalog.BuildOptions) (*material.Material, error) {
	entry, err := c.Entry(id)
	if err != nil {
		return nil, err
	}

	return entry.Build(id, opts)
}
