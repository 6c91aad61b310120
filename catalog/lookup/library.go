package lookup

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/ultrafast-optics/ultrafast/catalog"
)

// LibraryFile is the index the catalog mirror ships at its root.
const LibraryFile = "library.yml"

// Shelf, Book, and Page mirror the library index structure. The upper-case
// keys follow the database file convention.
type Shelf struct {
	Shelf   string `yaml:"SHELF"`
	Name    string `yaml:"name,omitempty"`
	Content []Book `yaml:"content"`
}

type Book struct {
	Book    string `yaml:"BOOK"`
	Name    string `yaml:"name,omitempty"`
	Content []Page `yaml:"content"`
}

type Page struct {
	Page string `yaml:"PAGE"`
	Name string `yaml:"name,omitempty"`
	Data string `yaml:"data"`
}

// PageRef is a resolved library page: its address within the index plus the
// entry file path inside the mirror.
type PageRef struct {
	Shelf     string
	Book      string
	Page      string
	ShelfName string
	BookName  string
	PageName  string
	Path      string
}

// ID returns the canonical "shelf/book/page" identifier.
func (p PageRef) ID() string {
	return p.Shelf + "/" + p.Book + "/" + p.Page
}

func loadLibrary(fsys fs.FS) ([]Shelf, error) {
	f, err := fsys.Open(LibraryFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var shelves []Shelf

	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&shelves); err != nil {
		return nil, &catalog.ParseError{Name: LibraryFile, Err: err}
	}

	return shelves, nil
}

func indexPages(shelves []Shelf) ([]PageRef, map[string]PageRef) {
	var pages []PageRef
	byID := make(map[string]PageRef)

	for _, s := range shelves {
		for _, b := range s.Content {
			for _, p := range b.Content {
				ref := PageRef{
					Shelf:     s.Shelf,
					Book:      b.Book,
					Page:      p.Page,
					ShelfName: s.Name,
					BookName:  b.Name,
					PageName:  p.Name,
					Path:      p.Data,
				}

				pages = append(pages, ref)
				byID[ref.ID()] = ref
			}
		}
	}

	return pages, byID
}

func validatePage(p PageRef) error {
	if p.Path == "" {
		return fmt.Errorf("lookup: page %s has no data path", p.ID())
	}

	return nil
}
