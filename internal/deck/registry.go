package deck

import (
	"errors"
	"fmt"
)

// ErrUnknownSlide is returned when a global slide id was never registered.
// Under correct sequencing (import before reference) it cannot occur; hitting
// it means the caller lost track of its own ids.
var ErrUnknownSlide = errors.New("unknown slide id")

// Document is the registry's view of a loaded source document. Concrete PDF
// access lives behind this in the pdf package; the registry only needs
// identity and page geometry.
type Document interface {
	Path() string
	PageCount() int
	PagePointSize(index int) (w, h float64, err error)
}

// Opener opens source documents. Open failures are recoverable per file: a
// bad file in a batch import is skipped without aborting the batch.
type Opener interface {
	Open(path string) (Document, error)
}

// PageRef locates a single page inside a registered document.
type PageRef struct {
	Doc       Document
	PageIndex int
}

// Registry assigns session-global slide ids to document pages and resolves
// them back. Ids are allocated monotonically in import order across all
// documents; once assigned, an id's mapping never changes and is never
// reclaimed, so notes stay addressable even for slides removed from the
// order.
type Registry struct {
	opener Opener
	docs   map[string]Document
	order  []string // registration order of document paths
	pages  map[int]PageRef
	nextID int
}

// NewRegistry returns an empty Registry using opener for document loading.
func NewRegistry(opener Opener) *Registry {
	return &Registry{
		opener: opener,
		docs:   make(map[string]Document),
		pages:  make(map[int]PageRef),
	}
}

// RegisterDocument returns the document for path, opening it on first use.
// The same path always yields the same handle.
func (r *Registry) RegisterDocument(path string) (Document, error) {
	if doc, ok := r.docs[path]; ok {
		return doc, nil
	}
	doc, err := r.opener.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	r.docs[path] = doc
	r.order = append(r.order, path)
	return doc, nil
}

// AddPages allocates count new global slide ids, one per page of doc, and
// records each id against its 0-based local page index. A document's pages
// are always registered in one call, in page order.
func (r *Registry) AddPages(doc Document, count int) []int {
	ids := make([]int, 0, count)
	for i := 0; i < count; i++ {
		id := r.nextID
		r.nextID++
		r.pages[id] = PageRef{Doc: doc, PageIndex: i}
		ids = append(ids, id)
	}
	return ids
}

// Resolve maps a global slide id back to its document page.
func (r *Registry) Resolve(id int) (PageRef, error) {
	ref, ok := r.pages[id]
	if !ok {
		return PageRef{}, fmt.Errorf("resolve slide %d: %w", id, ErrUnknownSlide)
	}
	return ref, nil
}

// IDFor returns the global id registered for a document page, if any.
// Used to rebuild an order from a persisted (path, page) layout.
func (r *Registry) IDFor(path string, pageIndex int) (id int, ok bool) {
	for id, ref := range r.pages {
		if ref.Doc.Path() == path && ref.PageIndex == pageIndex {
			return id, true
		}
	}
	return 0, false
}

// Documents returns the registered documents in registration order.
func (r *Registry) Documents() []Document {
	out := make([]Document, 0, len(r.order))
	for _, path := range r.order {
		out = append(out, r.docs[path])
	}
	return out
}

// Len returns the number of registered pages.
func (r *Registry) Len() int {
	return len(r.pages)
}
