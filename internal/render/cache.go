// Package render caches rendered slide bitmaps at the two resolutions the
// app needs: organizer thumbnails and full-size projection images. Entries
// are populated lazily (thumbnails at import, projections when presentation
// mode starts) and re-rendering an entry simply replaces it, so a window
// resize can repeat the work safely.
package render

import (
	"image"
	"sync"
)

// Cache maps global slide ids to rendered bitmaps.
type Cache struct {
	mu          sync.RWMutex
	thumbnails  map[int]image.Image
	projections map[int]image.Image
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{
		thumbnails:  make(map[int]image.Image),
		projections: make(map[int]image.Image),
	}
}

// SetThumbnail stores (or replaces) the organizer thumbnail for a slide.
func (c *Cache) SetThumbnail(id int, img image.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.thumbnails[id] = img
}

// Thumbnail returns the cached thumbnail for a slide.
func (c *Cache) Thumbnail(id int) (image.Image, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.thumbnails[id]
	return img, ok
}

// SetProjection stores (or replaces) the projection image for a slide.
func (c *Cache) SetProjection(id int, img image.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projections[id] = img
}

// Projection returns the cached projection image for a slide.
func (c *Cache) Projection(id int) (image.Image, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.projections[id]
	return img, ok
}

// ProjectionHeight returns the pixel height of a slide's projection image.
func (c *Cache) ProjectionHeight(id int) (int, bool) {
	img, ok := c.Projection(id)
	if !ok {
		return 0, false
	}
	return img.Bounds().Dy(), true
}

// HasProjection reports whether a projection image exists for the slide.
func (c *Cache) HasProjection(id int) bool {
	_, ok := c.Projection(id)
	return ok
}

// ClearProjections drops all projection images. Called when leaving
// presentation mode or when the projector target size changes.
func (c *Cache) ClearProjections() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projections = make(map[int]image.Image)
}
