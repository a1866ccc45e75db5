package app

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
)

// ============================================================
// Image views — cached bitmaps as data URLs for the frontend
// ============================================================

// GetSlideThumbnail returns the organizer thumbnail for the slide at
// position as a PNG data URL. Returns "" while the thumbnail is still
// rendering (or when rendering is disabled).
func (a *App) GetSlideThumbnail(position int) (string, error) {
	id, ok := a.deck.Order().IDAt(position)
	if !ok {
		return "", fmt.Errorf("no slide at position %d", position)
	}
	img, ok := a.cache.Thumbnail(id)
	if !ok {
		return "", nil
	}
	return encodePNGDataURL(img)
}

// GetProjectionImage returns the current slide's projector bitmap as a PNG
// data URL, or "" when it isn't rendered yet.
func (a *App) GetProjectionImage() (string, error) {
	id, ok := a.deck.Order().CurrentID()
	if !ok {
		return "", nil
	}
	img, ok := a.cache.Projection(id)
	if !ok {
		return "", nil
	}
	return encodePNGDataURL(img)
}

func encodePNGDataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
