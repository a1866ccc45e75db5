package present

// Frame is the vertical placement of a projection image in the projector
// viewport. When the image fits, it is centered; when it is taller than the
// viewport, only a viewport-height slice is shown, positioned by the
// vertical offset.
type Frame struct {
	// SourceY and SourceHeight select the slice of the image to draw.
	SourceY      float64 `json:"sourceY"`
	SourceHeight float64 `json:"sourceHeight"`
	// DestY is where the slice lands in the viewport.
	DestY float64 `json:"destY"`
	// Centered is true when the whole image fits and is centered vertically.
	Centered bool `json:"centered"`
}

// ProjectorFrame computes the framing for an image of imageHeight pixels in
// a viewport of viewportHeight pixels at the given vertical offset in [0,1].
func ProjectorFrame(imageHeight, viewportHeight int, offset float64) Frame {
	if offset < 0 {
		offset = 0
	} else if offset > 1 {
		offset = 1
	}

	ih := float64(imageHeight)
	vh := float64(viewportHeight)

	if ih <= vh {
		return Frame{
			SourceY:      0,
			SourceHeight: ih,
			DestY:        (vh - ih) / 2,
			Centered:     true,
		}
	}
	return Frame{
		SourceY:      (ih - vh) * offset,
		SourceHeight: vh,
		DestY:        0,
	}
}
