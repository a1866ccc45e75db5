package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerResources() {
	// ── deck://slides ──────────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		"deck://slides",
		"Presentation Order",
		mcp.WithMIMEType("application/json"),
	), s.handleSlidesResource)

	// ── deck://slide/{position}/notes ──────────────────
	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"deck://slide/{position}/notes",
			"Speaker Notes of a Slide",
		),
		s.handleSlideNotesResource,
	)
}

func (s *Server) handleSlidesResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	state := s.deck.State()

	data, _ := json.MarshalIndent(state.Slides, "", "  ")
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "deck://slides",
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) handleSlideNotesResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	position, ok := positionFromURI(uri)
	if !ok {
		return nil, fmt.Errorf("could not extract position from URI: %s", uri)
	}
	if position < 0 || position >= s.deck.Order().Len() {
		return nil, fmt.Errorf("no slide at position %d", position)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     s.present.NotesFor(position),
		},
	}, nil
}

// positionFromURI extracts the position from "deck://slide/{position}/notes".
func positionFromURI(uri string) (int, bool) {
	const prefix = "deck://slide/"
	const suffix = "/notes"
	if !strings.HasPrefix(uri, prefix) || !strings.HasSuffix(uri, suffix) {
		return 0, false
	}
	middle := strings.TrimSuffix(strings.TrimPrefix(uri, prefix), suffix)
	position, err := strconv.Atoi(middle)
	if err != nil {
		return 0, false
	}
	return position, true
}
