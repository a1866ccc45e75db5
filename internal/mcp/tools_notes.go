package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerNotesTools() {
	// ── get_notes ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("get_notes",
		mcp.WithDescription("Read the speaker notes of a slide. Without a position, returns the current slide's notes."),
		mcp.WithNumber("position", mcp.Description("Position of the slide (optional, defaults to current)")),
	), s.handleGetNotes)

	// ── set_notes ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("set_notes",
		mcp.WithDescription("Replace the speaker notes of a slide. Without a position, edits the current slide."),
		mcp.WithString("text", mcp.Description("New notes text"), mcp.Required()),
		mcp.WithNumber("position", mcp.Description("Position of the slide (optional, defaults to current)")),
	), s.handleSetNotes)

	// ── save_notes ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("save_notes",
		mcp.WithDescription("Write all speaker notes to the sidecar file next to the PDF"),
	), s.handleSaveNotes)
}

func (s *Server) handleGetNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	position := getInt(req.GetArguments(), "position", -1)
	if position < 0 {
		return textResult(s.present.CurrentNotes()), nil
	}
	return textResult(s.present.NotesFor(position)), nil
}

func (s *Server) handleSetNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("text", "")
	position := getInt(req.GetArguments(), "position", -1)

	if position < 0 {
		s.present.SetCurrentNotes(text)
		return textResult("Notes updated for the current slide"), nil
	}
	if !s.present.SetNotesFor(position, text) {
		return textResult(fmt.Sprintf("Set notes at %d rejected (out of range)", position)), nil
	}
	return textResult(fmt.Sprintf("Notes updated for slide %d", position)), nil
}

func (s *Server) handleSaveNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.present.SaveNotes(); err != nil {
		return nil, fmt.Errorf("save notes: %w", err)
	}
	return textResult(fmt.Sprintf("Notes saved to %s", s.present.NotesSidecarPath())), nil
}
