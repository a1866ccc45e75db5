package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerDeckTools() {
	// ── list_slides ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_slides",
		mcp.WithDescription("List the presentation order: every slide with its position, source file and page"),
	), s.handleListSlides)

	// ── import_files ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("import_files",
		mcp.WithDescription("Import one or more PDF files into the deck. Bad files are skipped and reported."),
		mcp.WithString("paths",
			mcp.Description("Comma-separated absolute paths of PDF files"),
			mcp.Required(),
		),
	), s.handleImportFiles)

	// ── move_slide ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("move_slide",
		mcp.WithDescription("Move a slide from one position to another"),
		mcp.WithNumber("from", mcp.Description("Current position of the slide"), mcp.Required()),
		mcp.WithNumber("to", mcp.Description("Target position"), mcp.Required()),
	), s.handleMoveSlide)

	// ── remove_slide ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("remove_slide",
		mcp.WithDescription("Remove the slide at a position from the presentation order. The last remaining slide cannot be removed."),
		mcp.WithNumber("position", mcp.Description("Position of the slide to remove"), mcp.Required()),
	), s.handleRemoveSlide)

	// ── export_deck ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("export_deck",
		mcp.WithDescription("Export the current presentation order as a new PDF file"),
		mcp.WithString("path",
			mcp.Description("Absolute path of the output PDF"),
			mcp.Required(),
		),
	), s.handleExportDeck)
}

func (s *Server) handleListSlides(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.deck.State())
}

func (s *Server) handleImportFiles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	paths := splitPaths(req.GetString("paths", ""))
	if len(paths) == 0 {
		return nil, fmt.Errorf("paths is required")
	}
	result, err := s.deck.ImportFiles(ctx, paths)
	if err != nil {
		return nil, fmt.Errorf("import files: %w", err)
	}
	return jsonResult(result)
}

func (s *Server) handleMoveSlide(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	from := getInt(args, "from", -1)
	to := getInt(args, "to", -1)

	id, hadID := s.deck.Order().IDAt(s.deck.Order().Current())
	if !s.deck.Move(ctx, from, to) {
		return textResult(fmt.Sprintf("Move %d → %d rejected (out of range or no-op)", from, to)), nil
	}
	if hadID {
		s.present.ReconcileAfterMutation(ctx, id)
	}
	return textResult(fmt.Sprintf("Slide moved from %d to %d", from, to)), nil
}

func (s *Server) handleRemoveSlide(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	position := getInt(req.GetArguments(), "position", -1)

	id, hadID := s.deck.Order().IDAt(s.deck.Order().Current())
	if !s.deck.Remove(ctx, position) {
		return textResult(fmt.Sprintf("Remove at %d rejected (out of range or last slide)", position)), nil
	}
	if hadID {
		s.present.ReconcileAfterMutation(ctx, id)
	}
	return textResult(fmt.Sprintf("Slide at position %d removed", position)), nil
}

func (s *Server) handleExportDeck(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("path", "")
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if err := s.deck.Export(ctx, path); err != nil {
		return nil, fmt.Errorf("export deck: %w", err)
	}
	return textResult(fmt.Sprintf("Deck exported to %s", path)), nil
}
