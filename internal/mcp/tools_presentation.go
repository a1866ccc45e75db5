package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPresentationTools() {
	// ── presentation_state ─────────────────────────────
	s.mcp.AddTool(mcp.NewTool("presentation_state",
		mcp.WithDescription("Current presentation state: slide position, scroll offset, notes and timer"),
	), s.handlePresentationState)

	// ── start_presentation ─────────────────────────────
	s.mcp.AddTool(mcp.NewTool("start_presentation",
		mcp.WithDescription("Enter presentation mode and render projector images for the deck"),
	), s.handleStartPresentation)

	// ── stop_presentation ──────────────────────────────
	s.mcp.AddTool(mcp.NewTool("stop_presentation",
		mcp.WithDescription("Leave presentation mode"),
	), s.handleStopPresentation)

	// ── next_slide ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("next_slide",
		mcp.WithDescription("Advance the presentation. On a slide taller than the projector this first scrolls to the bottom, then moves on."),
	), s.handleNextSlide)

	// ── prev_slide ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("prev_slide",
		mcp.WithDescription("Go back one step. Scrolled slides return to the top before the previous slide is shown."),
	), s.handlePrevSlide)

	// ── jump_to_slide ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("jump_to_slide",
		mcp.WithDescription("Jump straight to the slide at a position"),
		mcp.WithNumber("position", mcp.Description("Target position in the presentation order"), mcp.Required()),
	), s.handleJumpToSlide)

	// ── start_timer / stop_timer ───────────────────────
	s.mcp.AddTool(mcp.NewTool("start_timer",
		mcp.WithDescription("Start or resume the talk timer. Resuming continues from the accumulated time."),
	), s.handleStartTimer)

	s.mcp.AddTool(mcp.NewTool("stop_timer",
		mcp.WithDescription("Pause the talk timer, keeping the elapsed time"),
	), s.handleStopTimer)
}

func (s *Server) handlePresentationState(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.present.State())
}

func (s *Server) handleStartPresentation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.present.Enter(ctx)
	return textResult("Presentation started"), nil
}

func (s *Server) handleStopPresentation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.present.Exit(ctx)
	return textResult("Presentation stopped"), nil
}

func (s *Server) handleNextSlide(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.present.Next(ctx)
	return jsonResult(s.present.State())
}

func (s *Server) handlePrevSlide(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.present.Prev(ctx)
	return jsonResult(s.present.State())
}

func (s *Server) handleJumpToSlide(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	position := getInt(req.GetArguments(), "position", -1)
	if !s.present.JumpTo(ctx, position) {
		return textResult(fmt.Sprintf("Jump to %d rejected (out of range)", position)), nil
	}
	return jsonResult(s.present.State())
}

func (s *Server) handleStartTimer(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.present.StartTimer()
	return textResult(fmt.Sprintf("Timer running at %s", s.present.TimerDisplay())), nil
}

func (s *Server) handleStopTimer(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.present.StopTimer()
	return textResult(fmt.Sprintf("Timer paused at %s", s.present.TimerDisplay())), nil
}
