package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"pdfpresenter/internal/config"
	mcpserver "pdfpresenter/internal/mcp"
	"pdfpresenter/internal/pdf"
	"pdfpresenter/internal/render"
	"pdfpresenter/internal/service"
)

// noopEmitter is a no-op EventEmitter used in MCP-only mode (no Wails frontend).
type noopEmitter struct{}

func (noopEmitter) Emit(_ context.Context, _ string, _ any) {}

// ServeMCP runs the app as a standalone MCP server on stdin/stdout with no
// GUI. Any paths given on the command line are imported before serving, so
// a client starts with a loaded deck.
func ServeMCP(paths []string) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	rasterizer, err := pdf.NewRasterizer()
	if err != nil {
		log.Warn().Err(err).Msg("pdftoppm not found, slide rendering disabled")
	}

	cache := render.NewCache()
	var renderer service.PageRenderer
	if rasterizer != nil {
		renderer = rasterizer
	}

	emitter := noopEmitter{}

	// No session storage in MCP mode: recents and layouts stay nil.
	deckSvc := service.NewDeckService(pdfOpener{}, renderer, cache, nil, nil, cfg.ThumbnailWidth, emitter)
	presentSvc := service.NewPresentService(
		deckSvc.Order(),
		deckSvc.Registry(),
		cache,
		renderer,
		cfg.ProjectionWidth,
		cfg.ProjectionHeight,
		cfg.TimerTick(),
		emitter,
	)
	defer presentSvc.Close()

	if len(paths) > 0 {
		result, err := deckSvc.ImportFiles(ctx, paths)
		if err != nil {
			log.Fatal().Err(err).Msg("import files")
		}
		for _, f := range result.Failures {
			log.Warn().Str("path", f.Path).Str("error", f.Error).Msg("import failed")
		}
		if current := deckSvc.CurrentFile(); current != "" {
			if err := presentSvc.LoadNotes(current); err != nil {
				log.Warn().Err(err).Msg("load notes")
			}
		}
	}

	mcpSrv := mcpserver.New(mcpserver.Deps{
		Emitter: emitter,
		Deck:    deckSvc,
		Present: presentSvc,
	})

	log.Info().Msg("starting standalone MCP stdio server")
	if err := mcpSrv.ServeStdio(); err != nil {
		log.Fatal().Err(err).Msg("MCP server error")
	}
}
