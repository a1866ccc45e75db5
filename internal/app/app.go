package app

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"pdfpresenter/internal/config"
	"pdfpresenter/internal/deck"
	"pdfpresenter/internal/pdf"
	"pdfpresenter/internal/render"
	"pdfpresenter/internal/service"
	"pdfpresenter/internal/storage"
)

// App is the main Wails application struct.
// All exported methods are available as Wails bindings.
type App struct {
	ctx context.Context

	cfg      *config.Config
	db       *storage.DB
	settings *service.WindowSettingsService
	cache    *render.Cache

	deck    *service.DeckService
	present *service.PresentService
	watcher *notesWatcher
}

// New creates a new App.
func New() *App {
	return &App{}
}

// Emit implements service.EventEmitter by forwarding to the Wails runtime.
// Before Startup there is no runtime context, so early emissions are dropped.
func (a *App) Emit(_ context.Context, event string, data any) {
	if a.ctx == nil {
		return
	}
	wailsRuntime.EventsEmit(a.ctx, event, data)
}

// pdfOpener adapts pdf.Open to the deck.Opener interface.
type pdfOpener struct{}

func (pdfOpener) Open(path string) (deck.Document, error) {
	return pdf.Open(path)
}

// Startup is called when the app starts.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		log.Error().Err(err).Msg("config load failed, using defaults")
		cfg = config.Default()
	}
	a.cfg = cfg

	dataDir := cfg.ResolveDataDir()
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		wailsRuntime.LogFatalf(ctx, "Failed to create data dir: %v", err)
		return
	}

	db, err := storage.New(filepath.Join(dataDir, "presenter.db"))
	if err != nil {
		wailsRuntime.LogFatalf(ctx, "Failed to open database: %v", err)
		return
	}
	a.db = db
	a.settings = service.NewWindowSettingsService(db)

	rasterizer, err := pdf.NewRasterizer()
	if err != nil {
		// Without pdftoppm the deck still works (import, order, notes,
		// export); only the rendered views stay empty.
		log.Warn().Err(err).Msg("pdftoppm not found, slide rendering disabled")
	}

	cache := render.NewCache()
	a.cache = cache
	var renderer service.PageRenderer
	if rasterizer != nil {
		renderer = rasterizer
	}

	a.deck = service.NewDeckService(
		pdfOpener{},
		renderer,
		cache,
		storage.NewRecentStore(db),
		storage.NewLayoutStore(db),
		cfg.ThumbnailWidth,
		a,
	)
	a.present = service.NewPresentService(
		a.deck.Order(),
		a.deck.Registry(),
		cache,
		renderer,
		cfg.ProjectionWidth,
		cfg.ProjectionHeight,
		cfg.TimerTick(),
		a,
	)

	if cfg.NotesAutosave != "" {
		if err := a.present.StartAutosave(cfg.NotesAutosave); err != nil {
			log.Error().Err(err).Str("spec", cfg.NotesAutosave).Msg("notes autosave disabled")
		}
	}

	watcher, err := newNotesWatcher(a.present, a)
	if err != nil {
		log.Error().Err(err).Msg("notes file watching disabled")
	}
	a.watcher = watcher

	log.Info().Str("dataDir", dataDir).Msg("app started")
}

// Shutdown is called when the app is closing.
func (a *App) Shutdown(ctx context.Context) {
	if a.present != nil {
		if err := a.present.SaveNotes(); err != nil {
			log.Error().Err(err).Msg("saving notes on shutdown")
		}
		a.present.Close()
	}
	if a.deck != nil {
		if err := a.deck.SaveLayout(); err != nil {
			log.Error().Err(err).Msg("saving layout on shutdown")
		}
	}
	if a.watcher != nil {
		a.watcher.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}

// LoadWindowSize returns the persisted window dimensions for the frontend.
func (a *App) LoadWindowSize() service.WindowSize {
	return a.settings.LoadWindowSize()
}

// SaveWindowSize persists the window dimensions on resize.
func (a *App) SaveWindowSize(width, height int) error {
	return a.settings.SaveWindowSize(width, height)
}
