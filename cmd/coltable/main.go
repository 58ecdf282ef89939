package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/coltable/internal/config"
	"github.com/jask/coltable/internal/database"
	"github.com/jask/coltable/internal/database/repository"
	"github.com/jask/coltable/internal/logger"
	"github.com/jask/coltable/internal/service"
	"github.com/jask/coltable/internal/table"
	"github.com/jask/coltable/internal/testdata"
	"github.com/jask/coltable/internal/tui"
)

func main() {
	opt, err := parseCLI(os.Args[1:])
	if err != nil {
		if isHelp(err) {
			os.Exit(0)
		}
		os.Exit(1)
	}
	if err := run(context.Background(), opt, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opt *option, stdout io.Writer) error {
	cfg, err := config.Load(opt.Config)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger.Level.SetByName(cfg.Log.Level)
	if opt.Debug {
		logger.Level.Set(slog.LevelDebug)
	}
	logFile, err := logger.OpenFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer logFile.Close()
	log := logger.New(logFile)

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := database.RunMigrations(cfg.Database.Path, cfg.Database.Migrations); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	people := repository.NewPersonRepo(db)

	if opt.Reset {
		if err := (&service.MaintenanceService{DB: db}).Reset(ctx); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		log.Info("people table reset")
	}
	if err := database.SeedDefaults(ctx, db); err != nil {
		return fmt.Errorf("seed defaults: %w", err)
	}
	if opt.Sample > 0 {
		n, err := testdata.Seed(ctx, people, opt.Sample, rand.New(rand.NewSource(time.Now().UnixNano())))
		if err != nil {
			return fmt.Errorf("sample data: %w", err)
		}
		log.Info("sample people inserted", "count", n)
	}
	if opt.Import != "" {
		if err := importFile(ctx, &service.IngestService{People: people, Log: log, Update: opt.Update}, opt.Import, stdout); err != nil {
			return err
		}
	}

	source := &service.RowSource{People: people}
	rows, err := source.Load(ctx)
	if err != nil {
		return err
	}
	tbl, err := table.New(service.PeopleRegistry(), rows, table.Options{Policy: cfg.FilterPolicy(), Logger: log})
	if err != nil {
		return err
	}
	cancel := tbl.Subscribe(func(s table.Snapshot) {
		log.Debug("table state committed", "version", s.Version, "order", strings.Join(s.Order.Order(), ","))
	})
	defer cancel()

	if err := applyStartup(tbl, opt); err != nil {
		return err
	}

	if opt.NoTUI {
		return printPage(stdout, tbl, cfg.UI.PageSize, cfg.UI.PinMarker)
	}

	app := tui.New(ctx, tbl, source, tui.Options{PageSize: cfg.UI.PageSize, PinMarker: cfg.UI.PinMarker, Logger: log})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func importFile(ctx context.Context, svc *service.IngestService, path string, stdout io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()
	res, err := svc.ImportCSV(ctx, f)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	fmt.Fprintf(stdout, "imported %d, updated %d, skipped %d, errors %d\n", res.Imported, res.Updated, res.Skipped, len(res.Errors))
	for _, e := range res.Errors {
		fmt.Fprintf(stdout, "  %v\n", e)
	}
	return nil
}

func applyStartup(tbl *table.Table, opt *option) error {
	for _, id := range opt.Pin {
		// --pin only ever pins, so repeating it is harmless
		if tbl.Snapshot().Order.IsPinned(id) {
			continue
		}
		if err := tbl.TogglePin(id); err != nil {
			return fmt.Errorf("--pin: %w", err)
		}
	}
	for _, id := range opt.Hide {
		if err := tbl.SetColumnVisible(id, false); err != nil {
			return fmt.Errorf("--hide: %w", err)
		}
	}
	return tbl.SetGlobalFilter(opt.Global)
}

func printPage(w io.Writer, tbl *table.Table, pageSize int, pinMarker string) error {
	view := tbl.View()
	var labels []string
	for _, h := range view.Headers {
		if !h.Visible {
			continue
		}
		label := h.Label
		if h.Pinned {
			label = pinMarker + label
		}
		labels = append(labels, label)
	}
	if _, err := fmt.Fprintln(w, strings.Join(labels, "\t")); err != nil {
		return err
	}
	for _, r := range view.Page(0, pageSize) {
		vals := make([]string, len(r.Cells))
		for i, c := range r.Cells {
			vals[i] = c.Value
		}
		if _, err := fmt.Fprintln(w, strings.Join(vals, "\t")); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d of %d rows\n", len(view.Rows), len(tbl.Snapshot().Rows))
	return err
}
