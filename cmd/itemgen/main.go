package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"itemgen/internal/config"
	"itemgen/internal/pipeline"
	"itemgen/internal/storage"
	"itemgen/internal/watcher"
)

func main() {
	cfg, err := config.Load()
	must(err)

	cmd := "generate"
	args := []string{}
	if len(os.Args) >= 2 {
		cmd = os.Args[1]
		args = os.Args[2:]
	}

	switch cmd {
	case "generate":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		enums := fs.String("enums", cfg.EnumsPath, "enum map json")
		items := fs.String("items", cfg.ItemDataPath, "item data dump json")
		messages := fs.String("messages", cfg.MessagesPath, "localization csv")
		out := fs.String("out", cfg.OutputPath, "output json path")
		noHistory := fs.Bool("no-history", !cfg.HistoryEnabled, "do not record the run")
		_ = fs.Parse(args)
		cfg.EnumsPath, cfg.ItemDataPath, cfg.MessagesPath, cfg.OutputPath = *enums, *items, *messages, *out
		must(cfg.Validate())

		var db *storage.DB
		if !*noHistory {
			db = openHistory(cfg.DBPath)
		}
		if db != nil {
			defer db.Close()
		}
		svc := pipeline.NewGenerateService(db, cfg, os.Stdout)
		_, err = svc.Generate(context.Background(), pipeline.InputsFromConfig(cfg))
		must(err)
	case "export:xlsx", "export:yaml":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		out := fs.String("out", "", "output path")
		_ = fs.Parse(args)
		if strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--out is required"))
		}
		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()

		run, err := db.MustLatestRun()
		must(err)
		items, err := db.GetRunItems(run.ID)
		must(err)
		if cmd == "export:xlsx" {
			must(pipeline.ExportItemsToXLSX(items, *out))
		} else {
			must(pipeline.ExportItemsToYAML(items, *out))
		}
		fmt.Printf("exported %d items from run=%d to %s\n", len(items), run.ID, *out)
	case "runs":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("limit", 10, "max runs")
		_ = fs.Parse(args)
		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()

		runs, err := db.ListRuns(*limit)
		must(err)
		for _, r := range runs {
			fmt.Printf("run=%d trace=%s at=%s items=%d warnings=%d durationMs=%.0f output=%s\n", r.ID, r.TraceID, r.CreatedAt, r.ItemCount, r.WarnCount, r.DurationMs, r.OutputPath)
		}
	case "watch":
		must(cfg.Validate())
		var db *storage.DB
		if cfg.HistoryEnabled {
			db = openHistory(cfg.DBPath)
		}
		if db != nil {
			defer db.Close()
		}

		gen := pipeline.NewGenerateService(db, cfg, os.Stdout)
		svc := watcher.NewService(gen, cfg, pipeline.InputsFromConfig(cfg), os.Stdout)
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		must(svc.Run(ctx))
	default:
		usage()
		os.Exit(1)
	}
}

// openHistory returns nil when the run history database is unavailable.
func openHistory(path string) *storage.DB {
	db, err := storage.Open(path)
	if err != nil {
		fmt.Printf("Warning: run history disabled, cannot open %s: %v\n", path, err)
		return nil
	}
	return db
}

func usage() {
	fmt.Println("usage: itemgen [command]")
	fmt.Println("commands:")
	fmt.Println("  generate [--enums=...] [--items=...] [--messages=...] [--out=...] [--no-history]  (default)")
	fmt.Println("  export:xlsx --out=./out/items.xlsx")
	fmt.Println("  export:yaml --out=./out/items.yaml")
	fmt.Println("  runs [--limit=10]")
	fmt.Println("  watch")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
