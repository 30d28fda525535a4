package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"steam-roi/internal/config"
	"steam-roi/internal/data"
	"steam-roi/internal/logger"
	"steam-roi/internal/strategy"

	"github.com/schollz/progressbar/v3"
)

func main() {
	var (
		rawDir     = flag.String("raw", "./data/raw", "Directory of caiso_lmp_rt_15min_zones_*.csv exports")
		outputPath = flag.String("output", "", "Output history CSV (default: datasets.price_history_path)")
		cfgPath    = flag.String("config", "", "Path to YAML config (defaults built in)")
		zones      = flag.String("zones", strings.Join(data.DefaultCAISOZones, ","), "Comma-separated zone columns to keep")
		quiet      = flag.Bool("quiet", false, "Disable the progress bar")
	)
	flag.Parse()

	if err := logger.Init(os.Getenv("API_ENV")); err != nil {
		panic(err)
	}
	defer logger.Sync()
	ctx := context.Background()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Fatal(ctx, fmt.Errorf("load config: %w", err))
	}
	if *outputPath == "" {
		*outputPath = cfg.Datasets.PriceHistoryPath
	}

	rule, err := strategy.New(cfg.Operating.PriceThreshold, cfg.Operating.WindowStart, cfg.Operating.WindowEnd)
	if err != nil {
		logger.Fatal(ctx, fmt.Errorf("operating rule: %w", err))
	}

	paths, err := data.Glob(*rawDir)
	if err != nil {
		logger.Fatal(ctx, err)
	}
	if len(paths) == 0 {
		logger.Fatal(ctx, fmt.Errorf("no CAISO exports found in %s", *rawDir))
	}
	fmt.Printf("Compiling %d files from %s (rule: %s)\n", len(paths), *rawDir, rule.Name())

	bar := progressbar.NewOptions(len(paths),
		progressbar.OptionSetDescription("ingesting"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetVisibility(!*quiet),
		progressbar.OptionClearOnFinish(),
	)
	failed := 0
	in := &data.Ingestor{
		Rule:  rule,
		Zones: splitList(*zones),
		OnFile: func(path string, rows int, err error) {
			if err != nil {
				failed++
			}
			bar.Describe(filepath.Base(path))
			_ = bar.Add(1)
		},
	}

	series, err := in.Compile(ctx, paths)
	_ = bar.Finish()
	if err != nil {
		logger.Fatal(ctx, fmt.Errorf("compile: %w", err))
	}
	if failed > 0 {
		fmt.Printf("Skipped %d/%d files with errors\n", failed, len(paths))
	}

	if err := os.MkdirAll(filepath.Dir(*outputPath), 0o755); err != nil {
		logger.Fatal(ctx, err)
	}
	if err := data.SavePriceHistory(*outputPath, series); err != nil {
		logger.Fatal(ctx, fmt.Errorf("failed to save price history: %w", err))
	}

	catalog := data.BuildZoneCatalog("CAISO", series, time.Now())
	catalogPath := data.CatalogPath(*outputPath)
	if err := data.SaveZoneCatalog(catalog, catalogPath); err != nil {
		logger.Fatal(ctx, fmt.Errorf("failed to save zone catalog: %w", err))
	}

	fmt.Printf("Saved %d hourly rows to %s\n", len(series), *outputPath)
	for _, z := range catalog.Zones {
		fmt.Printf("  %-12s %6d rows  %5d operating  %s .. %s\n",
			z.Name, z.Observations, z.OperatingHrs, z.First.Format("2006-01-02"), z.Last.Format("2006-01-02"))
	}
	fmt.Printf("Saved zone catalog to %s\n", catalogPath)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
