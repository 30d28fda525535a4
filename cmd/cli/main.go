package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"steam-roi/internal/analysis"
	"steam-roi/internal/config"
	"steam-roi/internal/data"
	"steam-roi/internal/dcf"
	"steam-roi/internal/evaluation"
	"steam-roi/internal/logger"
	"steam-roi/internal/model"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	if err := logger.Init(os.Getenv("API_ENV")); err != nil {
		panic(err)
	}
	defer logger.Sync()

	switch os.Args[1] {
	case "evaluate":
		cmdEvaluate(os.Args[2:])
	case "credit":
		cmdCredit(os.Args[2:])
	case "locate":
		cmdLocate(os.Args[2:])
	case "rank":
		cmdRank(os.Args[2:])
	case "schedule":
		cmdSchedule(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli evaluate --zip 90210 --company Acme --cost 2500000 [--rating AA] [--payback 15y] [--config examples/config.yaml] [--out results]")
	fmt.Println("  cli credit --rating AA --payback 15y [--config examples/config.yaml]")
	fmt.Println("  cli locate --zip 90210 [--config examples/config.yaml]")
	fmt.Println("  cli rank [--lookback 12m] [--config examples/config.yaml]")
	fmt.Println("  cli schedule --zip 90210 [--lookback 12m] [--out results/schedule.csv]")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - evaluate writes one cash flow table CSV per lookback window into --out")
	fmt.Println("  - rank orders price zones by economic capacity factor")
	fmt.Println("  - schedule writes action=OPERATING/IDLE per hour for the site's zone")
}

func mustBuild(cfgPath string) *evaluation.Components {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}
	c, err := evaluation.Build(cfg)
	if err != nil {
		panic(err)
	}
	return c
}

func cmdEvaluate(args []string) {
	fs := flag.NewFlagSet("evaluate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (defaults built in)")
	zip := fs.String("zip", "", "Site postal code")
	company := fs.String("company", "", "Company name")
	rating := fs.String("rating", "AA", "Credit rating")
	payback := fs.String("payback", "15y", "Payback period")
	cost := fs.Float64("cost", 0, "Total project cost ($)")
	rate := fs.Float64("rate", -1, "Optional: interest rate override (decimal)")
	ltv := fs.Float64("ltv", -1, "Optional: loan-to-value override (0..1)")
	outDir := fs.String("out", "results", "Output directory for cash flow tables")
	_ = fs.Parse(args)

	if *zip == "" || *company == "" {
		fmt.Println("--zip and --company are required")
		os.Exit(2)
	}

	c := mustBuild(*cfgPath)
	in := model.EvaluationInputs{
		ZipCode:          *zip,
		CompanyName:      *company,
		CreditRating:     *rating,
		PaybackPeriod:    *payback,
		TotalProjectCost: *cost,
	}
	if *rate >= 0 {
		in.InterestRate = rate
	}
	if *ltv >= 0 {
		in.LoanToValue = ltv
	}

	ev, err := c.Service.Evaluate(context.Background(), in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "evaluate: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		panic(err)
	}
	lead := ev.Lead
	fmt.Printf("%s @ %s (%s/%s) rate=%.3f ltv=%.2f avg price=$%.2f/MWh\n",
		lead.CompanyName, lead.ZipCode, lead.ISORTO, lead.Location, lead.InterestRate, lead.LoanToValue, lead.AvgPrice)
	fmt.Printf("%-8s %-8s %-14s %-10s %-8s %-10s\n", "window", "cf", "npv", "irr", "payback", "avg$/MWh")
	for _, r := range ev.Results {
		fmt.Printf("%-8s %-8.3f %-14d %-10s %-8s %-10.2f\n",
			r.Lookback,
			r.Window.CapacityFactor,
			r.NPV,
			fmtOpt(r.IRR, "%.4f"),
			fmtOpt(r.PaybackYears, "%.2f"),
			r.Window.AvgOperatingPrice,
		)
		outPath := filepath.Join(*outDir, fmt.Sprintf("cashflow_%s_%s.csv", *zip, r.Lookback))
		if err := dcf.WriteTableCSV(outPath, r.Table); err != nil {
			panic(err)
		}
	}
	fmt.Printf("Wrote %d tables to %s\n", len(ev.Results), *outDir)
}

func cmdCredit(args []string) {
	fs := flag.NewFlagSet("credit", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (defaults built in)")
	rating := fs.String("rating", "AA", "Credit rating")
	payback := fs.String("payback", "15y", "Payback period")
	_ = fs.Parse(args)

	c := mustBuild(*cfgPath)
	a, err := c.Credit.Resolve(context.Background(), *rating, *payback)
	if err != nil {
		fmt.Fprintf(os.Stderr, "credit: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("rating=%s payback=%s benchmark=%.5f spread=%.3f rate=%.3f ltv=%.2f\n",
		a.Rating, a.PaybackPeriod, a.Benchmark, a.Spread, a.InterestRate, a.LoanToValue)
}

func cmdLocate(args []string) {
	fs := flag.NewFlagSet("locate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (defaults built in)")
	zip := fs.String("zip", "", "Postal code")
	_ = fs.Parse(args)

	c := mustBuild(*cfgPath)
	res, err := c.Location.ResolveErr(context.Background(), *zip)
	if err != nil {
		fmt.Fprintf(os.Stderr, "locate: %v\n", err)
		os.Exit(1)
	}
	match := "inside"
	if res.Nearest {
		match = "nearest"
	}
	fmt.Printf("%s -> %s/%s (%s) zone=%q lat=%.4f lon=%.4f\n",
		*zip, res.Region, res.Location, match, data.ZoneFor(res.Location), res.Point.Lat(), res.Point.Lon())
}

func cmdRank(args []string) {
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (defaults built in)")
	lookback := fs.String("lookback", "12m", "Trailing window, e.g. 6m")
	_ = fs.Parse(args)

	c := mustBuild(*cfgPath)
	span, err := dcf.ParseLookback(*lookback)
	if err != nil {
		panic(err)
	}
	series, err := c.History.Load(context.Background())
	if err != nil {
		panic(err)
	}
	now := time.Now()
	ranked := analysis.RankByCapacityFactor(data.GroupByZone(data.Window(series, now.Add(-span), now)))

	fmt.Printf("%-4s %-14s %-8s %-8s %-8s %-10s %-10s\n", "rank", "zone", "count", "op hrs", "cf", "avg op$", "p05/p95")
	for _, r := range ranked {
		fmt.Printf(
			"%-4d %-14s %-8d %-8d %-8.3f %-10.2f %-5.1f/%-5.1f\n",
			r.Rank,
			r.Zone,
			r.Count,
			r.OperatingCount,
			r.CapacityFactor,
			r.AvgOperatingPrice,
			r.P05Price,
			r.P95Price,
		)
	}
}

func cmdSchedule(args []string) {
	fs := flag.NewFlagSet("schedule", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (defaults built in)")
	zip := fs.String("zip", "", "Site postal code")
	lookback := fs.String("lookback", "12m", "Trailing window, e.g. 6m")
	outPath := fs.String("out", "results/schedule.csv", "Output CSV path")
	_ = fs.Parse(args)

	c := mustBuild(*cfgPath)
	ctx := context.Background()
	res, err := c.Location.ResolveErr(ctx, *zip)
	if err != nil {
		fmt.Fprintf(os.Stderr, "schedule: %v\n", err)
		os.Exit(1)
	}
	span, err := dcf.ParseLookback(*lookback)
	if err != nil {
		panic(err)
	}
	series, err := c.History.Zone(ctx, data.ZoneFor(res.Location))
	if err != nil {
		panic(err)
	}
	now := time.Now()
	window := data.Window(series, now.Add(-span), now)

	// ensure output dir exists
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := data.WriteScheduleCSV(*outPath, window); err != nil {
		panic(err)
	}
	stats := analysis.ComputeWindowStats(window)
	fmt.Printf("Wrote %d rows to %s\n", len(window), *outPath)
	fmt.Printf("Operating hours=%d capacity factor=%.3f avg operating price=$%.2f/MWh\n",
		stats.OperatingCount, stats.CapacityFactor, stats.AvgOperatingPrice)
}

func fmtOpt(v *float64, format string) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf(format, *v)
}
