// Package main is tripwise's command-line itinerary viewer. It wires the
// full client stack — Redis cache, trip store client, geocoder, and the
// persistence coordinator — and renders a trip the way the planner UI
// would: day by day, with map markers and the budget breakdown.
//
// Examples:
//
//	planner -trip 1f0e...            show a saved trip
//	planner -mode japan              show the Japan template (or its draft)
//	planner -country iceland -label "Iceland" -start 2026-06-01 -end 2026-06-07
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"tripwise/internal/cache"
	"tripwise/internal/config"
	"tripwise/internal/geo"
	"tripwise/internal/planner"
	"tripwise/internal/remote"
	"tripwise/internal/tripsync"
)

func main() {
	tripID := flag.String("trip", "", "id of a saved trip to load")
	mode := flag.String("mode", "", "template mode (japan, malaysia, paris, newyork, blank)")
	country := flag.String("country", "", "custom destination country")
	label := flag.String("label", "", "custom destination display label")
	start := flag.String("start", "", "trip start date (YYYY-MM-DD)")
	end := flag.String("end", "", "trip end date (YYYY-MM-DD)")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.LoadPlanner()

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	store := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := store.Ping(ctx); err != nil {
		logger.Error("redis unreachable", "addr", cfg.RedisAddr, "error", err)
		os.Exit(1)
	}

	coord := tripsync.New(
		store,
		remote.New(cfg.RemoteBaseURL, 0),
		tripsync.NewCacheAuth(store),
		promptNamer(),
		logger,
	)

	res, err := coord.Load(ctx, planner.RouteParams{
		TripID:       *tripID,
		Mode:         *mode,
		Country:      *country,
		CountryLabel: *label,
		StartDate:    *start,
		EndDate:      *end,
	})
	if err != nil {
		logger.Error("load failed", "error", err)
		os.Exit(1)
	}
	if res.State == tripsync.NotFound {
		fmt.Fprintf(os.Stderr, "trip %s not found\n", *tripID)
		os.Exit(1)
	}

	sessCfg := res.Session
	sessCfg.Geocoder = geo.New(cfg.GeocoderBaseURL, cfg.GeocodeRPS)
	sessCfg.OnMutate = coord.AutoSave
	sessCfg.Logger = logger
	s := planner.NewSession(sessCfg)

	render(s, res.State)
}

// promptNamer asks for a trip name on stdin, the CLI stand-in for the
// planner UI's naming dialog. An empty line cancels.
func promptNamer() tripsync.Namer {
	return tripsync.NamerFunc(func(_ context.Context, suggestion string) (string, bool) {
		fmt.Fprintf(os.Stderr, "trip name [%s]: ", suggestion)
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return "", false
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return suggestion, true
		}
		return line, true
	})
}

// render prints the working copy and its derived views.
func render(s *planner.Session, state tripsync.LoadState) {
	title := s.TripName()
	if title == "" {
		title = "Untitled trip"
	}
	fmt.Printf("%s (%s)\n", title, state)
	if d := s.StartDate(); d != "" {
		fmt.Printf("%s to %s\n", d, s.EndDate())
	}
	fmt.Println()

	for _, day := range s.Days() {
		header := fmt.Sprintf("Day %d: %s", day.Number, day.Title)
		if day.City != "" {
			header += " — " + day.City
		}
		if day.Date != "" {
			header += " (" + day.Date + ")"
		}
		fmt.Println(header)
		for _, a := range day.Activities {
			line := fmt.Sprintf("  %s-%s  [%s] %s", a.StartTime, a.EndTime, a.Type, a.Name)
			if a.Paid() {
				line += fmt.Sprintf("  %.2f %s", *a.Price, a.Currency)
			}
			fmt.Println(line)
		}
	}

	mv := s.MapView()
	if len(mv.Markers) > 0 {
		fmt.Println("\nMap:")
		for _, m := range mv.Markers {
			fmt.Printf("  %s (%s)  %.4f,%.4f\n", m.Name, m.Label, m.Coords.Lat, m.Coords.Lng)
		}
	}

	budget := s.Budget()
	if len(budget) > 0 {
		fmt.Println("\nBudget:")
		for _, currency := range budget.Currencies() {
			cb := budget[currency]
			fmt.Printf("  %s %.2f\n", currency, cb.Total)
			for typ, tt := range cb.ByType {
				fmt.Printf("    %-10s %.2f (%d)\n", typ, tt.Total, tt.Count)
			}
		}
	}
}
