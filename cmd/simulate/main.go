package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/draft-companion/internal/config"
	"github.com/riskibarqy/draft-companion/internal/domain/league"
	"github.com/riskibarqy/draft-companion/internal/domain/player"
	"github.com/riskibarqy/draft-companion/internal/infrastructure/catalog"
	"github.com/riskibarqy/draft-companion/internal/infrastructure/repository/file"
	"github.com/riskibarqy/draft-companion/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/draft-companion/internal/platform/logging"
)

func main() {
	var (
		source       = flag.String("catalog", "", "player CSV path, http(s) URL or \"memory\" (default CATALOG_SOURCE or memory)")
		settingsPath = flag.String("settings", "", "league settings YAML file; defaults are used when empty")
		numTeams     = flag.Int("teams", 0, "override the number of teams")
		workers      = flag.Int("workers", 4, "concurrent simulations")
		timeout      = flag.Duration("timeout", 15*time.Second, "catalog fetch timeout")
	)
	flag.Parse()

	logger := logging.NewConsole(logging.LevelInfo)
	defer func() { _ = logger.Sync() }()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("load .env failed", "error", err)
	}
	if *source == "" {
		*source = os.Getenv("CATALOG_SOURCE")
	}
	if *source == "" {
		*source = config.CatalogSourceMemory
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	settings, err := loadSettings(ctx, *settingsPath)
	if err != nil {
		logger.Error("load settings", "error", err)
		os.Exit(1)
	}
	if *numTeams > 0 {
		settings.NumTeams = *numTeams
	}
	settings = settings.Normalize()

	players, err := loadPlayers(ctx, *source, *timeout, settings.NumTeams, logger)
	if err != nil {
		logger.Error("load catalog", "source", *source, "error", err)
		os.Exit(1)
	}

	results, err := simulateAll(ctx, settings, player.NewCatalog(players), *workers)
	if err != nil {
		logger.Error("simulate drafts", "error", err)
		os.Exit(1)
	}

	if err := printResults(os.Stdout, settings, results); err != nil {
		logger.Error("print results", "error", err)
		os.Exit(1)
	}
}

func loadSettings(ctx context.Context, path string) (league.Settings, error) {
	if path == "" {
		return league.DefaultSettings(), nil
	}
	settings, ok, err := file.NewLeagueRepository(path).Get(ctx)
	if err != nil {
		return league.Settings{}, err
	}
	if !ok {
		return league.Settings{}, fmt.Errorf("settings file %s not found", path)
	}
	return settings, nil
}

func loadPlayers(ctx context.Context, source string, timeout time.Duration, numTeams int, logger *logging.Logger) ([]player.Player, error) {
	var loader player.Loader = memory.NewPlayerLoader(memory.SeedPlayers(numTeams))
	if source != config.CatalogSourceMemory {
		l, err := catalog.NewLoader(source, timeout, logger)
		if err != nil {
			return nil, err
		}
		loader = l
	}
	return loader.Load(ctx)
}

func printResults(w io.Writer, settings league.Settings, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, res := range results {
		status := ""
		if res.Stalled {
			status = " (catalog exhausted)"
		}
		fmt.Fprintf(tw, "Draft position %d of %d: %d picks, projected %.1f, prior %.1f%s\n",
			res.DraftPosition, settings.NumTeams, res.Picks, res.ProjectedTotal, res.PriorTotal, status)
		for i, entry := range res.Entries {
			fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\t%s\t%.1f\n",
				i+1, entry.Slot, entry.Player.Name, entry.Player.Team, entry.Player.Position, entry.Player.ProjectedPoints)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
