// Command chronicle prints a developer's weekly chronicle to the terminal
// and writes the SVG profile card to a file.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/joho/godotenv"

	"github.com/devchronicle/chronicle/pkg/card"
	"github.com/devchronicle/chronicle/pkg/github"
	"github.com/devchronicle/chronicle/pkg/httpcache"
	"github.com/devchronicle/chronicle/pkg/report"
	"github.com/devchronicle/chronicle/pkg/zenn"
)

var (
	ghUser   = flag.String("gh", "", "GitHub username (required)")
	zennUser = flag.String("zenn", "", "Zenn username (optional)")
	outFile  = flag.String("out", "card.svg", "Path for the SVG card ('' to skip)")
	dark     = flag.Bool("dark", false, "Render the card in the dark theme")
	format   = flag.String("format", "table", "Output format: table or json")
	token    = flag.String("token", "", "GitHub API token (or set GITHUB_TOKEN)")
	verbose  = flag.Bool("verbose", false, "Enable verbose logging")
)

const fetchTimeout = 30 * time.Second

func main() {
	_ = godotenv.Load()
	flag.Parse()

	if *ghUser == "" && *zennUser == "" {
		displayError("specify -gh and/or -zenn")
		flag.Usage()
		os.Exit(1)
	}
	if *token == "" {
		*token = os.Getenv("GITHUB_TOKEN")
	}

	handler := slog.NewTextHandler(io.Discard, nil)
	if *verbose {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	logger := slog.New(handler)

	cache := httpcache.New(5*time.Minute, logger)
	ghClient := github.New(*token, cache, logger)
	zennClient := zenn.New(cache, logger)

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Fetching activity..."
	s.Start()

	rep, warnings, err := fetchReport(ctx, ghClient, zennClient, *ghUser, *zennUser, logger)
	s.Stop()

	if err != nil {
		displayError(fmt.Sprintf("Failed to build report: %v", err))
		os.Exit(1)
	}
	for _, warning := range warnings {
		displayWarning(warning)
	}

	switch *format {
	case "json":
		if err := displayJSON(rep); err != nil {
			displayError(fmt.Sprintf("Failed to encode report: %v", err))
			os.Exit(1)
		}
	case "table":
		displayTable(rep)
	default:
		displayError(fmt.Sprintf("unsupported format: %s", *format))
		os.Exit(1)
	}

	if *outFile != "" && rep.HasGitHub() {
		svg := card.Render(*ghUser, card.StatsFromReport(rep), card.Options{
			Dark:     *dark,
			ZennUser: *zennUser,
		})
		if err := os.WriteFile(*outFile, []byte(svg), 0o644); err != nil {
			displayError(fmt.Sprintf("Failed to write card: %v", err))
			os.Exit(1)
		}
		displaySuccess("Card written to " + *outFile)
	}
}

// fetchReport pulls both platforms concurrently, degrading the Zenn section
// to a warning on failure.
func fetchReport(ctx context.Context, ghClient *github.Client, zennClient *zenn.Client, ghName, zennName string, logger *slog.Logger) (*report.Report, []string, error) {
	var (
		wg       sync.WaitGroup
		ghData   *report.GitHubData
		warnings []string
		ghErr    error
		zennData *report.ZennData
		zennErr  error
	)

	if ghName != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ghData, warnings, ghErr = ghClient.FetchUserData(ctx, ghName)
		}()
	}
	if zennName != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			zennData, zennErr = zennClient.FetchArticles(ctx, zennName)
		}()
	}
	wg.Wait()

	if ghErr != nil {
		return nil, nil, ghErr
	}
	if zennErr != nil {
		logger.Warn("Zenn fetch failed", "username", zennName, "error", zennErr)
		warnings = append(warnings, "Zenn記事の取得に失敗しました")
	}

	rep := report.Build(ghData, zennData, ghName, zennName)
	rep.Notices = warnings
	return rep, warnings, nil
}
