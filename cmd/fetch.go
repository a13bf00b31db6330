package main

import (
	"cmp"
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/coverwall/internal/formatter"
	"github.com/desertthunder/coverwall/internal/models"
	"github.com/desertthunder/coverwall/internal/services"
	"github.com/desertthunder/coverwall/internal/shared"
	"github.com/desertthunder/coverwall/internal/tasks"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// Fetch retrieves every descriptor in the source list and, only when all of them succeed,
// replaces the output directory with the results.
func (r *Runner) Fetch(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := r.configureLogging(config, cmd.Bool("verbose")); err != nil {
		return err
	}

	input := cmp.Or(cmd.String("input"), config.Fetch.Input)
	outputDir := cmp.Or(cmd.String("output"), config.Fetch.OutputDir)
	logger := shared.WithLogger(r.logger, "run", shared.GenerateID())

	descriptors, err := models.LoadDescriptors(input)
	if err != nil {
		return err
	}
	logger.Info("loaded source list", "path", input, "sources", len(descriptors))

	catalog, err := r.catalogFor(ctx, config, logger)
	if err != nil {
		return err
	}

	exec := tasks.NewExecutor(tasks.ExecutorOpts{
		MaxAttempts: config.Fetch.MaxAttempts,
		Padding:     config.Fetch.RetryPadding.Duration,
		Logger:      logger,
	})
	batch := tasks.NewBatch(catalog, exec, logger)

	progressCh := make(chan tasks.ProgressUpdate, 10)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			if err := r.writePlain("📥 %s\n", update.Message); err != nil {
				logger.Debug("failed to print progress", "phase", update.Phase, "error", err)
			}
		}
	}()

	results, err := batch.Run(ctx, descriptors, progressCh)
	close(progressCh)
	<-done

	if err != nil {
		return fmt.Errorf("nothing written to %s, %d sources failed to retrieve:\n%w", outputDir, countErrors(err), err)
	}

	r.writePlain("💾 %s\n", tasks.PersistUpdate(len(results), outputDir).Message)
	written, err := formatter.WriteBatch(outputDir, results)
	if err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	if !cmd.Bool("no-index") {
		if _, err := formatter.WriteIndex(outputDir, results); err != nil {
			return fmt.Errorf("failed to write index: %w", err)
		}
	}
	logger.Info("results written", "dir", written.Directory, "files", len(written.Files))

	r.writePlainln("%s", formatter.SummaryTable(results))
	r.writePlain("%s\n", formatter.Success(fmt.Sprintf("✓ Wrote %d sources to %s", len(results), outputDir)))
	return nil
}

// catalogFor returns the injected catalog or authenticates a new Spotify client.
func (r *Runner) catalogFor(ctx context.Context, config *shared.Config, logger *log.Logger) (services.Catalog, error) {
	if r.catalog != nil {
		return r.catalog, nil
	}

	client, err := services.ClientCredentials(ctx, config.Credentials.Spotify, config.Spotify.Timeout.Duration,
		func(tok *oauth2.Token) {
			logger.Debug("obtained access token", "expires", tok.Expiry)
		})
	if err != nil {
		return nil, err
	}

	return services.NewSpotifyService(services.SpotifyOpts{
		BaseURL:           config.Spotify.BaseURL,
		Market:            config.Spotify.Market,
		AlbumGroups:       config.Spotify.AlbumGroups,
		RequestsPerSecond: config.Spotify.RequestsPerSecond,
		HTTPClient:        client,
	}), nil
}

// countErrors reports how many errors were joined into err.
func countErrors(err error) int {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return len(joined.Unwrap())
	}
	return 1
}

// Validate loads the source list and prints what it contains without calling the API.
func (r *Runner) Validate(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	input := cmp.Or(cmd.String("input"), config.Fetch.Input)
	descriptors, err := models.LoadDescriptors(input)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(descriptors, true)
	}

	r.writePlain("%s\n", formatter.DescriptorTable(descriptors))
	r.writePlain("%s\n", formatter.Success(fmt.Sprintf("✓ %s: %d sources", input, len(descriptors))))
	return nil
}

// Inspect reads the index written by a previous fetch and prints a summary.
func (r *Runner) Inspect(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	outputDir := cmp.Or(cmd.String("output"), config.Fetch.OutputDir)
	entries, err := formatter.ReadIndex(outputDir)
	if err != nil {
		return err
	}

	results := make([]models.RetrievalResult, 0, len(entries))
	for _, entry := range entries {
		result, err := formatter.ReadBatch(outputDir, entry.HTTPFriendlyShortName)
		if err != nil {
			return err
		}
		results = append(results, *result)
	}

	r.writePlain("%s\n", formatter.SummaryTable(results))
	return nil
}
