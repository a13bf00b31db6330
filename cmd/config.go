package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/desertthunder/coverwall/internal/formatter"
	"github.com/desertthunder/coverwall/internal/shared"
	"github.com/urfave/cli/v3"
)

// ConfigInit writes the embedded example config to --config.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if err := shared.CreateConfigFile(configPath); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", configPath)
	r.writePlain("%s\n", formatter.Success("✓ Config written to "+configPath))
	r.writePlain("Set %s and %s (or edit [credentials.spotify]) before running fetch.\n",
		shared.EnvClientID, shared.EnvClientSecret)
	return nil
}

// ConfigShow prints the effective configuration as TOML with credentials masked.
func (r *Runner) ConfigShow(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	masked := *config
	masked.Credentials.Spotify.ClientID = mask(config.Credentials.Spotify.ClientID)
	masked.Credentials.Spotify.ClientSecret = mask(config.Credentials.Spotify.ClientSecret)

	if err := toml.NewEncoder(r.output).Encode(masked); err != nil {
		return fmt.Errorf("failed to print config: %w", err)
	}
	return nil
}

// mask keeps the last four characters of a secret.
func mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}
