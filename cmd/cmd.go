// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func envFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "env",
		Usage: "Path to a .env file with SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET",
		Value: ".env",
	}
}

func inputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "input",
		Aliases: []string{"i"},
		Usage:   "Path to the JSON source list (default: fetch.input from config)",
	}
}

func outputFlag(usage string) cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   usage,
	}
}

// fetchCommand retrieves every source and writes the results
func fetchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "Retrieve every artist, playlist and show in the source list and write them to disk",
		Flags: []cli.Flag{
			configFlag(),
			envFlag(),
			inputFlag(),
			outputFlag("Output directory, replaced on success (default: fetch.output_dir from config)"),
			&cli.BoolFlag{
				Name:  "no-index",
				Usage: "Skip writing index.json",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Action: r.Fetch,
	}
}

// validateCommand checks a source list without calling the API
func validateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Check the source list and print the descriptors it contains",
		Flags: []cli.Flag{
			configFlag(),
			inputFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output descriptors as JSON",
			},
		},
		Action: r.Validate,
	}
}

// inspectCommand summarizes a previous fetch from disk
func inspectCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Summarize the results written by a previous fetch",
		Flags: []cli.Flag{
			configFlag(),
			outputFlag("Output directory to read (default: fetch.output_dir from config)"),
		},
		Action: r.Inspect,
	}
}

// configCommand handles configuration file operations
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write the default config.toml",
				Flags: []cli.Flag{
					configFlag(),
				},
				Action: r.ConfigInit,
			},
			{
				Name:  "show",
				Usage: "Print the effective configuration with secrets masked",
				Flags: []cli.Flag{
					configFlag(),
					envFlag(),
				},
				Action: r.ConfigShow,
			},
		},
	}
}
