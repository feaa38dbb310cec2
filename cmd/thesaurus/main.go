// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/thesaurus"
	"github.com/poiesic/thesaurus/config"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "thesaurus",
		Usage: "Manage a concept thesaurus and tag search index documents with it",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML config file",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Write a config file with default values",
				Action: initCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "out",
						Aliases:  []string{"o"},
						Usage:    "Path of the config file to write",
						Required: true,
					},
				},
			},
			{
				Name:      "import",
				Usage:     "Import a YAML thesaurus file",
				ArgsUsage: "FILE",
				Action:    importCommand,
				Flags:     databaseFlags(),
			},
			{
				Name:   "list",
				Usage:  "List all concepts",
				Action: listCommand,
				Flags:  databaseFlags(),
			},
			{
				Name:   "tag",
				Usage:  "Tag documents matching one concept",
				Action: tagCommand,
				Flags: append(taggingFlags(),
					&cli.Uint64Flag{
						Name:  "id",
						Usage: "ID of the concept",
					},
					&cli.StringFlag{
						Name:  "label",
						Usage: "Preferred label of the concept (alternative to --id)",
					},
				),
			},
			{
				Name:   "tag-all",
				Usage:  "Tag documents matching any concept",
				Action: tagAllCommand,
				Flags: append(taggingFlags(),
					&cli.IntFlag{
						Name:    "workers",
						Aliases: []string{"w"},
						Usage:   "Number of concepts tagged concurrently",
					},
					&cli.BoolFlag{
						Name:  "progress",
						Usage: "Report progress on stderr",
					},
				),
			},
			{
				Name:   "add-label",
				Usage:  "Add an alternate or hidden label to a concept",
				Action: addLabelCommand,
				Flags: append(databaseFlags(),
					&cli.Uint64Flag{
						Name:     "id",
						Usage:    "ID of the concept",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "relation",
						Usage: "Kind of label (altLabel, hiddenLabel)",
						Value: thesaurus.RelationAltLabel,
					},
					&cli.StringFlag{
						Name:     "label",
						Usage:    "Label to add",
						Required: true,
					},
				),
			},
		},
	}
}

func databaseFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to BadgerDB database directory (overrides config)",
		},
	}
}

func taggingFlags() []cli.Flag {
	return append(databaseFlags(),
		&cli.StringFlag{
			Name:  "solr-url",
			Usage: "Solr base URL, e.g. http://localhost:8983/solr (overrides config)",
		},
		&cli.StringFlag{
			Name:  "solr-core",
			Usage: "Solr core name (overrides config)",
		},
		&cli.StringFlag{
			Name:  "default-facet",
			Usage: "Field for values without a facet (overrides config)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Log every checked label",
		},
	)
}

// loadConfig reads the config file, if any, and applies the command's flags
// on top of it.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	overrides := &config.Config{}
	overrides.Database.Path = c.String("db")
	overrides.Index.URL = c.String("solr-url")
	overrides.Index.Core = c.String("solr-core")
	overrides.Tagging.DefaultFacet = c.String("default-facet")
	overrides.Tagging.Workers = c.Int("workers")
	overrides.Tagging.Verbose = c.Bool("verbose")
	cfg.Merge(overrides)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
