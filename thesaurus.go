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


// Package thesaurus manages a concept thesaurus and tags the documents of a
// search index with it.
package thesaurus

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/poiesic/thesaurus/config"
	"github.com/poiesic/thesaurus/core"
	"github.com/poiesic/thesaurus/importer"
	"github.com/poiesic/thesaurus/index"
	"github.com/poiesic/thesaurus/index/solr"
	"github.com/poiesic/thesaurus/storage"
	"github.com/poiesic/thesaurus/storage/badger"
	"github.com/poiesic/thesaurus/tagging"
)

// Relation names accepted by AddLabel.
const (
	RelationAltLabel    = "altLabel"
	RelationHiddenLabel = "hiddenLabel"
)

type Database struct {
	repos     *badger.Repositories
	connector index.Connector
	cfg       *config.Config
	progress  io.Writer
	logger    *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	connector index.Connector
	progress  io.Writer
	logger    *slog.Logger
}

// WithConnector replaces the Solr client built from the index configuration.
func WithConnector(connector index.Connector) DatabaseOption {
	return func(o *databaseOptions) {
		o.connector = connector
	}
}

// WithProgress reports TagAll progress to w.
func WithProgress(w io.Writer) DatabaseOption {
	return func(o *databaseOptions) {
		o.progress = w
	}
}

// WithLogger sets the logger handed to every component.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		o.logger = logger
	}
}

// NewDatabase opens the store described by cfg and connects it to the search
// index. A nil cfg means config.DefaultConfig().
func NewDatabase(cfg *config.Config, opts ...DatabaseOption) (*Database, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &databaseOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	connector := options.connector
	if connector == nil {
		client, err := solr.NewClient(cfg.Index.URL, cfg.Index.Core,
			solr.WithUniqueKey(cfg.Index.UniqueKey),
			solr.WithPageSize(cfg.Index.PageSize),
			solr.WithRetry(cfg.Index.MaxRetries, cfg.Index.RetryDelay),
			solr.WithHTTPClient(&http.Client{Timeout: cfg.Index.Timeout}),
			solr.WithLogger(options.logger),
		)
		if err != nil {
			return nil, err
		}
		connector = client
	}

	repos, err := badger.OpenRepositories(cfg.Database.Path, cfg.Database.InMemory)
	if err != nil {
		return nil, err
	}

	return &Database{
		repos:     repos,
		connector: connector,
		cfg:       cfg,
		progress:  options.progress,
		logger:    options.logger,
	}, nil
}

func (db *Database) Close() error {
	if err := db.repos.Close(); err != nil {
		db.logger.Error("error closing storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) ConceptRepository() storage.ConceptRepository {
	return db.repos.Concepts
}

func (db *Database) GroupRepository() storage.GroupRepository {
	return db.repos.Groups
}

func (db *Database) FacetRepository() storage.FacetRepository {
	return db.repos.Facets
}

func (db *Database) Connector() index.Connector {
	return db.connector
}

// NewTagger creates a Tagger wired to the database's groups, facets and
// connector. opts are applied after the configured defaults.
func (db *Database) NewTagger(opts ...tagging.Option) (*tagging.Tagger, error) {
	defaults := []tagging.Option{
		tagging.WithGroups(db.repos.Groups),
		tagging.WithFacets(db.repos.Facets),
		tagging.WithDefaultFacet(db.cfg.Tagging.DefaultFacet),
		tagging.WithVerbose(db.cfg.Tagging.Verbose),
		tagging.WithStrictGroups(db.cfg.Tagging.StrictGroups),
		tagging.WithLogger(db.logger),
	}
	return tagging.NewTagger(db.connector, append(defaults, opts...)...)
}

// NewBatchTagger creates a BatchTagger over every stored concept.
func (db *Database) NewBatchTagger(opts ...tagging.BatchOption) (*tagging.BatchTagger, error) {
	tagger, err := db.NewTagger()
	if err != nil {
		return nil, err
	}
	defaults := []tagging.BatchOption{tagging.WithWorkers(db.cfg.Tagging.Workers)}
	if db.progress != nil {
		defaults = append(defaults, tagging.WithProgress(db.progress, 10))
	}
	return tagging.NewBatchTagger(tagger, db.repos.Concepts, append(defaults, opts...)...)
}

func (db *Database) NewImporter(opts ...importer.Option) (*importer.Importer, error) {
	opts = append([]importer.Option{importer.WithLogger(db.logger)}, opts...)
	return importer.New(db.repos.Concepts, db.repos.Groups, db.repos.Facets, opts...)
}

// TagConcept tags the documents matching the stored concept id and returns
// the run's statistics with the status messages for the user.
func (db *Database) TagConcept(ctx context.Context, id core.ID) (tagging.Stats, []string, error) {
	concept, err := db.repos.Concepts.GetConcept(ctx, id)
	if err != nil {
		return tagging.Stats{}, nil, fmt.Errorf("load concept %d: %w", id, err)
	}

	tagger, err := db.NewTagger()
	if err != nil {
		return tagging.Stats{}, nil, err
	}

	stats, err := tagger.TagConcept(ctx, concept)
	if err != nil {
		return stats, nil, err
	}
	return stats, tagging.Summarize(concept.Name(), stats), nil
}

// TagAll tags the documents of every stored concept.
func (db *Database) TagAll(ctx context.Context) (*tagging.Report, error) {
	batch, err := db.NewBatchTagger()
	if err != nil {
		return nil, err
	}
	return batch.TagAll(ctx)
}

// AddLabel adds label to concept id as an alternate (RelationAltLabel) or
// hidden label (RelationHiddenLabel). Documents are not tagged; call
// TagConcept for that.
func (db *Database) AddLabel(ctx context.Context, id core.ID, relation, label string) (*core.Concept, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, ErrEmptyLabel
	}
	if relation != RelationAltLabel && relation != RelationHiddenLabel {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedRelation, relation)
	}

	concept, err := db.repos.Concepts.GetConcept(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load concept %d: %w", id, err)
	}

	switch relation {
	case RelationAltLabel:
		concept.Alternates = append(concept.Alternates, core.Alternate{Label: label})
	case RelationHiddenLabel:
		concept.Hidden = append(concept.Hidden, core.Hidden{Label: label})
	}

	if _, err := db.repos.Concepts.UpdateConcepts(ctx, concept); err != nil {
		return nil, fmt.Errorf("add %s to concept %d: %w", relation, id, err)
	}
	db.logger.Info("added label", "concept", concept.Name(), "relation", relation, "label", label)
	return concept, nil
}
