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


// Package importer loads YAML thesaurus files into storage.
//
// An import runs in two passes per record kind. The first pass stores every
// facet, group and concept without cross references; the second resolves
// group parents and broader, narrower and related concepts by label, so
// entries may refer to records that appear later in the file. Records whose
// preferred label already exists in storage are replaced and keep their ID.
// Concepts without a preferred label are always added.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/thesaurus/core"
	"github.com/poiesic/thesaurus/storage"
)

// Result counts the records written by an import.
type Result struct {
	Facets   int
	Groups   int
	Concepts int
	// Replaced counts groups and concepts that existed before the import.
	Replaced int
}

// Importer writes thesaurus files to the repositories.
type Importer struct {
	concepts storage.ConceptRepository
	groups   storage.GroupRepository
	facets   storage.FacetRepository
	logger   *slog.Logger
}

// Option configures an Importer.
type Option func(*Importer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(im *Importer) error {
		if logger == nil {
			logger = slog.Default()
		}
		im.logger = logger
		return nil
	}
}

// New creates an Importer writing to the given repositories.
func New(concepts storage.ConceptRepository, groups storage.GroupRepository, facets storage.FacetRepository, opts ...Option) (*Importer, error) {
	if concepts == nil || groups == nil || facets == nil {
		return nil, ErrRepositoryRequired
	}

	im := &Importer{
		concepts: concepts,
		groups:   groups,
		facets:   facets,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(im); err != nil {
			return nil, err
		}
	}
	im.logger = im.logger.With("component", "importer")
	return im, nil
}

// ImportFile reads the thesaurus file at path and imports it.
func (im *Importer) ImportFile(ctx context.Context, path string) (*Result, error) {
	f, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return im.Import(ctx, f)
}

// Import writes f to storage. Facets referenced by a group, concept or tag
// but not declared in the file are created with an empty label unless they
// already exist.
func (im *Importer) Import(ctx context.Context, f *File) (*Result, error) {
	run := &importRun{
		Importer: im,
		result:   &Result{},
		facetIDs: make(map[string]core.ID),
		byLabel:  make(map[string]*core.Group),
	}

	if err := run.importFacets(ctx, f.Facets); err != nil {
		return run.result, err
	}
	if err := run.importGroups(ctx, f.Groups); err != nil {
		return run.result, err
	}
	if err := run.importConcepts(ctx, f.Concepts); err != nil {
		return run.result, err
	}

	im.logger.Info("imported thesaurus",
		"facets", run.result.Facets,
		"groups", run.result.Groups,
		"concepts", run.result.Concepts,
		"replaced", run.result.Replaced)
	return run.result, nil
}

// importRun holds the lookups of a single import.
type importRun struct {
	*Importer
	result   *Result
	facetIDs map[string]core.ID
	byLabel  map[string]*core.Group
}

func (r *importRun) importFacets(ctx context.Context, entries []FacetEntry) error {
	for _, entry := range entries {
		facet := &core.Facet{Field: entry.Field, Label: entry.Label}
		if _, err := r.facets.AddFacets(ctx, facet); err != nil {
			return fmt.Errorf("import facet %q: %w", entry.Field, err)
		}
		r.facetIDs[entry.Field] = facet.Id
		r.result.Facets++
	}
	return nil
}

// facetID returns the ID of the facet for field, creating the facet when it
// is not stored yet. An empty field is the default facet (ID 0).
func (r *importRun) facetID(ctx context.Context, field string) (core.ID, error) {
	if field == "" {
		return 0, nil
	}
	if id, ok := r.facetIDs[field]; ok {
		return id, nil
	}

	id := core.IDFromContent(field)
	_, err := r.facets.GetFacet(ctx, id)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		facet := &core.Facet{Field: field}
		if _, err := r.facets.AddFacets(ctx, facet); err != nil {
			return 0, fmt.Errorf("create facet %q: %w", field, err)
		}
		r.logger.Debug("created undeclared facet", "field", field)
		r.result.Facets++
	case err != nil:
		return 0, err
	}

	r.facetIDs[field] = id
	return id, nil
}

func (r *importRun) importGroups(ctx context.Context, entries []GroupEntry) error {
	for _, entry := range entries {
		facetID, err := r.facetID(ctx, entry.Facet)
		if err != nil {
			return fmt.Errorf("import group %q: %w", entry.Label, err)
		}

		group := &core.Group{PrefLabel: entry.Label, FacetId: facetID}
		for _, tag := range entry.Tags {
			tagFacet, err := r.facetID(ctx, tag.Facet)
			if err != nil {
				return fmt.Errorf("import group %q: %w", entry.Label, err)
			}
			group.Tags = append(group.Tags, core.GroupTag{Label: tag.Label, FacetId: tagFacet})
		}

		existing, err := r.findGroup(ctx, entry.Label)
		if err != nil && !errors.Is(err, ErrUnknownGroup) {
			return err
		}
		if existing != nil {
			group.Id = existing.Id
			// Parents are set in the second pass once every group exists.
			group.ParentId = existing.ParentId
			_, err = r.groups.UpdateGroups(ctx, group)
			r.result.Replaced++
		} else {
			_, err = r.groups.AddGroups(ctx, group)
		}
		if err != nil {
			return fmt.Errorf("import group %q: %w", entry.Label, err)
		}

		r.byLabel[core.NormalizeLabel(group.PrefLabel)] = group
		r.result.Groups++
	}

	for _, entry := range entries {
		group := r.byLabel[core.NormalizeLabel(entry.Label)]
		var parentID core.ID
		if entry.Parent != "" {
			parent, err := r.findGroup(ctx, entry.Parent)
			if err != nil {
				return fmt.Errorf("parent of group %q: %w", entry.Label, err)
			}
			parentID = parent.Id
		}
		if group.ParentId == parentID {
			continue
		}
		group.ParentId = parentID
		if _, err := r.groups.UpdateGroups(ctx, group); err != nil {
			return fmt.Errorf("set parent of group %q: %w", entry.Label, err)
		}
	}
	return nil
}

// findGroup looks a group up by label, first among the groups of this
// import, then in storage.
func (r *importRun) findGroup(ctx context.Context, label string) (*core.Group, error) {
	if group, ok := r.byLabel[core.NormalizeLabel(label)]; ok {
		return group, nil
	}
	group, err := r.groups.FindGroupByLabel(ctx, label)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, label)
	}
	if err != nil {
		return nil, err
	}
	return group, nil
}

func (r *importRun) importConcepts(ctx context.Context, entries []ConceptEntry) error {
	stored := make([]*core.Concept, len(entries))

	for i, entry := range entries {
		concept, err := r.buildConcept(ctx, entry)
		if err != nil {
			return fmt.Errorf("import concept %q: %w", entry.name(), err)
		}

		var existing *core.Concept
		if entry.Label != "" {
			existing, err = r.concepts.FindConceptByLabel(ctx, entry.Label)
			if err != nil && !errors.Is(err, storage.ErrNotFound) {
				return err
			}
		}
		if existing != nil {
			concept.Id = existing.Id
			_, err = r.concepts.UpdateConcepts(ctx, concept)
			r.result.Replaced++
		} else {
			_, err = r.concepts.AddConcepts(ctx, concept)
		}
		if err != nil {
			return fmt.Errorf("import concept %q: %w", entry.name(), err)
		}

		stored[i] = concept
		r.result.Concepts++
	}

	for i, entry := range entries {
		if len(entry.Broader) == 0 && len(entry.Narrower) == 0 && len(entry.Related) == 0 {
			continue
		}
		concept := stored[i]
		var err error
		if concept.Broader, err = r.conceptIDs(ctx, entry.Broader); err != nil {
			return fmt.Errorf("broader of concept %q: %w", entry.name(), err)
		}
		if concept.Narrower, err = r.conceptIDs(ctx, entry.Narrower); err != nil {
			return fmt.Errorf("narrower of concept %q: %w", entry.name(), err)
		}
		if concept.Related, err = r.conceptIDs(ctx, entry.Related); err != nil {
			return fmt.Errorf("related of concept %q: %w", entry.name(), err)
		}
		if _, err := r.concepts.UpdateConcepts(ctx, concept); err != nil {
			return fmt.Errorf("relate concept %q: %w", entry.name(), err)
		}
	}
	return nil
}

// buildConcept converts entry without its concept relations.
func (r *importRun) buildConcept(ctx context.Context, entry ConceptEntry) (*core.Concept, error) {
	qt, err := core.ParseQueryType(entry.QueryType)
	if err != nil {
		return nil, err
	}
	facetID, err := r.facetID(ctx, entry.Facet)
	if err != nil {
		return nil, err
	}

	concept := &core.Concept{
		PrefLabel: entry.Label,
		Query:     entry.Query,
		QueryType: qt,
		FacetId:   facetID,
	}

	for _, tag := range entry.Tags {
		tagFacet, err := r.facetID(ctx, tag.Facet)
		if err != nil {
			return nil, err
		}
		concept.Tags = append(concept.Tags, core.ConceptTag{Label: tag.Label, FacetId: tagFacet})
	}

	for _, label := range entry.Groups {
		group, err := r.findGroup(ctx, label)
		if err != nil {
			return nil, err
		}
		concept.GroupIds = append(concept.GroupIds, group.Id)
	}

	for _, alias := range entry.Alternates {
		alt, err := alias.alternate()
		if err != nil {
			return nil, err
		}
		concept.Alternates = append(concept.Alternates, alt)
	}

	for _, alias := range entry.Hidden {
		hidden, err := alias.hidden()
		if err != nil {
			return nil, err
		}
		concept.Hidden = append(concept.Hidden, hidden)
	}

	return concept, nil
}

func (r *importRun) conceptIDs(ctx context.Context, labels []string) ([]core.ID, error) {
	var ids []core.ID
	for _, label := range labels {
		concept, err := r.concepts.FindConceptByLabel(ctx, label)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownConcept, label)
		}
		if err != nil {
			return nil, err
		}
		ids = append(ids, concept.Id)
	}
	return ids, nil
}
