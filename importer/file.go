package importer

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/poiesic/thesaurus/core"
	"gopkg.in/yaml.v3"
)

// File is the YAML representation of a thesaurus. Groups, facets and related
// concepts are referenced by label (facets by field name), never by ID.
//
//	facets:
//	  - field: location_ss
//	    label: Locations
//	groups:
//	  - label: Europe
//	    facet: region_ss
//	  - label: Germany
//	    parent: Europe
//	concepts:
//	  - label: Berlin
//	    facet: location_ss
//	    groups: [Germany]
//	    alternates:
//	      - label: Berlin, Germany
//	    hidden:
//	      - label: Berln
type File struct {
	Facets   []FacetEntry   `yaml:"facets"`
	Groups   []GroupEntry   `yaml:"groups"`
	Concepts []ConceptEntry `yaml:"concepts"`
}

// FacetEntry describes a facet.
type FacetEntry struct {
	Field string `yaml:"field"`
	Label string `yaml:"label,omitempty"`
}

// TagEntry is an extra facet value of a concept or group.
type TagEntry struct {
	Label string `yaml:"label"`
	Facet string `yaml:"facet,omitempty"`
}

// AliasEntry is an alternate or hidden label.
type AliasEntry struct {
	Label     string `yaml:"label"`
	Query     string `yaml:"query,omitempty"`
	QueryType string `yaml:"query_type,omitempty"`
}

// GroupEntry describes a group. Parent is the label of the parent group.
type GroupEntry struct {
	Label  string     `yaml:"label"`
	Facet  string     `yaml:"facet,omitempty"`
	Parent string     `yaml:"parent,omitempty"`
	Tags   []TagEntry `yaml:"tags,omitempty"`
}

// ConceptEntry describes a concept. Groups, Broader, Narrower and Related
// hold labels.
type ConceptEntry struct {
	Label      string       `yaml:"label,omitempty"`
	Query      string       `yaml:"query,omitempty"`
	QueryType  string       `yaml:"query_type,omitempty"`
	Facet      string       `yaml:"facet,omitempty"`
	Tags       []TagEntry   `yaml:"tags,omitempty"`
	Groups     []string     `yaml:"groups,omitempty"`
	Alternates []AliasEntry `yaml:"alternates,omitempty"`
	Hidden     []AliasEntry `yaml:"hidden,omitempty"`
	Broader    []string     `yaml:"broader,omitempty"`
	Narrower   []string     `yaml:"narrower,omitempty"`
	Related    []string     `yaml:"related,omitempty"`
}

// Read parses a thesaurus file from r.
func Read(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	return &f, nil
}

// ReadFile parses the thesaurus file at path.
func ReadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open thesaurus file: %w", err)
	}
	defer fh.Close()
	return Read(fh)
}

// Write encodes f as YAML to w.
func (f *File) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return err
	}
	return enc.Close()
}

func (e AliasEntry) alternate() (core.Alternate, error) {
	qt, err := core.ParseQueryType(e.QueryType)
	if err != nil {
		return core.Alternate{}, fmt.Errorf("alias %q: %w", e.Label, err)
	}
	return core.Alternate{Label: e.Label, Query: e.Query, QueryType: qt}, nil
}

func (e AliasEntry) hidden() (core.Hidden, error) {
	alt, err := e.alternate()
	return core.Hidden(alt), err
}

func (e ConceptEntry) name() string {
	if e.Label != "" {
		return e.Label
	}
	return e.Query
}
