package core

import (
	"errors"
	"testing"
)

func TestValidateConcept(t *testing.T) {
	tests := []struct {
		name    string
		concept *Concept
		wantErr error
	}{
		{
			name:    "label only",
			concept: &Concept{PrefLabel: "Berlin"},
		},
		{
			name:    "query only",
			concept: &Concept{Query: "berlin*"},
		},
		{
			name: "with aliases",
			concept: &Concept{
				PrefLabel:  "Berlin",
				QueryType:  QueryTypeOr,
				Alternates: []Alternate{{Label: "Berlin City", QueryType: QueryTypePhrase}},
				Hidden:     []Hidden{{Label: "Berln"}},
				Tags:       []ConceptTag{{Label: "capital"}},
			},
		},
		{
			name:    "nil concept",
			concept: nil,
			wantErr: ErrInvalidConcept,
		},
		{
			name:    "neither label nor query",
			concept: &Concept{PrefLabel: "  ", Query: ""},
			wantErr: ErrMissingLabelOrQuery,
		},
		{
			name:    "unknown query type",
			concept: &Concept{PrefLabel: "Berlin", QueryType: "NEAR"},
			wantErr: ErrInvalidQueryType,
		},
		{
			name:    "empty alternate",
			concept: &Concept{PrefLabel: "Berlin", Alternates: []Alternate{{Label: ""}}},
			wantErr: ErrEmptyLabel,
		},
		{
			name:    "bad hidden query type",
			concept: &Concept{PrefLabel: "Berlin", Hidden: []Hidden{{Label: "Berln", QueryType: "x"}}},
			wantErr: ErrInvalidQueryType,
		},
		{
			name:    "empty tag",
			concept: &Concept{PrefLabel: "Berlin", Tags: []ConceptTag{{}}},
			wantErr: ErrEmptyLabel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConcept(tt.concept)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateConcept() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateConcept() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidConcept) {
				t.Errorf("ValidateConcept() error should wrap ErrInvalidConcept: %v", err)
			}
		})
	}
}

func TestValidateGroup(t *testing.T) {
	tests := []struct {
		name    string
		group   *Group
		wantErr error
	}{
		{"valid", &Group{PrefLabel: "Europe"}, nil},
		{"valid with parent", &Group{Id: 2, PrefLabel: "Germany", ParentId: 1}, nil},
		{"nil", nil, ErrInvalidGroup},
		{"empty label", &Group{}, ErrEmptyLabel},
		{"self parent", &Group{Id: 3, PrefLabel: "Loop", ParentId: 3}, ErrSelfParent},
		{"empty tag", &Group{PrefLabel: "Europe", Tags: []GroupTag{{}}}, ErrEmptyLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGroup(tt.group)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateGroup() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateGroup() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFacet(t *testing.T) {
	tests := []struct {
		name    string
		facet   *Facet
		wantErr error
	}{
		{"valid", &Facet{Field: "person_ss"}, nil},
		{"nil", nil, ErrInvalidFacet},
		{"empty field", &Facet{Label: "Persons"}, ErrEmptyField},
		{"whitespace", &Facet{Field: "person ss"}, ErrInvalidField},
		{"colon", &Facet{Field: "person:ss"}, ErrInvalidField},
		{"parenthesis", &Facet{Field: "person(ss)"}, ErrInvalidField},
		{"quote", &Facet{Field: `person"ss`}, ErrInvalidField},
		{"underscore and dot allowed", &Facet{Field: "attr.person_ss"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFacet(tt.facet)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateFacet() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateFacet() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseQueryType(t *testing.T) {
	tests := []struct {
		in      string
		want    QueryType
		wantErr bool
	}{
		{"", "", false},
		{"phrase", QueryTypePhrase, false},
		{" Or ", QueryTypeOr, false},
		{"AND", QueryTypeAnd, false},
		{"fuzzy", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseQueryType(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidQueryType) {
					t.Errorf("ParseQueryType(%q) error = %v, want ErrInvalidQueryType", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseQueryType(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseQueryType(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
