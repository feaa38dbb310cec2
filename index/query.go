package index

import "net/url"

// Parser names the query parser the index runs a query with.
type Parser string

const (
	// ParserEdismax is the extended disjunction max parser. It supports
	// leading wildcards.
	ParserEdismax Parser = "edismax"
	// ParserComplexPhrase supports wildcards inside quoted phrases.
	ParserComplexPhrase Parser = "complexphrase"
)

// Operator is the default boolean operator between query terms.
type Operator string

const (
	OperatorAnd Operator = "AND"
	OperatorOr  Operator = "OR"
)

// Params are the query parameters sent alongside the query text.
type Params struct {
	Parser   Parser
	Operator Operator
}

// Values renders the parameters as Solr request parameters.
func (p Params) Values() url.Values {
	v := url.Values{}
	if p.Parser != "" {
		v.Set("defType", string(p.Parser))
	}
	if p.Operator != "" {
		v.Set("q.op", string(p.Operator))
	}
	return v
}

// Query is a query string together with the parameters it must run with.
type Query struct {
	Text   string
	Params Params
}

// Values renders the query text and its parameters as Solr request parameters.
func (q Query) Values() url.Values {
	v := q.Params.Values()
	v.Set("q", q.Text)
	return v
}
