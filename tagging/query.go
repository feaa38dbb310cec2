package tagging

import (
	"strings"

	"github.com/poiesic/thesaurus/core"
	"github.com/poiesic/thesaurus/index"
)

// BuildQuery turns a label, an optional query override and a query type into
// an index query.
//
// An empty query falls back to the label and an empty query type means
// PHRASE. PHRASE queries are wrapped in double quotes unless they already
// are or consist of a single token. Quoted queries containing a wildcard run
// with the complex phrase parser, everything else with edismax. The default
// operator is OR for OR queries and AND otherwise.
func BuildQuery(label, query string, queryType core.QueryType) index.Query {
	if query == "" {
		query = label
	}
	if queryType == "" {
		queryType = core.QueryTypePhrase
	}

	if queryType == core.QueryTypePhrase && maskPhrase(query) {
		query = `"` + query + `"`
	}

	params := index.Params{
		Parser:   index.ParserEdismax,
		Operator: index.OperatorAnd,
	}
	if strings.Contains(query, `"`) && strings.ContainsAny(query, "*?") {
		params.Parser = index.ParserComplexPhrase
	}
	if queryType == core.QueryTypeOr {
		params.Operator = index.OperatorOr
	}

	return index.Query{Text: query, Params: params}
}

// maskPhrase reports whether a PHRASE query still needs quotes. Single
// tokens stay bare since complex phrase queries need several words.
func maskPhrase(query string) bool {
	if len(query) >= 2 && strings.HasPrefix(query, `"`) && strings.HasSuffix(query, `"`) {
		return false
	}
	return strings.ContainsFunc(query, isSpace)
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
