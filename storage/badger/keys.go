package badger

import (
	"encoding/binary"

	"github.com/poiesic/thesaurus/core"
)

// Key prefixes for different data types
const (
	conceptRecordPrefix = "conrec:"
	conceptLabelPrefix  = "conlab:"
	conceptIDSeq        = "conrecseq"
	groupRecordPrefix   = "grprec:"
	groupLabelPrefix    = "grplab:"
	groupIDSeq          = "grprecseq"
	facetRecordPrefix   = "facrec:"
)

// makeIDKey builds prefix followed by the big-endian ID, so that prefix
// iteration returns records in ID order.
func makeIDKey(prefix string, id core.ID) []byte {
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeLabelKey builds a label index key. Labels are normalized so lookups
// are case-insensitive.
func makeLabelKey(prefix, label string) []byte {
	return []byte(prefix + core.NormalizeLabel(label))
}

func makeConceptKey(id core.ID) []byte {
	return makeIDKey(conceptRecordPrefix, id)
}

func makeConceptLabelKey(label string) []byte {
	return makeLabelKey(conceptLabelPrefix, label)
}

func makeGroupKey(id core.ID) []byte {
	return makeIDKey(groupRecordPrefix, id)
}

func makeGroupLabelKey(label string) []byte {
	return makeLabelKey(groupLabelPrefix, label)
}

func makeFacetKey(id core.ID) []byte {
	return makeIDKey(facetRecordPrefix, id)
}
