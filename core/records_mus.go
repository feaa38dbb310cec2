package core

import (
	"errors"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// ErrInvalidLength is returned when an encoded slice length is negative or
// larger than the remaining input.
var ErrInvalidLength = errors.New("invalid encoded length")

// Serializers for the stored records. Layouts are positional: fields are
// written in declaration order, slices are length-prefixed and times are
// stored as Unix microseconds.
var (
	IDMUS         = idMUS{}
	FacetMUS      = facetMUS{}
	ConceptMUS    = conceptMUS{}
	GroupMUS      = groupMUS{}
	AlternateMUS  = aliasMUS{}
	ConceptTagMUS = tagMUS{}
)

type idMUS struct{}

func (idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	u, n, err := varint.Uint64.Unmarshal(bs)
	return ID(u), n, err
}

func (idMUS) Size(v ID) int {
	return varint.Uint64.Size(uint64(v))
}

type facetMUS struct{}

func (facetMUS) Marshal(v Facet, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Field, bs[n:])
	n += ord.String.Marshal(v.Label, bs[n:])
	return
}

func (facetMUS) Unmarshal(bs []byte) (v Facet, n int, err error) {
	r := reader{bs: bs}
	v.Id = r.id()
	v.Field = r.string()
	v.Label = r.string()
	return v, r.n, r.err
}

func (facetMUS) Size(v Facet) int {
	return IDMUS.Size(v.Id) + ord.String.Size(v.Field) + ord.String.Size(v.Label)
}

// aliasMUS encodes both Alternate and Hidden, which share a layout.
type aliasMUS struct{}

func (aliasMUS) Marshal(v Alternate, bs []byte) (n int) {
	n = ord.String.Marshal(v.Label, bs)
	n += ord.String.Marshal(v.Query, bs[n:])
	n += ord.String.Marshal(string(v.QueryType), bs[n:])
	return
}

func (aliasMUS) Unmarshal(bs []byte) (v Alternate, n int, err error) {
	r := reader{bs: bs}
	v.Label = r.string()
	v.Query = r.string()
	v.QueryType = QueryType(r.string())
	return v, r.n, r.err
}

func (aliasMUS) Size(v Alternate) int {
	return ord.String.Size(v.Label) + ord.String.Size(v.Query) + ord.String.Size(string(v.QueryType))
}

func marshalHidden(v Hidden, bs []byte) int {
	return AlternateMUS.Marshal(Alternate(v), bs)
}

func unmarshalHidden(bs []byte) (Hidden, int, error) {
	v, n, err := AlternateMUS.Unmarshal(bs)
	return Hidden(v), n, err
}

func sizeHidden(v Hidden) int {
	return AlternateMUS.Size(Alternate(v))
}

// tagMUS encodes both ConceptTag and GroupTag, which share a layout.
type tagMUS struct{}

func (tagMUS) Marshal(v ConceptTag, bs []byte) (n int) {
	n = ord.String.Marshal(v.Label, bs)
	n += IDMUS.Marshal(v.FacetId, bs[n:])
	return
}

func (tagMUS) Unmarshal(bs []byte) (v ConceptTag, n int, err error) {
	r := reader{bs: bs}
	v.Label = r.string()
	v.FacetId = r.id()
	return v, r.n, r.err
}

func (tagMUS) Size(v ConceptTag) int {
	return ord.String.Size(v.Label) + IDMUS.Size(v.FacetId)
}

func marshalGroupTag(v GroupTag, bs []byte) int {
	return ConceptTagMUS.Marshal(ConceptTag(v), bs)
}

func unmarshalGroupTag(bs []byte) (GroupTag, int, error) {
	v, n, err := ConceptTagMUS.Unmarshal(bs)
	return GroupTag(v), n, err
}

func sizeGroupTag(v GroupTag) int {
	return ConceptTagMUS.Size(ConceptTag(v))
}

type conceptMUS struct{}

func (conceptMUS) Marshal(v Concept, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.PrefLabel, bs[n:])
	n += ord.String.Marshal(v.Query, bs[n:])
	n += ord.String.Marshal(string(v.QueryType), bs[n:])
	n += IDMUS.Marshal(v.FacetId, bs[n:])
	n += marshalSlice(v.Tags, ConceptTagMUS.Marshal, bs[n:])
	n += marshalSlice(v.GroupIds, IDMUS.Marshal, bs[n:])
	n += marshalSlice(v.Alternates, AlternateMUS.Marshal, bs[n:])
	n += marshalSlice(v.Hidden, marshalHidden, bs[n:])
	n += marshalSlice(v.Broader, IDMUS.Marshal, bs[n:])
	n += marshalSlice(v.Narrower, IDMUS.Marshal, bs[n:])
	n += marshalSlice(v.Related, IDMUS.Marshal, bs[n:])
	n += marshalTime(v.InsertedAt, bs[n:])
	n += marshalTime(v.UpdatedAt, bs[n:])
	return
}

func (conceptMUS) Unmarshal(bs []byte) (v Concept, n int, err error) {
	r := reader{bs: bs}
	v.Id = r.id()
	v.PrefLabel = r.string()
	v.Query = r.string()
	v.QueryType = QueryType(r.string())
	v.FacetId = r.id()
	v.Tags = readSlice(&r, ConceptTagMUS.Unmarshal)
	v.GroupIds = readSlice(&r, IDMUS.Unmarshal)
	v.Alternates = readSlice(&r, AlternateMUS.Unmarshal)
	v.Hidden = readSlice(&r, unmarshalHidden)
	v.Broader = readSlice(&r, IDMUS.Unmarshal)
	v.Narrower = readSlice(&r, IDMUS.Unmarshal)
	v.Related = readSlice(&r, IDMUS.Unmarshal)
	v.InsertedAt = r.time()
	v.UpdatedAt = r.time()
	return v, r.n, r.err
}

func (conceptMUS) Size(v Concept) int {
	return IDMUS.Size(v.Id) +
		ord.String.Size(v.PrefLabel) +
		ord.String.Size(v.Query) +
		ord.String.Size(string(v.QueryType)) +
		IDMUS.Size(v.FacetId) +
		sizeSlice(v.Tags, ConceptTagMUS.Size) +
		sizeSlice(v.GroupIds, IDMUS.Size) +
		sizeSlice(v.Alternates, AlternateMUS.Size) +
		sizeSlice(v.Hidden, sizeHidden) +
		sizeSlice(v.Broader, IDMUS.Size) +
		sizeSlice(v.Narrower, IDMUS.Size) +
		sizeSlice(v.Related, IDMUS.Size) +
		sizeTime(v.InsertedAt) +
		sizeTime(v.UpdatedAt)
}

type groupMUS struct{}

func (groupMUS) Marshal(v Group, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.PrefLabel, bs[n:])
	n += IDMUS.Marshal(v.FacetId, bs[n:])
	n += IDMUS.Marshal(v.ParentId, bs[n:])
	n += marshalSlice(v.Tags, marshalGroupTag, bs[n:])
	n += marshalTime(v.InsertedAt, bs[n:])
	n += marshalTime(v.UpdatedAt, bs[n:])
	return
}

func (groupMUS) Unmarshal(bs []byte) (v Group, n int, err error) {
	r := reader{bs: bs}
	v.Id = r.id()
	v.PrefLabel = r.string()
	v.FacetId = r.id()
	v.ParentId = r.id()
	v.Tags = readSlice(&r, unmarshalGroupTag)
	v.InsertedAt = r.time()
	v.UpdatedAt = r.time()
	return v, r.n, r.err
}

func (groupMUS) Size(v Group) int {
	return IDMUS.Size(v.Id) +
		ord.String.Size(v.PrefLabel) +
		IDMUS.Size(v.FacetId) +
		IDMUS.Size(v.ParentId) +
		sizeSlice(v.Tags, sizeGroupTag) +
		sizeTime(v.InsertedAt) +
		sizeTime(v.UpdatedAt)
}

func marshalTime(t time.Time, bs []byte) int {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func sizeTime(t time.Time) int {
	return varint.Int64.Size(t.UnixMicro())
}

func marshalSlice[T any](vs []T, marshal func(T, []byte) int, bs []byte) (n int) {
	n = varint.Int.Marshal(len(vs), bs)
	for _, v := range vs {
		n += marshal(v, bs[n:])
	}
	return
}

func sizeSlice[T any](vs []T, size func(T) int) int {
	n := varint.Int.Size(len(vs))
	for _, v := range vs {
		n += size(v)
	}
	return n
}

// reader walks a byte slice, stopping at the first error.
type reader struct {
	bs  []byte
	n   int
	err error
}

func (r *reader) id() ID {
	if r.err != nil {
		return 0
	}
	v, n, err := IDMUS.Unmarshal(r.bs[r.n:])
	r.n += n
	r.err = err
	return v
}

func (r *reader) string() string {
	if r.err != nil {
		return ""
	}
	v, n, err := ord.String.Unmarshal(r.bs[r.n:])
	r.n += n
	r.err = err
	return v
}

func (r *reader) time() time.Time {
	if r.err != nil {
		return time.Time{}
	}
	v, n, err := varint.Int64.Unmarshal(r.bs[r.n:])
	r.n += n
	r.err = err
	if err != nil {
		return time.Time{}
	}
	return time.UnixMicro(v).UTC()
}

func (r *reader) length() int {
	if r.err != nil {
		return 0
	}
	v, n, err := varint.Int.Unmarshal(r.bs[r.n:])
	r.n += n
	if err != nil {
		r.err = err
		return 0
	}
	if v < 0 || v > len(r.bs)-r.n {
		r.err = ErrInvalidLength
		return 0
	}
	return v
}

func readSlice[T any](r *reader, unmarshal func([]byte) (T, int, error)) []T {
	length := r.length()
	if r.err != nil || length == 0 {
		return nil
	}
	vs := make([]T, length)
	for i := range vs {
		v, n, err := unmarshal(r.bs[r.n:])
		r.n += n
		if err != nil {
			r.err = err
			return nil
		}
		vs[i] = v
	}
	return vs
}
