// Package taxonomy groups document records by the values of a tag category.
package taxonomy

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/doctags/internal/foundation/errors"
	"git.home.luguber.info/inful/doctags/internal/metadata"
)

// MissingYear is the sort key of a record without a year.
const MissingYear = 5000

// TagGroup is one tag value and the records carrying it.
type TagGroup struct {
	Name string
	Docs []*metadata.Record
}

// Grouping maps tag values to records, remembering the order in which tags
// were first seen.
type Grouping struct {
	category string
	order    []string
	docs     map[string][]*metadata.Record
}

func newGrouping(category string) *Grouping {
	return &Grouping{category: category, docs: make(map[string][]*metadata.Record)}
}

func (g *Grouping) add(tag string, rec *metadata.Record) {
	if _, ok := g.docs[tag]; !ok {
		g.order = append(g.order, tag)
	}
	g.docs[tag] = append(g.docs[tag], rec)
}

// Category returns the tag category the grouping was built for.
func (g *Grouping) Category() string { return g.category }

// Len returns the number of distinct tags.
func (g *Grouping) Len() int { return len(g.order) }

// Tags returns the tags in first-encounter order.
func (g *Grouping) Tags() []string { return slices.Clone(g.order) }

// Docs returns the records tagged with tag, in year order.
func (g *Grouping) Docs(tag string) []*metadata.Record { return g.docs[tag] }

// Sorted returns the groups ordered case-insensitively by tag. Tags that are
// equal ignoring case keep their first-encounter order.
func (g *Grouping) Sorted() []TagGroup {
	groups := make([]TagGroup, 0, len(g.order))
	for _, tag := range g.order {
		groups = append(groups, TagGroup{Name: tag, Docs: g.docs[tag]})
	}
	slices.SortStableFunc(groups, func(a, b TagGroup) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return groups
}

// Aggregate groups records by the values found under category.
//
// Nil records (documents without metadata) are skipped. Records are ordered
// by year with a stable sort, records without a year sorting as MissingYear.
// Records without a title get metadata.DefaultTitle. A record whose category
// value is null contributes to no group.
func Aggregate(records []*metadata.Record, category string) (*Grouping, error) {
	type keyed struct {
		year float64
		rec  *metadata.Record
	}

	sorted := make([]keyed, 0, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}
		year, err := sortYear(rec)
		if err != nil {
			return nil, err
		}
		sorted = append(sorted, keyed{year: year, rec: rec})
	}
	slices.SortStableFunc(sorted, func(a, b keyed) int {
		return cmp.Compare(a.year, b.year)
	})

	g := newGrouping(category)
	for _, k := range sorted {
		rec := k.rec
		if !rec.Has(metadata.KeyTitle) {
			rec.Set(metadata.KeyTitle, metadata.String(metadata.DefaultTitle))
		}

		tags, err := tagValues(rec, category)
		if err != nil {
			return nil, err
		}
		for _, tag := range tags {
			g.add(tag, rec)
		}
	}
	return g, nil
}

func sortYear(rec *metadata.Record) (float64, error) {
	v, ok := rec.Lookup(metadata.KeyYear)
	if !ok || v.IsNull() {
		return MissingYear, nil
	}
	if n, ok := v.AsNumber(); ok {
		return n, nil
	}
	if s, ok := v.AsString(); ok {
		if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.ValidationError("year must be a number").
		WithContext("file", rec.Filename()).
		WithContext("year", v.String()).
		Build()
}

func tagValues(rec *metadata.Record, category string) ([]string, error) {
	v, ok := rec.Lookup(category)
	if !ok || v.IsNull() {
		return nil, nil
	}
	if v.IsScalar() {
		return []string{v.String()}, nil
	}
	items, isList := v.AsList()
	if !isList {
		return nil, invalidTag(rec, category, v)
	}
	tags := make([]string, 0, len(items))
	for _, item := range items {
		if !item.IsScalar() {
			return nil, invalidTag(rec, category, item)
		}
		tags = append(tags, item.String())
	}
	return tags, nil
}

func invalidTag(rec *metadata.Record, category string, v metadata.Value) error {
	return errors.ValidationError("tag values must be a list of scalars").
		WithContext("file", rec.Filename()).
		WithContext("category", category).
		WithContext("kind", v.Kind().String()).
		Build()
}
