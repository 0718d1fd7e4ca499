// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
)

// All is the wildcard selection for a facet.
const All = "all"

// Facet names one filterable dimension.
type Facet string

const (
	FacetLocation      Facet = "location"
	FacetGender        Facet = "gender"
	FacetMaritalStatus Facet = "marital_status"
	FacetAgeGroup      Facet = "age_group"
)

// Facets lists every facet in display order.
var Facets = []Facet{FacetLocation, FacetGender, FacetMaritalStatus, FacetAgeGroup}

// AgeBuckets are the age ranges offered in the filter UI.
var AgeBuckets = []string{"18-24", "25-34", "35-44", "45-54", "55-64", "65+"}

// OpenAgeCeiling is the upper bound used for open-ended "min+" buckets.
const OpenAgeCeiling = 999

// SeedParam is the only query parameter read when a session starts.
const SeedParam = "gender"

var (
	ErrUnknownFacet    = errors.New("unknown facet")
	ErrUnobservedValue = errors.New("value not present in dataset")
	ErrInvalidBucket   = errors.New("invalid age bucket")
)

// column maps value facets to their sheet column. Age is range-matched.
func (f Facet) column() string {
	switch f {
	case FacetLocation:
		return ColLocation
	case FacetGender:
		return ColGender
	case FacetMaritalStatus:
		return ColMaritalStatus
	case FacetAgeGroup:
		return ColAge
	}
	return ""
}

// ParseFacet validates a facet name coming from a form or query string.
func ParseFacet(s string) (Facet, error) {
	for _, f := range Facets {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFacet, s)
}

// AgeBucket is an inclusive numeric age range.
type AgeBucket struct {
	Min float64
	Max float64
}

// ParseAgeBucket accepts "min-max" or the open-ended "min+".
func ParseAgeBucket(s string) (AgeBucket, error) {
	s = strings.TrimSpace(s)
	if lo, ok := strings.CutSuffix(s, "+"); ok {
		floor, err := strconv.ParseFloat(lo, 64)
		if err != nil {
			return AgeBucket{}, fmt.Errorf("%w: %q", ErrInvalidBucket, s)
		}
		return AgeBucket{Min: floor, Max: OpenAgeCeiling}, nil
	}

	lo, hi, ok := strings.Cut(s, "-")
	if !ok {
		return AgeBucket{}, fmt.Errorf("%w: %q", ErrInvalidBucket, s)
	}
	floor, err := strconv.ParseFloat(lo, 64)
	if err != nil {
		return AgeBucket{}, fmt.Errorf("%w: %q", ErrInvalidBucket, s)
	}
	ceil, err := strconv.ParseFloat(hi, 64)
	if err != nil || ceil < floor {
		return AgeBucket{}, fmt.Errorf("%w: %q", ErrInvalidBucket, s)
	}
	return AgeBucket{Min: floor, Max: ceil}, nil
}

// Contains reports whether a raw Age value parses and falls inside the bucket.
func (b AgeBucket) Contains(age string) bool {
	n, err := strconv.ParseFloat(strings.TrimSpace(age), 64)
	if err != nil {
		return false
	}
	return n >= b.Min && n <= b.Max
}

// FilterState is the current selection across all facets. The zero value is
// not usable; start from NewFilterState.
type FilterState struct {
	values map[Facet]string
	bucket AgeBucket
}

// NewFilterState returns a state with every facet set to All.
func NewFilterState() FilterState {
	fs := FilterState{values: make(map[Facet]string, len(Facets))}
	for _, f := range Facets {
		fs.values[f] = All
	}
	return fs
}

// Clone returns an independent copy of the state.
func (fs FilterState) Clone() FilterState {
	out := NewFilterState()
	for f, v := range fs.values {
		out.values[f] = v
	}
	out.bucket = fs.bucket
	return out
}

// Get returns the selection for a facet.
func (fs FilterState) Get(f Facet) string {
	if v, ok := fs.values[f]; ok {
		return v
	}
	return All
}

// IsWildcard reports whether every facet is All.
func (fs FilterState) IsWildcard() bool {
	for _, f := range Facets {
		if fs.Get(f) != All {
			return false
		}
	}
	return true
}

// Set changes one facet. Values must be All, a value observed in ds for that
// facet, or a well-formed bucket for the age facet.
func (fs *FilterState) Set(f Facet, value string, ds *Dataset) error {
	if f.column() == "" {
		return fmt.Errorf("%w: %q", ErrUnknownFacet, f)
	}
	if fs.values == nil {
		*fs = NewFilterState()
	}

	value = strings.TrimSpace(value)
	if value == "" || value == All {
		fs.values[f] = All
		return nil
	}

	if f == FacetAgeGroup {
		b, err := ParseAgeBucket(value)
		if err != nil {
			return err
		}
		fs.bucket = b
		fs.values[f] = value
		return nil
	}

	if !ds.Contains(f.column(), value) {
		return fmt.Errorf("%w: %s=%q", ErrUnobservedValue, f, value)
	}
	fs.values[f] = value
	return nil
}

// SeedFromQuery applies the supported start-up query parameter. Values that
// do not appear in the dataset are ignored.
func (fs *FilterState) SeedFromQuery(q url.Values, ds *Dataset) {
	v := q.Get(SeedParam)
	if v == "" {
		return
	}
	if err := fs.Set(FacetGender, v, ds); err != nil {
		slog.Warn("ignoring seed filter", "param", SeedParam, "value", v, "error", err)
	}
}

// Matches reports whether r satisfies every non-wildcard facet.
func (fs FilterState) Matches(r Row) bool {
	for _, f := range Facets {
		v := fs.Get(f)
		if v == All {
			continue
		}
		if f == FacetAgeGroup {
			if !fs.bucket.Contains(r.Age()) {
				return false
			}
			continue
		}
		if r.Value(f.column()) != v {
			return false
		}
	}
	return true
}

// Option is one selectable value for a facet.
type Option struct {
	Value    string
	Selected bool
}

// FacetOptions holds the choices offered for one facet.
type FacetOptions struct {
	Facet   Facet
	Options []Option
}

// Options lists the selectable values per facet: observed values for the
// categorical facets and the fixed AgeBuckets for age.
func (fs FilterState) Options(ds *Dataset) []FacetOptions {
	out := make([]FacetOptions, 0, len(Facets))
	for _, f := range Facets {
		var values []string
		if f == FacetAgeGroup {
			values = AgeBuckets
		} else {
			values = ds.Distinct(f.column())
		}

		current := fs.Get(f)
		opts := make([]Option, 0, len(values)+1)
		opts = append(opts, Option{Value: All, Selected: current == All})
		for _, v := range values {
			opts = append(opts, Option{Value: v, Selected: current == v})
		}
		out = append(out, FacetOptions{Facet: f, Options: opts})
	}
	return out
}

// FilterFromQuery builds a state from every facet parameter in q. Used by the
// stateless JSON endpoint; invalid values are reported, not ignored.
func FilterFromQuery(q url.Values, ds *Dataset) (FilterState, error) {
	fs := NewFilterState()
	for _, f := range Facets {
		v := q.Get(string(f))
		if v == "" {
			continue
		}
		if err := fs.Set(f, v, ds); err != nil {
			return fs, err
		}
	}
	return fs, nil
}
