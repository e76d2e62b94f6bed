package match

import (
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"
)

// Mode selects how qualification keywords are matched.
type Mode int

const (
	// ModeContains matches a keyword anywhere in the qualification text.
	ModeContains Mode = iota
	// ModeExactWord matches a keyword against whole tokens only.
	ModeExactWord
)

// String returns the mode's wire name ("contains" or "exact").
func (m Mode) String() (name string) {
	if m == ModeExactWord {
		name = "exact"
		return name
	}
	name = "contains"
	return name
}

// ParseMode maps a wire name to a Mode. Empty defaults to contains.
func ParseMode(name string) (m Mode, err error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "contains":
		m = ModeContains
	case "exact", "exact_word":
		m = ModeExactWord
	default:
		err = errors.Errorf("unknown search mode %q: must be 'contains' or 'exact'", name)
	}
	return m, err
}

// Criterion is one role's filter definition. Keywords are lowercase;
// an empty set means no qualification filter, and MinExperience 0 means
// no experience filter.
type Criterion struct {
	Name           string
	Required       int
	MinExperience  float64
	Keywords       mapset.Set[string]
	Mode           Mode
	IncludeDiploma bool
}

// NewCriterion builds a criterion with a normalized keyword set.
func NewCriterion(name string, required int, keywords ...string) (c Criterion) {
	c = Criterion{
		Name:     strings.TrimSpace(name),
		Required: required,
		Keywords: mapset.NewSet[string](),
	}
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			c.Keywords.Add(kw)
		}
	}
	return c
}

// Validate checks the criterion is usable as a role definition.
func (c Criterion) Validate() (err error) {
	if strings.TrimSpace(c.Name) == "" {
		err = errors.New("role name is required")
		return err
	}
	if c.Required <= 0 {
		err = errors.Errorf("role %q: required count must be greater than 0", c.Name)
		return err
	}
	if c.MinExperience < 0 {
		err = errors.Errorf("role %q: minimum experience cannot be negative", c.Name)
		return err
	}
	return err
}

// HasQualificationFilter reports whether the keyword filter is active.
func (c Criterion) HasQualificationFilter() (active bool) {
	active = c.Keywords != nil && c.Keywords.Cardinality() > 0
	return active
}

// KeywordList returns the keywords in sorted order for stable display.
func (c Criterion) KeywordList() (keywords []string) {
	if c.Keywords == nil {
		return keywords
	}
	keywords = c.Keywords.ToSlice()
	sort.Strings(keywords)
	return keywords
}

// HasExperienceFilter reports whether the experience filter is active.
func (c Criterion) HasExperienceFilter() (active bool) {
	active = c.MinExperience > 0
	return active
}

// RoleSet holds the session's role criteria, unique by case-insensitive
// name.
type RoleSet struct {
	criteria []Criterion
}

// Upsert validates the criterion and inserts it, replacing any existing
// role with the same name regardless of case.
func (rs *RoleSet) Upsert(c Criterion) (err error) {
	err = c.Validate()
	if err != nil {
		return err
	}

	lower := strings.ToLower(c.Name)
	for i, existing := range rs.criteria {
		if strings.ToLower(existing.Name) == lower {
			rs.criteria[i] = c
			return err
		}
	}
	rs.criteria = append(rs.criteria, c)
	return err
}

// Criteria returns the roles in insertion order.
func (rs *RoleSet) Criteria() (criteria []Criterion) {
	criteria = rs.criteria
	return criteria
}

// Len returns the number of defined roles.
func (rs *RoleSet) Len() (n int) {
	n = len(rs.criteria)
	return n
}
