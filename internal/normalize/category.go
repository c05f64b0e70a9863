package normalize

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// FallbackCategory is returned when no canonical category can be resolved.
const FallbackCategory = "Unspecified"

// DefaultSimilarityThreshold is the minimum fuzzy-match score (0-1 scale)
// for a synonym or canonical label to be accepted.
const DefaultSimilarityThreshold = 0.8

// Synonym maps one raw text variant to a canonical category label.
// Synonyms are kept as an ordered slice, not a map, so fuzzy matching
// iterates in a fixed declared order and ties resolve deterministically.
type Synonym struct {
	Raw      string
	Category string
}

// CategorySet is the immutable category configuration for a resolver:
// the closed set of canonical labels plus the synonym table. Multiple
// sets (e.g. per institution) can coexist.
type CategorySet struct {
	Canonical []string
	Synonyms  []Synonym
}

// DefaultCategorySet returns the built-in bank statement vocabulary.
func DefaultCategorySet() CategorySet {
	return CategorySet{
		Canonical: []string{
			"Groceries", "Utilities", "Entertainment", "Salary", "Rent",
			"Transportation", "Dining Out", "Miscellaneous", FallbackCategory,
		},
		Synonyms: []Synonym{
			{"food", "Groceries"},
			{"grocery", "Groceries"},
			{"grocer", "Groceries"},
			{"supermarket", "Groceries"},
			{"groc3ry", "Groceries"},
			{"groc3ry shopping", "Groceries"},
			{"utility", "Utilities"},
			{"utilities", "Utilities"},
			{"electric", "Utilities"},
			{"el3ctric", "Utilities"},
			{"water", "Utilities"},
			{"gas bill", "Utilities"},
			{"movie", "Entertainment"},
			{"movietickets", "Entertainment"},
			{"movieticket", "Entertainment"},
			{"movi3", "Entertainment"},
			{"concert", "Entertainment"},
			{"streaming", "Entertainment"},
			{"salary", "Salary"},
			{"salaray", "Salary"},
			{"s@l@ry", "Salary"},
			{"payroll", "Salary"},
			{"paycheck", "Salary"},
			{"deposit", "Salary"},
			{"rent", "Rent"},
			{"r3nt", "Rent"},
			{"landlord", "Rent"},
			{"lease", "Rent"},
			{"gas", "Transportation"},
			{"g@s", "Transportation"},
			{"gas station", "Transportation"},
			{"transportation", "Transportation"},
			{"dinner", "Dining Out"},
			{"restaurant", "Dining Out"},
			{"dinn3r", "Dining Out"},
			{"misc", "Miscellaneous"},
			{"miscellaneous", "Miscellaneous"},
		},
	}
}

// Scorer computes a normalized similarity score for two strings on a
// 0-1 scale. Any edit-distance or token-based scorer satisfying this
// contract is substitutable.
type Scorer func(a, b string) float64

// LevenshteinScorer returns the default edit-distance based scorer.
func LevenshteinScorer() Scorer {
	lev := metrics.NewLevenshtein()
	return func(a, b string) float64 {
		return strutil.Similarity(a, b, lev)
	}
}

// CategoryResolver maps free-text category labels onto a CategorySet.
// Lookup order: exact synonym match (case-insensitive, trimmed), fuzzy
// match over synonyms, fuzzy match over canonical labels, fallback.
type CategoryResolver struct {
	set       CategorySet
	score     Scorer
	threshold float64
	exact     map[string]string
}

func NewCategoryResolver(set CategorySet, score Scorer, threshold float64) *CategoryResolver {
	if score == nil {
		score = LevenshteinScorer()
	}
	exact := make(map[string]string, len(set.Synonyms)+len(set.Canonical))
	for _, syn := range set.Synonyms {
		exact[strings.ToLower(strings.TrimSpace(syn.Raw))] = syn.Category
	}
	// Canonical labels always map to themselves, even when a synonym
	// entry claims the same key.
	for _, cat := range set.Canonical {
		exact[strings.ToLower(cat)] = cat
	}
	return &CategoryResolver{
		set:       set,
		score:     score,
		threshold: threshold,
		exact:     exact,
	}
}

// Resolve returns exactly one canonical label for raw.
func (r *CategoryResolver) Resolve(raw string) string {
	c := strings.ToLower(strings.TrimSpace(raw))
	if c == "" {
		return FallbackCategory
	}
	if cat, ok := r.exact[c]; ok {
		return cat
	}
	if cat, ok := r.closestSynonym(c); ok {
		return cat
	}
	if cat, ok := r.closestCanonical(c); ok {
		return cat
	}
	return FallbackCategory
}

func (r *CategoryResolver) closestSynonym(c string) (string, bool) {
	best, bestCat := -1.0, ""
	for _, syn := range r.set.Synonyms {
		if s := r.score(c, strings.ToLower(syn.Raw)); s > best {
			best, bestCat = s, syn.Category
		}
	}
	return bestCat, best >= r.threshold
}

func (r *CategoryResolver) closestCanonical(c string) (string, bool) {
	best, bestCat := -1.0, ""
	for _, cat := range r.set.Canonical {
		if s := r.score(c, strings.ToLower(cat)); s > best {
			best, bestCat = s, cat
		}
	}
	return bestCat, best >= r.threshold
}
