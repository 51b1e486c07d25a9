package analytics

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"transit-dashboard/model"

	"github.com/agnivade/levenshtein"
)

// words shorter than this only match exactly
const minFuzzyLen = 5

// keyword stems shorter than this only match whole words
const minStemLen = 3

// Arabic article and preposition prefixes, longest first
var cliticPrefixes = []string{"وال", "بال", "فال", "كال", "لل", "ال"}

var defaultKeywords = map[string][]string{
	model.CategoryDelays:   {"تأخير", "تأخر", "متأخر", "late", "delay", "delayed"},
	model.CategoryCrowding: {"ازدحام", "زحمة", "مزدحم", "crowded", "crowding", "full"},
	model.CategoryDriver:   {"سائق", "driver"},
	model.CategoryVehicle:  {"مركبة", "حافلة", "باص", "vehicle", "bus"},
	model.CategoryPricing:  {"سعر", "أسعار", "تذكرة", "price", "fare", "expensive"},
	model.CategoryService:  {"خدمة", "service", "support"},
}

// Categorizer assigns complaint texts to keyword categories.
// Matching is per word: a word matches a keyword it starts with, so plurals
// and suffixed forms count, and longer words tolerate one typo.
type Categorizer struct {
	keywords map[string][]string
}

func NewCategorizer() *Categorizer {
	return &Categorizer{keywords: defaultKeywords}
}

// Categories returns the categories text belongs to, in display order
func (c *Categorizer) Categories(text string) []string {
	words := tokenize(text)
	var out []string
	for _, category := range model.ComplaintCategoryOrder {
		if c.matches(words, c.keywords[category]) {
			out = append(out, category)
		}
	}
	return out
}

// Count tallies each text at most once per category. Categories with no match are left out.
func (c *Categorizer) Count(texts []string) model.ComplaintCategories {
	counts := model.ComplaintCategories{}
	for _, t := range texts {
		for _, category := range c.Categories(t) {
			counts[category]++
		}
	}
	return counts
}

func (c *Categorizer) matches(words, keywords []string) bool {
	for _, w := range words {
		for _, form := range wordForms(w) {
			for _, k := range keywords {
				if form == k || hasStem(form, k) {
					return true
				}
				if utf8.RuneCountInString(form) >= minFuzzyLen &&
					utf8.RuneCountInString(k) >= minFuzzyLen &&
					levenshtein.ComputeDistance(form, k) <= 1 {
					return true
				}
			}
		}
	}
	return false
}

// hasStem reports whether w is keyword k followed by a suffix. A trailing
// taa marbuta is dropped from k first since plural endings replace it.
func hasStem(w, k string) bool {
	stem := strings.TrimSuffix(k, "ة")
	return utf8.RuneCountInString(stem) >= minStemLen && strings.HasPrefix(w, stem)
}

func tokenize(text string) []string {
	var words []string
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			words = append(words, b.String())
			b.Reset()
		}
	}
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsMark(r):
			// diacritics do not split words
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			flush()
		}
	}
	flush()
	return words
}

// wordForms returns w and w without its Arabic prefix
func wordForms(w string) []string {
	for _, p := range cliticPrefixes {
		rest, ok := strings.CutPrefix(w, p)
		if ok && utf8.RuneCountInString(rest) >= 2 {
			return []string{w, rest}
		}
	}
	return []string{w}
}
