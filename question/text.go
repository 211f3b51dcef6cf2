// Package question renders scenarios into word-problem text and applies the
// text-level side of masking: a hidden initial count becomes a vague
// quantity anchored by a final-count sentence, a hidden transfer quantity
// becomes "some". Rendering is template substitution with seeded verb and
// connector variety; optimizing naturalness is out of scope.
package question

import (
	"math/rand"
	"strconv"
	"strings"
)

var transferVerbs = []string{"gives", "shares", "hands over", "passes", "transfers"}

var connectors = []string{"After that", "Then", "Later", "Meanwhile", "Next"}

// vagueLadder maps count ceilings to vague quantity words.
var vagueLadder = []struct {
	upTo  int64
	label string
}{
	{0, "no"},
	{1, "a"},
	{3, "a few"},
	{7, "several"},
	{15, "many"},
}

// VagueQuantity maps a count to a vague word for masked text.
func VagueQuantity(count int64) string {
	for _, step := range vagueLadder {
		if count <= step.upTo {
			return step.label
		}
	}
	return "numerous"
}

// Pluralize adjusts a catalog noun to the count. Catalog nouns are stored in
// plural form.
func Pluralize(noun string, count int64) string {
	if count == 1 {
		if strings.HasSuffix(noun, "ies") {
			return noun[:len(noun)-3] + "y"
		}
		if strings.HasSuffix(noun, "s") {
			return noun[:len(noun)-1]
		}
		return noun
	}
	if strings.HasSuffix(noun, "s") {
		return noun
	}
	if strings.HasSuffix(noun, "y") {
		return noun[:len(noun)-1] + "ies"
	}
	return noun + "s"
}

// countNoun renders "4 marbles", "1 marble".
func countNoun(count int64, noun string) string {
	return strconv.FormatInt(count, 10) + " " + Pluralize(noun, count)
}

// joinList renders "a, b and c".
func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

func joinSentences(sentences []string) string {
	return strings.Join(sentences, " ")
}

func pick(rng *rand.Rand, options []string) string {
	return options[rng.Intn(len(options))]
}
