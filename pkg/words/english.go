package words

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/iwvelando/plan-pricing/pkg/mathutil"
	"golang.org/x/text/language"
)

// maxEnglish is the largest whole part English spells (999 trillion).
const maxEnglish = 999_999_999_999_999

var (
	enOnes = [...]string{
		"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
		"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
		"seventeen", "eighteen", "nineteen",
	}
	enTens   = [...]string{"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety"}
	enScales = [...]string{"", "thousand", "million", "billion", "trillion"}
)

// English spells amounts as cheque text: "one thousand, two hundred
// thirty-four and 56/100".
type English struct{}

// Tag implements Speller.
func (English) Tag() language.Tag { return language.English }

// Spell implements Speller.
func (English) Spell(amount float64) (string, error) {
	if !mathutil.IsFinite(amount) {
		return "", nil
	}
	whole, cents := split(amount)
	if whole > maxEnglish {
		return "", errors.Wrapf(ErrOutOfRange, "%.2f", amount)
	}

	text := englishWhole(whole)
	if cents > 0 {
		text += fmt.Sprintf(" and %02d/100", cents)
	}
	if amount < 0 && (whole > 0 || cents > 0) {
		text = "minus " + text
	}
	return text, nil
}

func englishWhole(n int64) string {
	if n == 0 {
		return enOnes[0]
	}
	var groups []string
	for scale := 0; n > 0; scale++ {
		group := int(n % 1000)
		n /= 1000
		if group == 0 {
			continue
		}
		text := englishTriplet(group)
		if enScales[scale] != "" {
			text += " " + enScales[scale]
		}
		groups = append([]string{text}, groups...)
	}
	return strings.Join(groups, ", ")
}

// englishTriplet spells 1..999.
func englishTriplet(n int) string {
	var parts []string
	if h := n / 100; h > 0 {
		parts = append(parts, enOnes[h]+" hundred")
	}
	switch rest := n % 100; {
	case rest == 0:
	case rest < 20:
		parts = append(parts, enOnes[rest])
	case rest%10 == 0:
		parts = append(parts, enTens[rest/10])
	default:
		parts = append(parts, enTens[rest/10]+"-"+enOnes[rest%10])
	}
	return strings.Join(parts, " ")
}
