// Package words spells monetary amounts out in full for printed payment
// schedules, in English or Arabic.
package words

import (
	"math"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/iwvelando/plan-pricing/pkg/constants"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

// ErrOutOfRange is returned for amounts a speller cannot express.
var ErrOutOfRange = errors.New("amount out of range for written form")

// Speller renders an amount in words. Non-finite amounts yield "". Tag is
// the language of the rendered text.
type Speller interface {
	Spell(amount float64) (string, error)
	Tag() language.Tag
}

var matcher = language.NewMatcher([]language.Tag{language.English, language.Arabic})

// Negotiate picks the written-amount language from the first non-empty
// preference. Anything beginning with "ar" is Arabic; other values are
// matched as BCP 47 or Accept-Language strings and fall back to English.
func Negotiate(preferences ...string) language.Tag {
	for _, p := range preferences {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if strings.HasPrefix(strings.ToLower(p), constants.LanguageArabic) {
			return language.Arabic
		}
		tags, _, err := language.ParseAcceptLanguage(p)
		if err != nil || len(tags) == 0 {
			return language.English
		}
		tag, _, _ := matcher.Match(tags...)
		if base, _ := tag.Base(); base.String() == constants.LanguageArabic {
			return language.Arabic
		}
		return language.English
	}
	return language.English
}

// For returns the speller for tag.
func For(tag language.Tag) Speller {
	if base, _ := tag.Base(); base.String() == constants.LanguageArabic {
		return NewArabic("", "")
	}
	return English{}
}

// split returns the whole and hundredths parts of |amount| rounded to cents.
func split(amount float64) (whole int64, cents int64) {
	d := decimal.NewFromFloat(math.Abs(amount)).Round(constants.CurrencyDecimalPlaces)
	whole = d.IntPart()
	cents = d.Sub(decimal.NewFromInt(whole)).Shift(constants.CurrencyDecimalPlaces).IntPart()
	return whole, cents
}
