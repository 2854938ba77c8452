package words

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/iwvelando/plan-pricing/pkg/mathutil"
	"golang.org/x/text/language"
)

// Default Arabic currency units (Egyptian pound and piastre).
const (
	ArabicMainCurrency = "جنيها مصريا"
	ArabicSubCurrency  = "قرش"
)

const (
	maxArabic = 999_999_999_999

	arAnd       = " و "
	arOnly      = "فقط"
	arRemaining = "يتبقى لكم"
)

var (
	arHundreds = [...]string{"", "مائة", "مائتان", "ثلاثمائة", "أربعمائة", "خمسمائة", "ستمائة", "سبعمائة", "ثمانمائة", "تسعمائة"}
	arTens     = [...]string{"", "عشر", "عشرون", "ثلاثون", "أربعون", "خمسون", "ستون", "سبعون", "ثمانون", "تسعون"}
	arUnits    = [...]string{"", "واحد", "اثنان", "ثلاثة", "أربعة", "خمسة", "ستة", "سبعة", "ثمانية", "تسعة"}
)

type arScale struct {
	divisor                int64
	singular, dual, plural string
}

var arScales = []arScale{
	{1_000_000_000, "مليار", "ملياران", "مليارات"},
	{1_000_000, "مليون", "مليونان", "ملايين"},
	{1_000, "ألف", "ألفان", "آلاف"},
}

// Arabic spells amounts in the currency phrase form used on Egyptian sales
// contracts: "فقط ألف و مائتان ... جنيها مصريا و ... قرش".
type Arabic struct {
	MainCurrency string
	SubCurrency  string
}

// NewArabic returns an Arabic speller; empty units fall back to the defaults.
func NewArabic(mainCurrency, subCurrency string) Arabic {
	a := Arabic{MainCurrency: strings.TrimSpace(mainCurrency), SubCurrency: strings.TrimSpace(subCurrency)}
	if a.MainCurrency == "" {
		a.MainCurrency = ArabicMainCurrency
	}
	if a.SubCurrency == "" {
		a.SubCurrency = ArabicSubCurrency
	}
	return a
}

// Tag implements Speller.
func (Arabic) Tag() language.Tag { return language.Arabic }

// Spell implements Speller. Zero spells as "".
func (a Arabic) Spell(amount float64) (string, error) {
	if !mathutil.IsFinite(amount) {
		return "", nil
	}
	whole, cents := split(amount)
	if whole > maxArabic {
		return "", errors.Wrapf(ErrOutOfRange, "%.2f", amount)
	}
	if whole == 0 && cents == 0 {
		return "", nil
	}

	var parts []string
	remaining := whole
	for _, s := range arScales {
		count := remaining / s.divisor
		remaining %= s.divisor
		if count == 0 {
			continue
		}
		switch {
		case count == 1:
			parts = append(parts, s.singular)
		case count == 2:
			parts = append(parts, s.dual)
		case count <= 10:
			parts = append(parts, arabicTriplet(int(count))+" "+s.plural)
		default:
			parts = append(parts, arabicTriplet(int(count))+" "+s.singular)
		}
	}
	if remaining > 0 {
		parts = append(parts, arabicTriplet(int(remaining)))
	}

	prefix := arOnly
	if amount < 0 {
		prefix = arRemaining
	}
	out := []string{prefix}
	if len(parts) > 0 {
		out = append(out, strings.Join(parts, arAnd), a.MainCurrency)
		if cents > 0 {
			out = append(out, strings.TrimSpace(arAnd), arabicTriplet(int(cents)), a.SubCurrency)
		}
	} else {
		out = append(out, arabicTriplet(int(cents)), a.SubCurrency)
	}
	return strings.Join(strings.Fields(strings.Join(out, " ")), " "), nil
}

// arabicTriplet spells 1..999, units before tens.
func arabicTriplet(n int) string {
	h, t, u := n/100, n/10%10, n%10

	var rest string
	switch {
	case t == 1 && u == 0:
		rest = "عشرة"
	case t == 1 && u == 1:
		rest = "إحدى عشر"
	case t == 1 && u == 2:
		rest = "إثنى عشر"
	case t == 1:
		rest = arUnits[u] + " " + arTens[1]
	case t > 1 && u > 0:
		rest = arUnits[u] + arAnd + arTens[t]
	case t > 1:
		rest = arTens[t]
	default:
		rest = arUnits[u]
	}

	switch {
	case h > 0 && rest != "":
		return arHundreds[h] + arAnd + rest
	case h > 0:
		return arHundreds[h]
	}
	return rest
}
