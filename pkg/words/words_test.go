package words

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestEnglishSpell(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{0, "zero"},
		{7, "seven"},
		{15, "fifteen"},
		{40, "forty"},
		{100, "one hundred"},
		{1234.56, "one thousand, two hundred thirty-four and 56/100"},
		{1000000, "one million"},
		{2000005, "two million, five"},
		{850000.1, "eight hundred fifty thousand and 10/100"},
		{-7.05, "minus seven and 05/100"},
		{19.999, "twenty"},
	}

	for _, tt := range tests {
		got, err := English{}.Spell(tt.amount)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got, "amount %v", tt.amount)
	}
}

func TestEnglishOutOfRange(t *testing.T) {
	_, err := English{}.Spell(1e16)
	assert.ErrorIs(t, err, ErrOutOfRange)

	got, err := English{}.Spell(math.NaN())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestArabicSpell(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{15, "فقط خمسة عشر جنيها مصريا"},
		{100, "فقط مائة جنيها مصريا"},
		{2000, "فقط ألفان جنيها مصريا"},
		{3000, "فقط ثلاثة آلاف جنيها مصريا"},
		{25000, "فقط خمسة و عشرون ألف جنيها مصريا"},
		{1000000, "فقط مليون جنيها مصريا"},
		{1234.56, "فقط ألف و مائتان و أربعة و ثلاثون جنيها مصريا و ستة و خمسون قرش"},
		{0.5, "فقط خمسون قرش"},
		{-12, "يتبقى لكم إثنى عشر جنيها مصريا"},
		{0, ""},
	}

	speller := NewArabic("", "")
	for _, tt := range tests {
		got, err := speller.Spell(tt.amount)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got, "amount %v", tt.amount)
	}
}

func TestArabicCustomCurrency(t *testing.T) {
	got, err := NewArabic("ريالا سعوديا", "هللة").Spell(11.01)
	require.NoError(t, err)
	assert.Equal(t, "فقط إحدى عشر ريالا سعوديا و واحد هللة", got)

	_, err = NewArabic("", "").Spell(1e12)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestNegotiate(t *testing.T) {
	tests := []struct {
		preferences []string
		expected    language.Tag
	}{
		{nil, language.English},
		{[]string{"ar"}, language.Arabic},
		{[]string{"AR-EG"}, language.Arabic},
		{[]string{"arabic"}, language.Arabic},
		{[]string{"en"}, language.English},
		{[]string{"fr"}, language.English},
		{[]string{"", "ar"}, language.Arabic},
		{[]string{"en", "ar"}, language.English},
		{[]string{"???"}, language.English},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Negotiate(tt.preferences...), "%v", tt.preferences)
	}
}

func TestFor(t *testing.T) {
	arabic := For(Negotiate("", "ar"))
	assert.Equal(t, language.Arabic, arabic.Tag())
	got, err := arabic.Spell(2)
	require.NoError(t, err)
	assert.Equal(t, "فقط اثنان جنيها مصريا", got)

	english := For(Negotiate())
	assert.Equal(t, language.English, english.Tag())
	got, err = english.Spell(2)
	require.NoError(t, err)
	assert.Equal(t, "two", got)
}
