package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigitConversion(t *testing.T) {
	t.Run("PersianToLatin", func(t *testing.T) {
		assert.Equal(t, "1403/07/15", ToLatinDigits("۱۴۰۳/۰۷/۱۵"))
	})

	t.Run("ArabicIndicToLatin", func(t *testing.T) {
		assert.Equal(t, "123", ToLatinDigits("١٢٣"))
	})

	t.Run("LatinPassesThrough", func(t *testing.T) {
		assert.Equal(t, "1403/07/15", ToLatinDigits("1403/07/15"))
	})

	t.Run("LatinToPersian", func(t *testing.T) {
		assert.Equal(t, "۱۴۰۳", ToPersianDigits("1403"))
	})
}

func TestGregorianToJalali(t *testing.T) {
	cases := []struct {
		gy, gm, gd int
		jy, jm, jd int
	}{
		{2024, 3, 20, 1403, 1, 1},  // Nowruz 1403
		{2025, 3, 21, 1404, 1, 1},  // Nowruz 1404
		{2024, 9, 22, 1403, 7, 1},  // first of Mehr
		{2025, 2, 19, 1403, 12, 1}, // first of Esfand
		{2026, 8, 30, 1405, 6, 8},
	}

	for _, c := range cases {
		jy, jm, jd := GregorianToJalali(c.gy, c.gm, c.gd)
		assert.Equal(t, FormatJalali(c.jy, c.jm, c.jd), FormatJalali(jy, jm, jd))
	}
}

func TestJalaliRoundTrip(t *testing.T) {
	dates := [][3]int{
		{1403, 1, 1},
		{1403, 6, 31},
		{1403, 7, 1},
		{1403, 12, 29},
		{1404, 11, 22},
	}
	for _, d := range dates {
		gy, gm, gd := JalaliToGregorian(d[0], d[1], d[2])
		jy, jm, jd := GregorianToJalali(gy, gm, gd)
		assert.Equal(t, FormatJalali(d[0], d[1], d[2]), FormatJalali(jy, jm, jd))
	}
}

func TestParseJalali(t *testing.T) {
	t.Run("Canonical", func(t *testing.T) {
		jy, jm, jd, err := ParseJalali("1403/07/15")
		assert.NoError(t, err)
		assert.Equal(t, [3]int{1403, 7, 15}, [3]int{jy, jm, jd})
	})

	t.Run("PersianDigits", func(t *testing.T) {
		jy, jm, jd, err := ParseJalali("۱۴۰۳/۰۷/۱۵")
		assert.NoError(t, err)
		assert.Equal(t, [3]int{1403, 7, 15}, [3]int{jy, jm, jd})
	})

	t.Run("Garbage", func(t *testing.T) {
		_, _, _, err := ParseJalali("not a date")
		assert.Error(t, err)
	})
}

func TestJalaliMonthName(t *testing.T) {
	assert.Equal(t, "فروردین", JalaliMonthName(1))
	assert.Equal(t, "اسفند", JalaliMonthName(12))
	assert.Equal(t, "", JalaliMonthName(0))
	assert.Equal(t, "", JalaliMonthName(13))
}
