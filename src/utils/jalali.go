package utils

import (
	"fmt"
	"strings"
	"time"
)

// Jalali (Shamsi) calendar helpers. Dates travel through the system as
// strings in the canonical "YYYY/MM/DD" form; user input may arrive in
// Persian digits and is normalized before parsing.

var persianDigits = [10]rune{'۰', '۱', '۲', '۳', '۴', '۵', '۶', '۷', '۸', '۹'}

// ToLatinDigits maps Persian (and Arabic-Indic) digits to ASCII digits.
func ToLatinDigits(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '۰' && r <= '۹':
			return '0' + (r - '۰')
		case r >= '٠' && r <= '٩':
			return '0' + (r - '٠')
		}
		return r
	}, s)
}

// ToPersianDigits maps ASCII digits to Persian digits for display.
func ToPersianDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return persianDigits[r-'0']
		}
		return r
	}, s)
}

var gregorianDayOffsets = [12]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

// GregorianToJalali converts a Gregorian date to Jalali year/month/day.
func GregorianToJalali(gy, gm, gd int) (int, int, int) {
	jy := 979
	if gy <= 1600 {
		jy = 0
		gy -= 621
	} else {
		gy -= 1600
	}

	gy2 := gy
	if gm > 2 {
		gy2 = gy + 1
	}
	days := 365*gy + (gy2+3)/4 - (gy2+99)/100 + (gy2+399)/400 - 80 + gd + gregorianDayOffsets[gm-1]

	jy += 33 * (days / 12053)
	days %= 12053
	jy += 4 * (days / 1461)
	days %= 1461
	if days > 365 {
		jy += (days - 1) / 365
		days = (days - 1) % 365
	}

	var jm, jd int
	if days < 186 {
		jm = 1 + days/31
		jd = days%31 + 1
	} else {
		jm = 7 + (days-186)/30
		jd = (days-186)%30 + 1
	}
	return jy, jm, jd
}

// JalaliToGregorian converts a Jalali date to Gregorian year/month/day.
func JalaliToGregorian(jy, jm, jd int) (int, int, int) {
	gy := 621
	if jy > 979 {
		gy = 1600
		jy -= 979
	}

	days := 365*jy + (jy/33)*8 + (jy%33+3)/4 + 78 + jd
	if jm < 7 {
		days += (jm - 1) * 31
	} else {
		days += (jm-7)*30 + 186
	}

	gy += 400 * (days / 146097)
	days %= 146097
	if days > 36524 {
		days--
		gy += 100 * (days / 36524)
		days %= 36524
		if days >= 365 {
			days++
		}
	}
	gy += 4 * (days / 1461)
	days %= 1461
	if days > 365 {
		gy += (days - 1) / 365
		days = (days - 1) % 365
	}

	gd := days + 1
	monthLengths := [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	if (gy%4 == 0 && gy%100 != 0) || gy%400 == 0 {
		monthLengths[1] = 29
	}
	gm := 0
	for gm < 12 && gd > monthLengths[gm] {
		gd -= monthLengths[gm]
		gm++
	}
	return gy, gm + 1, gd
}

// TodayJalali returns the current date in the Tehran timezone as Jalali
// year/month/day.
func TodayJalali() (int, int, int) {
	loc, err := time.LoadLocation("Asia/Tehran")
	if err != nil {
		loc = time.UTC
	}
	now := time.Now().In(loc)
	return GregorianToJalali(now.Year(), int(now.Month()), now.Day())
}

// FormatJalali renders a Jalali date in the canonical YYYY/MM/DD form.
func FormatJalali(jy, jm, jd int) string {
	return fmt.Sprintf("%04d/%02d/%02d", jy, jm, jd)
}

// ParseJalali splits a canonical (Latin-digit) Jalali date string. It only
// checks the shape, not calendar range; the form validator's date rule does
// the same.
func ParseJalali(s string) (jy, jm, jd int, err error) {
	_, err = fmt.Sscanf(ToLatinDigits(s), "%d/%d/%d", &jy, &jm, &jd)
	return
}

var jalaliMonthNames = [12]string{
	"فروردین", "اردیبهشت", "خرداد", "تیر", "مرداد", "شهریور",
	"مهر", "آبان", "آذر", "دی", "بهمن", "اسفند",
}

// JalaliMonthName returns the Persian month name for 1..12, or "" otherwise.
func JalaliMonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return jalaliMonthNames[month-1]
}
