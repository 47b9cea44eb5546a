// Package words renders paise amounts as the amount-in-words line printed
// on bills, using the Indian numbering system (lakh, crore).
package words

import "strings"

var ones = []string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight",
	"nine", "ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen",
	"sixteen", "seventeen", "eighteen", "nineteen",
}

var tens = []string{
	"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy",
	"eighty", "ninety",
}

func belowHundred(n int64) string {
	if n < 20 {
		return ones[n]
	}

	if n%10 == 0 {
		return tens[n/10]
	}

	return tens[n/10] + "-" + ones[n%10]
}

func belowThousand(n int64) string {
	if n < 100 {
		return belowHundred(n)
	}

	out := ones[n/100] + " hundred"
	if n%100 != 0 {
		out += " " + belowHundred(n%100)
	}

	return out
}

// integer renders n >= 0 in the Indian grouping: crore, lakh, thousand,
// then hundreds. The crore part recurses so arbitrarily large amounts
// read naturally ("twelve crore", "one hundred crore").
func integer(n int64) string {
	if n == 0 {
		return ones[0]
	}

	var parts []string

	if n >= 1_00_00_000 {
		parts = append(parts, integer(n/1_00_00_000)+" crore")
		n %= 1_00_00_000
	}

	if n >= 1_00_000 {
		parts = append(parts, belowHundred(n/1_00_000)+" lakh")
		n %= 1_00_000
	}

	if n >= 1_000 {
		parts = append(parts, belowHundred(n/1_000)+" thousand")
		n %= 1_000
	}

	if n > 0 {
		parts = append(parts, belowThousand(n))
	}

	return strings.Join(parts, " ")
}

// FromPaise renders an amount in paise as a bill line, e.g.
// 123456 -> "one thousand two hundred thirty-four rupees and fifty-six
// paise only". Negative amounts are prefixed with "minus".
func FromPaise(p int64) string {
	prefix := ""
	if p < 0 {
		prefix = "minus "
		p = -p
	}

	rupees := p / 100
	paise := p % 100

	switch {
	case rupees == 0 && paise == 0:
		return "zero rupees only"
	case rupees == 0:
		return prefix + belowHundred(paise) + " " + paisaUnit(paise) + " only"
	case paise == 0:
		return prefix + integer(rupees) + " " + rupeeUnit(rupees) + " only"
	}

	return prefix + integer(rupees) + " " + rupeeUnit(rupees) + " and " +
		belowHundred(paise) + " " + paisaUnit(paise) + " only"
}

func rupeeUnit(n int64) string {
	if n == 1 {
		return "rupee"
	}

	return "rupees"
}

func paisaUnit(n int64) string {
	if n == 1 {
		return "paisa"
	}

	return "paise"
}
