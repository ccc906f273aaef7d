package validator

import (
	"fmt"
	"strings"
)

// FormatCurrency renders a value as Brazilian currency, e.g. 1234.5 ->
// "R$ 1.234,50". Always two decimal places, '.' as the thousands
// separator and ',' as the decimal separator.
func FormatCurrency(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}

	s := fmt.Sprintf("%.2f", v)
	intPart := s[:len(s)-3]
	decPart := s[len(s)-2:]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString("R$ ")
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	b.WriteByte(',')
	b.WriteString(decPart)
	return b.String()
}

// FormatCPF masks digit input into the canonical 000.000.000-00 shape.
// Partial input is masked as far as it goes, so the function can run on
// every keystroke; already formatted input passes through unchanged.
func FormatCPF(s string) string {
	d := onlyDigits(s)
	if len(d) > 11 {
		d = d[:11]
	}
	switch {
	case len(d) <= 3:
		return d
	case len(d) <= 6:
		return d[:3] + "." + d[3:]
	case len(d) <= 9:
		return d[:3] + "." + d[3:6] + "." + d[6:]
	default:
		return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
	}
}

// FormatPhone masks digit input into (00) 0000-0000 or, for eleven
// digits, (00) 00000-0000. Idempotent and total on partial input.
func FormatPhone(s string) string {
	d := onlyDigits(s)
	if len(d) > 11 {
		d = d[:11]
	}
	switch {
	case len(d) == 0:
		return ""
	case len(d) <= 2:
		return "(" + d
	case len(d) <= 6:
		return "(" + d[:2] + ") " + d[2:]
	case len(d) <= 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	default:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	}
}
