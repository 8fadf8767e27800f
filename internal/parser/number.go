package parser

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mcncl/nextdata/internal/models"
)

var nonFiniteLiterals = []models.NonFinite{models.NegInfinity, models.Infinity, models.NaN}

// rewriteNonFinite replaces every NaN, Infinity and -Infinity outside a
// string with the placeholder 0 so encoding/json will tokenize it. The
// returned map is keyed by the offset just past each placeholder.
func rewriteNonFinite(s string) (string, map[int64]models.NonFinite) {
	if !strings.Contains(s, string(models.NaN)) && !strings.Contains(s, string(models.Infinity)) {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	found := map[int64]models.NonFinite{}
	inString := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			b.WriteByte(c)
			switch c {
			case '\\':
				if i+1 < len(s) {
					i++
					b.WriteByte(s[i])
				}
			case '"':
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			b.WriteByte(c)
			continue
		}
		if lit, ok := nonFiniteAt(s, i); ok {
			b.WriteByte('0')
			found[int64(b.Len())] = lit
			i += len(lit) - 1
			continue
		}
		b.WriteByte(c)
	}
	return b.String(), found
}

// nonFiniteAt reports the literal starting at s[i], if it stands alone
func nonFiniteAt(s string, i int) (models.NonFinite, bool) {
	if i > 0 && (isWordByte(s[i-1]) || s[i-1] == '-') {
		return "", false
	}
	for _, lit := range nonFiniteLiterals {
		end := i + len(lit)
		if strings.HasPrefix(s[i:], string(lit)) && (end == len(s) || !isWordByte(s[end])) {
			return lit, true
		}
	}
	return "", false
}

func isWordByte(c byte) bool {
	return c == '.' || c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// canonicalNumber rewrites a number literal the way it prints after a round
// trip through int and float64: integers keep their digits, anything with a
// fraction or exponent becomes the shortest float text ("1.50" -> "1.5",
// "1e5" -> "100000.0"), and floats out of range become Infinity.
func canonicalNumber(n json.Number) models.JSONValue {
	lit := string(n)
	if !strings.ContainsAny(lit, ".eE") {
		if lit == "-0" {
			return json.Number("0")
		}
		return n
	}

	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		switch {
		case math.IsInf(f, 1):
			return models.Infinity
		case math.IsInf(f, -1):
			return models.NegInfinity
		}
		return n
	}
	return json.Number(formatFloat(f))
}

// formatFloat prints f with the fewest digits that read back exactly.
// Decimal exponents from -4 to 15 use positional notation with at least one
// fractional digit, everything else uses a signed two-digit exponent.
func formatFloat(f float64) string {
	sci := strconv.FormatFloat(f, 'e', -1, 64) // e.g. -1.25e-02

	sign := ""
	if strings.HasPrefix(sci, "-") {
		sign = "-"
		sci = sci[1:]
	}

	mantissa, expText, _ := strings.Cut(sci, "e")
	exp, _ := strconv.Atoi(expText)
	digits := strings.Replace(mantissa, ".", "", 1)

	if exp < -4 || exp >= 16 {
		m := digits[:1]
		if len(digits) > 1 {
			m += "." + digits[1:]
		}
		return fmt.Sprintf("%s%se%+03d", sign, m, exp)
	}

	if exp < 0 {
		return sign + "0." + strings.Repeat("0", -exp-1) + digits
	}
	if len(digits) <= exp+1 {
		return sign + digits + strings.Repeat("0", exp+1-len(digits)) + ".0"
	}
	return sign + digits[:exp+1] + "." + digits[exp+1:]
}
