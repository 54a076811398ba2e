package common

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

const (
	NativeDecimals = 18 // ETH has 18 decimals (wei)
	TokenDecimals  = 6  // USDC has 6 decimals (micro)
)

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// IsAddress reports whether s is a 0x-prefixed 40 hex digit address.
// Checksum casing is not verified.
func IsAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// WeiToETH converts wei to ETH string without float precision loss
func WeiToETH(wei *big.Int) string {
	return FormatUnits(wei, NativeDecimals)
}

// MicroToUSDC converts micro units to USDC string without float precision loss
func MicroToUSDC(micro *big.Int) string {
	return FormatUnits(micro, TokenDecimals)
}

// FormatUnits converts a raw integer to a decimal string by inserting the decimal point.
// Example: FormatUnits(24981836, 6) = "24.981836"
func FormatUnits(value *big.Int, decimals int) string {
	if value == nil {
		value = new(big.Int)
	}
	s := new(big.Int).Abs(value).String()

	// Pad with leading zeros if needed
	if len(s) <= decimals {
		s = strings.Repeat("0", decimals-len(s)+1) + s
	}

	pos := len(s) - decimals
	out := s[:pos]
	if decimals > 0 {
		out += "." + s[pos:]
	}
	if value.Sign() < 0 {
		out = "-" + out
	}
	return out
}

// ParseUnits converts a plain decimal string to raw integer units.
// Only digits and a single decimal point are accepted; more fractional
// digits than decimals is an error rather than a silent truncation.
// Example: ParseUnits("2.5", 6) = 2500000
func ParseUnits(s string, decimals int) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}

	whole, frac, hasPoint := strings.Cut(s, ".")
	if hasPoint && strings.Contains(frac, ".") {
		return nil, fmt.Errorf("invalid decimal format %q", s)
	}
	if whole == "" && frac == "" {
		return nil, fmt.Errorf("invalid decimal format %q", s)
	}
	if !isDigits(whole) || !isDigits(frac) {
		return nil, fmt.Errorf("invalid decimal format %q", s)
	}
	if len(frac) > decimals {
		return nil, fmt.Errorf("amount %q has more than %d decimal places", s, decimals)
	}

	// Pad fractional part to exact decimals and combine
	combined := whole + frac + strings.Repeat("0", decimals-len(frac))
	n, ok := new(big.Int).SetString(combined, 10)
	if !ok {
		return nil, fmt.Errorf("invalid decimal format %q", s)
	}
	return n, nil
}

// CompareAmounts compares two decimal string amounts at the given scale.
// Returns: -1 if a < b, 0 if a == b, 1 if a > b, and error if parsing fails
func CompareAmounts(a, b string, decimals int) (int, error) {
	aVal, err := ParseUnits(a, decimals)
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount '%s': %w", a, err)
	}

	bVal, err := ParseUnits(b, decimals)
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount '%s': %w", b, err)
	}

	return aVal.Cmp(bVal), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
