package numeric

import (
	"fmt"
	"strconv"
)

// IntToAlphadecimal encodes i as a sortable base 36 code: a leading character
// giving the digit count, then the digits. Codes sort as strings in the same
// order as the integers: 00, 01, ..., 0z, 110, ..., 1zz, 2100, ...
func IntToAlphadecimal(i uint64) string {
	num := strconv.FormatUint(i, 36)
	return string(rune('0'+len(num)-1)) + num
}

// AlphadecimalToInt decodes a code produced by IntToAlphadecimal. The leading
// character must match the digit count and the digits must carry no leading
// zero, so every integer has exactly one code.
func AlphadecimalToInt(code string) (uint64, error) {
	if len(code) < 2 {
		return 0, fmt.Errorf("alphadecimal %q: too short", code)
	}
	digits := code[1:]
	if int(code[0])-'0' != len(digits)-1 {
		return 0, fmt.Errorf("alphadecimal %q: length prefix %q does not match %d digits", code, code[0], len(digits))
	}
	if len(digits) > 1 && digits[0] == '0' {
		return 0, fmt.Errorf("alphadecimal %q: leading zero", code)
	}
	n, err := strconv.ParseUint(digits, 36, 64)
	if err != nil {
		return 0, fmt.Errorf("alphadecimal %q: %w", code, err)
	}
	return n, nil
}
