package hawk

import (
	"errors"
	"fmt"
	"strconv"
)

// ParseTS parses the decimal ts parameter. A value that overflows int64
// fails with ErrOverflow; anything else that isn't a valid signed decimal
// (empty string, embedded non-digits, a sign not immediately followed by a
// digit) fails with ErrTimeValue.
func ParseTS(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q", ErrOverflow, s)
		}
		return 0, fmt.Errorf("%w: %q", ErrTimeValue, s)
	}
	return v, nil
}
