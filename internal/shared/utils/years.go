package utils

import (
	"strconv"
	"strings"
)

// Bounds cho birth/death year của một commander
const (
	MinYear = 1
	MaxYear = 2100
)

// NormalizeYear chuẩn hóa free-form year input về *int trong [1, 2100].
// Empty / non-numeric / out-of-range => nil. Never panics.
//
// "1157" => 1157
// ""     => nil
// "3000" => nil
// "abc"  => nil
// "0"    => nil
func NormalizeYear(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	year, err := strconv.Atoi(raw)
	if err != nil {
		// Chấp nhận cả dạng "1157.0" từ client gửi số float
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != float64(int(f)) {
			return nil
		}
		year = int(f)
	}

	if year < MinYear || year > MaxYear {
		return nil
	}

	return &year
}
