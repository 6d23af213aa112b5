package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatINR renders a rupee amount with Indian digit grouping,
// e.g. 150000 -> "₹1,50,000".
func FormatINR(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s₹%s", sign, groupIndian(amount))
}

// ParseINRToInt parses "₹1,50,000", "Rs 1500" or "1500" into rupees.
func ParseINRToInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "₹")
	s = strings.TrimPrefix(strings.ToLower(s), "rs")
	s = strings.TrimPrefix(s, ".")
	replacer := strings.NewReplacer(",", "", " ", "")
	s = replacer.Replace(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("invalid rupee amount")
	}
	return strconv.ParseInt(s, 10, 64)
}

// groupIndian applies the lakh/crore grouping: last three digits, then
// groups of two.
func groupIndian(n int64) string {
	str := strconv.FormatInt(n, 10)
	if len(str) <= 3 {
		return str
	}
	head := str[:len(str)-3]
	tail := str[len(str)-3:]
	var out strings.Builder
	for i, c := range head {
		if i != 0 && (len(head)-i)%2 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String() + "," + tail
}
