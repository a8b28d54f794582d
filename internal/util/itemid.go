package util

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var itemIDPattern = regexp.MustCompile(`^\[(\p{Nd}+)\](.+)`)

// ParseItemID splits a composite id such as "[622]ITEM_0648" into its fixed id and label.
// Any Unicode decimal digit is accepted in the fixed id.
func ParseItemID(input string) (fixedID int, label string, ok bool) {
	m := itemIDPattern.FindStringSubmatch(input)
	if m == nil {
		return 0, "", false
	}
	parsed, err := strconv.Atoi(asciiDigits(m[1]))
	if err != nil {
		return 0, "", false
	}
	return parsed, m[2], true
}

// asciiDigits relies on every Nd range being a run of complete 0-9 blocks.
func asciiDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		start := r
		for unicode.IsDigit(start - 1) {
			start--
		}
		b.WriteByte(byte('0' + (r-start)%10))
	}
	return b.String()
}
