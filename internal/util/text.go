package util

import (
	"regexp"
	"strings"
)

var (
	reSeparators = regexp.MustCompile(`[\s\-./]+`)
	reUnderscore = regexp.MustCompile(`_+`)
)

func NormalizeLabel(input string) string {
	s := strings.ToUpper(strings.TrimSpace(input))
	s = reSeparators.ReplaceAllString(s, "_")
	out := strings.Builder{}
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			out.WriteRune(r)
		}
	}
	return strings.Trim(reUnderscore.ReplaceAllString(out.String(), "_"), "_")
}

func Tokenize(input string) []string {
	parts := strings.Split(NormalizeLabel(input), "_")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(p) >= 2 {
			out = append(out, p)
		}
	}
	return out
}

func DiceCoefficient(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	pairs := func(s string) []string {
		r := []rune(s)
		if len(r) < 2 {
			return nil
		}
		out := make([]string, 0, len(r)-1)
		for i := 0; i < len(r)-1; i++ {
			out = append(out, string(r[i:i+2]))
		}
		return out
	}

	aPairs := pairs(a)
	bPairs := pairs(b)
	if len(aPairs) == 0 || len(bPairs) == 0 {
		return 0
	}

	bCount := map[string]int{}
	for _, p := range bPairs {
		bCount[p]++
	}
	inter := 0
	for _, p := range aPairs {
		if bCount[p] > 0 {
			inter++
			bCount[p]--
		}
	}

	return float64(2*inter) / float64(len(aPairs)+len(bPairs))
}
