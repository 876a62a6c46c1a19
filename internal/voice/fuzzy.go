package voice

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// PartialRatio scores how well the shorter of two strings matches any
// same-length window of the longer one, on a 0-100 scale. 100 means the
// shorter string appears (edit-distance-free) somewhere inside the
// longer; lower scores degrade with the best window's Levenshtein
// distance. This mirrors the substring-alignment behavior speech
// transcripts need: "uh point to team a please" still scores 100
// against "point to team a".
func PartialRatio(a, b string) int {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}

	shorter, longer := []rune(a), []rune(b)
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	n := len(shorter)
	best := 0
	for start := 0; start+n <= len(longer); start++ {
		window := string(longer[start : start+n])
		dist := matchr.Levenshtein(string(shorter), window)
		score := (n - dist) * 100 / n
		if score > best {
			best = score
			if best == 100 {
				break
			}
		}
	}
	return best
}

// bestScore returns the highest PartialRatio between the text and any of
// the given phrases.
func bestScore(text string, phrases []string) int {
	best := 0
	for _, p := range phrases {
		if s := PartialRatio(text, p); s > best {
			best = s
		}
	}
	return best
}
