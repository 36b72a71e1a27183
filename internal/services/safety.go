package services

import (
	"net/http"
	"regexp"
	"strings"
	"unicode"

	"github.com/standapp/standapp-backend/internal/models"
)

// Canonical dictionaries for the chat safety scan. Matching happens against
// cleaned text only, so obfuscated variants ("k1ll mys3lf") still confirm.
var selfHarmPhrases = []string{
	"suicide",
	"kill myself",
	"end my life",
	"take my life",
	"end it all",
	"self harm",
	"cut myself",
	"hurt myself",
	"harm myself",
	"want to die",
	"wish i was dead",
	"not worth living",
	"better off dead",
	"end myself",
	"unalive",
}

var distressWords = []string{
	"hopeless",
	"worthless",
	"trapped",
	"unbearable",
	"give up",
	"no way out",
	"nobody cares",
	"hate myself",
}

var spaceRegex = regexp.MustCompile(`\s+`)

// CleanText normalizes a message to canonical form: lowercase, obfuscation
// characters mapped back to letters, non-letters stripped, repeated letters
// collapsed ("rrreeeally" -> "realy" territory is acceptable, the dictionary
// is written against collapsed forms).
func CleanText(text string) string {
	cleaned := strings.ToLower(text)

	replacements := map[string]string{
		"@": "a",
		"4": "a",
		"3": "e",
		"!": "i",
		"1": "i",
		"0": "o",
		"$": "s",
		"5": "s",
		"7": "t",
		"+": "t",
		"а": "a", // Cyrillic homoglyphs
		"е": "e",
		"і": "i",
		"о": "o",
		"р": "p",
	}
	for from, to := range replacements {
		cleaned = strings.ReplaceAll(cleaned, from, to)
	}

	var b strings.Builder
	for _, r := range cleaned {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	cleaned = collapseRepeats(b.String())

	cleaned = spaceRegex.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// collapseRepeats reduces runs of the same letter to a single character.
// Spaces are preserved for word separation.
func collapseRepeats(text string) string {
	var b strings.Builder
	lastChar := rune(0)
	lastWasLetter := false
	for _, char := range text {
		isLetter := unicode.IsLetter(char)
		if isLetter && lastWasLetter && char == lastChar {
			continue
		}
		b.WriteRune(char)
		lastChar = char
		lastWasLetter = isLetter
	}
	return b.String()
}

// containsConfirmed reports whether cleaned text contains any dictionary
// entry. Single words must match a whole word ("skill" does not confirm
// "kill"); multi-word phrases match on containment.
func containsConfirmed(cleanedText string, dictionary []string) bool {
	words := strings.Fields(cleanedText)
	for _, entry := range dictionary {
		// Phrases are already cleaned forms; collapse them the same way so
		// "kill" matches its collapsed "kil" variant consistently.
		canonical := collapseRepeats(entry)
		if cleanedText == canonical {
			return true
		}
		if !strings.Contains(cleanedText, canonical) {
			continue
		}
		if len(strings.Fields(canonical)) > 1 {
			return true
		}
		for _, w := range words {
			if w == canonical {
				return true
			}
		}
	}
	return false
}

// ScanMessage classifies a user chat message. CRISIS for confirmed self-harm
// language, WARNING for strong distress signals, SAFE otherwise.
func ScanMessage(message string) models.SafetyStatus {
	cleaned := CleanText(message)
	if cleaned == "" {
		return models.SafetySafe
	}
	if containsConfirmed(cleaned, selfHarmPhrases) {
		return models.SafetyCrisis
	}
	if containsConfirmed(cleaned, distressWords) {
		return models.SafetyWarning
	}
	return models.SafetySafe
}

// GetIPAddress extracts the client IP from proxy headers, falling back to
// RemoteAddr.
func GetIPAddress(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
