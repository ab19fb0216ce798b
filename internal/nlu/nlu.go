package nlu

import (
	"strings"
	"unicode"
)

// ParseVoiceCommand turns a raw transcript of the form
// "play <song> by <artist>" into the search query "<Song> <Artist>".
// Transcripts without a " by " separator come back cleaned and
// capitalized but otherwise untouched, so a garbled transcript still
// reaches the search integration. Never fails; empty in, empty out.
func ParseVoiceCommand(transcript string) string {
	text := strings.TrimSpace(transcript)
	lower := strings.ToLower(text)

	if strings.HasPrefix(lower, "play, ") {
		text = strings.TrimSpace(text[len("play, "):])
	} else if strings.HasPrefix(lower, "play ") {
		text = strings.TrimSpace(text[len("play "):])
	}

	text = strings.TrimSpace(strings.Trim(text, ",."))

	if i := strings.Index(strings.ToLower(text), " by "); i >= 0 {
		song := capitalizeWords(text[:i])
		artist := capitalizeWords(text[i+len(" by "):])
		return strings.TrimSpace(song + " " + artist)
	}

	return capitalizeWords(text)
}

// capitalizeWords upper-cases the first rune of every whitespace-delimited
// word and lower-cases the rest. Per-word capitalization keeps apostrophes
// intact where a naive title-case would not.
func capitalizeWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
