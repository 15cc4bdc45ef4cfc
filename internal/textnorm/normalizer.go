// Package textnorm cleans informal Arabic problem descriptions before they
// reach the vectorizer. The same rules were applied to the training corpus,
// so any change here must be mirrored by the training job.
package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MinTokenLength is the shortest token kept after cleaning, in runes.
const MinTokenLength = 3

// Options tunes the letterform unification step.
type Options struct {
	// UnifyYa folds alef maksura (ى) into ya (ي).
	UnifyYa bool
}

// DefaultOptions matches the preprocessing used by the training job.
func DefaultOptions() Options {
	return Options{UnifyYa: true}
}

// Normalizer is safe for concurrent use; it holds no mutable state.
type Normalizer struct {
	opts      Options
	stopwords map[string]struct{}
}

// New builds a Normalizer. The stopword set is passed through the same
// letterform rules so it matches normalized tokens.
func New(opts Options) *Normalizer {
	n := &Normalizer{opts: opts, stopwords: make(map[string]struct{}, len(stopwords))}
	for _, w := range stopwords {
		n.stopwords[n.fold(w)] = struct{}{}
	}
	return n
}

// Normalize returns the cleaned, space-joined token sequence for text.
// Empty or unusable input yields "".
func (n *Normalizer) Normalize(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	folded := n.fold(text)

	cleaned := strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) {
			return r
		}
		return ' '
	}, folded)

	fields := strings.Fields(cleaned)
	kept := fields[:0]
	for _, tok := range fields {
		if utf8.RuneCountInString(tok) < MinTokenLength {
			continue
		}
		if n.isStopword(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// isStopword reports whether token (already normalized) is in the stopword set.
func (n *Normalizer) isStopword(token string) bool {
	_, ok := n.stopwords[token]
	return ok
}

// fold applies compatibility normalization, strips tashkeel and unifies
// letterforms. Removing a mark can leave two composable runes adjacent, so
// NFKC runs again after the removal. The transformer chain keeps internal
// buffers, so it is built per call.
func (n *Normalizer) fold(s string) string {
	t := transform.Chain(
		norm.NFKC,
		runes.Remove(runes.Predicate(IsTashkeel)),
		norm.NFKC,
		runes.Map(n.unifyLetter),
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		// Only reachable with a broken transformer; fall back to the input.
		return s
	}
	return out
}

func (n *Normalizer) unifyLetter(r rune) rune {
	switch r {
	case 'أ', 'إ', 'آ', 'ٱ':
		return 'ا'
	case 'ة':
		return 'ه'
	case 'ى':
		if n.opts.UnifyYa {
			return 'ي'
		}
	}
	return r
}

// IsTashkeel reports whether r is an Arabic diacritic, Quranic annotation
// mark or the tatweel elongation character.
func IsTashkeel(r rune) bool {
	switch {
	case r >= 0x0610 && r <= 0x061A:
		return true
	case r >= 0x064B && r <= 0x065F:
		return true
	case r == 0x0670, r == 0x0640:
		return true
	case r >= 0x06D6 && r <= 0x06ED:
		return true
	}
	return false
}
