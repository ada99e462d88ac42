// Package profanity rejects comment bodies that contain configured words.
//
// Matching is substring containment over case-folded text, so "Shitake" trips "shit".
// The rejection message masks every matched word and lists them in word-list order.
package profanity

import (
	"strings"
	"sync"

	ut "github.com/go-playground/universal-translator"
	"golang.org/x/text/cases"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Filter is immutable after New and safe for concurrent use
type Filter struct {
	words []string
	m     *matcher
	tr    ut.Translator
}

var foldPool = sync.Pool{
	New: func() any { return transform.Chain(norm.NFC, cases.Fold()) },
}

func fold(s string) string {
	tr := foldPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	foldPool.Put(tr)
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// New builds a filter for words; blank and duplicate entries are dropped.
// locale selects the message catalog ("en" or "nb").
func New(words []string, locale string) (*Filter, error) {
	tr, err := translator(locale)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(words))
	kept := make([]string, 0, len(words))
	for _, w := range words {
		w = fold(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		kept = append(kept, w)
	}
	return &Filter{words: kept, m: newMatcher(kept), tr: tr}, nil
}

// Match returns the words contained in body in word-list order
func (f *Filter) Match(body string) []string {
	if f == nil || len(f.words) == 0 || body == "" {
		return nil
	}
	seen := f.m.hits([]byte(fold(body)), len(f.words))
	var out []string
	for id, ok := range seen {
		if ok {
			out = append(out, f.words[id])
		}
	}
	return out
}

// Check returns the localized rejection message, or "" when body is clean
func (f *Filter) Check(body string) string {
	bad := f.Match(body)
	if len(bad) == 0 {
		return ""
	}
	return f.Message(bad)
}

// Message renders the rejection text for already matched words
func (f *Filter) Message(bad []string) string {
	quoted := make([]string, len(bad))
	for i, w := range bad {
		quoted[i] = "'" + Mask(w) + "'"
	}
	and, err := f.tr.T(keyAnd)
	if err != nil {
		and = "and"
	}
	msg, err := f.tr.C(keyRejected, float64(len(bad)), 0, JoinList(quoted, and))
	if err != nil {
		return JoinList(quoted, and)
	}
	return msg
}

// Mask keeps the first and last rune and dashes the interior.
// Words of one or two runes come back unchanged.
func Mask(w string) string {
	r := []rune(w)
	if len(r) <= 2 {
		return w
	}
	return string(r[0]) + strings.Repeat("-", len(r)-2) + string(r[len(r)-1])
}

// JoinList renders "a, b and c" with the given conjunction
func JoinList(items []string, and string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " " + and + " " + items[len(items)-1]
}
