package profanity

import (
	"fmt"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/nb"
	ut "github.com/go-playground/universal-translator"
)

const (
	keyRejected = "profanity_rejected"
	keyAnd      = "and"
)

type entry struct {
	one, other, and string
}

var catalog = map[string]entry{
	"en": {
		one:   "Watch your mouth! The word {0} is not allowed here.",
		other: "Watch your mouth! The words {0} are not allowed here.",
		and:   "and",
	},
	"nb": {
		one:   "Pass munnen din! Ordet {0} er ikke tillatt her.",
		other: "Pass munnen din! Ordene {0} er ikke tillatt her.",
		and:   "og",
	},
}

// translator returns the catalog translator for locale; unknown locales use en
func translator(locale string) (ut.Translator, error) {
	enT := en.New()
	uni := ut.New(enT, enT, nb.New())

	if _, ok := catalog[locale]; !ok {
		locale = "en"
	}
	tr, _ := uni.GetTranslator(locale)
	e := catalog[locale]

	if err := tr.AddCardinal(keyRejected, e.one, locales.PluralRuleOne, false); err != nil {
		return nil, fmt.Errorf("profanity catalog %s: %w", locale, err)
	}
	if err := tr.AddCardinal(keyRejected, e.other, locales.PluralRuleOther, false); err != nil {
		return nil, fmt.Errorf("profanity catalog %s: %w", locale, err)
	}
	if err := tr.Add(keyAnd, e.and, false); err != nil {
		return nil, fmt.Errorf("profanity catalog %s: %w", locale, err)
	}
	return tr, nil
}
