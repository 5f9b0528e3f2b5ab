package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLocale is used when no override, header or environment value yields
// a usable tag.
const DefaultLocale = "en-US"

// envLocaleVars are checked in POSIX precedence order.
var envLocaleVars = []string{"LC_ALL", "LC_MESSAGES", "LANGUAGE", "LANG"}

// Ambient describes where a picker's locale comes from. Resolution order:
//
//  1. Override (explicit configuration or request value)
//  2. the highest-quality tag of AcceptLanguage
//  3. LC_ALL, LC_MESSAGES, LANGUAGE, LANG read through Getenv
//  4. DefaultLocale
//
// A nil Getenv skips the environment step, which keeps tests hermetic.
type Ambient struct {
	Override       string
	AcceptLanguage string
	Getenv         func(string) string
}

// Locale returns the resolved locale tag.
func (a Ambient) Locale() string {
	if o := strings.TrimSpace(a.Override); o != "" {
		return o
	}
	if tag, ok := fromAcceptLanguage(a.AcceptLanguage); ok {
		return tag
	}
	if a.Getenv != nil {
		for _, name := range envLocaleVars {
			if tag, ok := fromPOSIX(a.Getenv(name)); ok {
				return tag
			}
		}
	}
	return DefaultLocale
}

func fromAcceptLanguage(header string) (string, bool) {
	if strings.TrimSpace(header) == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	if tags[0] == language.Und {
		return "", false
	}
	return tags[0].String(), true
}

// fromPOSIX turns values like "de_DE.UTF-8" or "pt_BR:pt" into "de-DE" /
// "pt-BR". "C" and "POSIX" carry no locale information.
func fromPOSIX(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if i := strings.IndexByte(v, ':'); i >= 0 {
		v = v[:i]
	}
	if i := strings.IndexAny(v, ".@"); i >= 0 {
		v = v[:i]
	}
	if v == "" || v == "C" || v == "POSIX" {
		return "", false
	}
	tag, err := language.Parse(strings.ReplaceAll(v, "_", "-"))
	if err != nil {
		return "", false
	}
	return tag.String(), true
}
