// Package locale decides which weekday opens a calendar week for a locale tag
// and where the locale itself comes from when the caller does not pin one.
package locale

import "strings"

// WeekStart is the weekday shown in the first column of a month grid.
type WeekStart int

const (
	Monday WeekStart = iota
	Sunday
	Saturday
)

func (w WeekStart) String() string {
	switch w {
	case Sunday:
		return "sunday"
	case Saturday:
		return "saturday"
	default:
		return "monday"
	}
}

// ParseWeekStart accepts the String forms, case-insensitively.
func ParseWeekStart(s string) (WeekStart, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monday", "mon":
		return Monday, true
	case "sunday", "sun":
		return Sunday, true
	case "saturday", "sat":
		return Saturday, true
	}
	return Monday, false
}

// Regions and languages whose weeks do not start on Monday. These are fixed
// lists; they encode common locale defaults rather than strict CLDR data.
var (
	saturdayRegions = set(
		"AE", "AF", "BH", "DJ", "DZ", "EG", "IQ", "IR", "JO", "KW", "LY", "OM", "QA", "SD", "SY",
	)
	sundayRegions = set(
		"AG", "AR", "AS", "AU", "BD", "BR", "BS", "BT", "BW", "BZ", "CA", "CN", "CO", "DM", "DO",
		"ET", "GT", "GU", "HK", "HN", "ID", "IL", "IN", "JM", "JP", "KE", "KH", "KR", "LA", "MH",
		"MM", "MO", "MT", "MX", "MZ", "NI", "NP", "PA", "PE", "PH", "PK", "PR", "PT", "PY", "SA",
		"SG", "SV", "TH", "TT", "TW", "UM", "US", "VE", "VI", "WS", "YE", "ZA", "ZW",
	)
	saturdayLanguages = set("ar", "arq", "arz", "fa")
	sundayLanguages   = set(
		"am", "as", "bn", "dz", "en", "gn", "gu", "he", "hi", "id", "ja", "jv", "km", "kn", "ko",
		"lo", "mh", "ml", "mr", "mt", "my", "ne", "om", "or", "pa", "ps", "sd", "sm", "sn", "su",
		"ta", "te", "th", "tn", "ur", "zh", "zu",
	)
)

func set(values ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}

// Resolve returns the week start for a BCP-47 style tag such as "en-US",
// "zh-Hant-TW" or "es-419". A region subtag, when present, decides alone;
// otherwise the language does. Anything unrecognised is Monday.
func Resolve(tag string) WeekStart {
	lang, region, ok := splitTag(tag)
	if !ok {
		return Monday
	}

	if region != "" {
		if _, hit := saturdayRegions[region]; hit {
			return Saturday
		}
		if _, hit := sundayRegions[region]; hit {
			return Sunday
		}
		return Monday
	}

	if _, hit := sundayLanguages[lang]; hit {
		return Sunday
	}
	if _, hit := saturdayLanguages[lang]; hit {
		return Saturday
	}
	return Monday
}

// splitTag extracts the language and region subtags of
// language[-extlang][-script][-region]. ok is false when the tag does not
// start with at least two letters.
func splitTag(tag string) (lang, region string, ok bool) {
	n := 0
	for n < len(tag) && n < 3 && isLetter(tag[n]) {
		n++
	}
	if n < 2 {
		return "", "", false
	}
	lang = strings.ToLower(tag[:n])

	rest := tag[n:]
	if !strings.HasPrefix(rest, "-") {
		return lang, "", true
	}

	parts := strings.Split(rest[1:], "-")
	i := 0
	if i < len(parts) && len(parts[i]) == 3 && allLetters(parts[i]) {
		i++ // extlang
	}
	if i < len(parts) && len(parts[i]) == 4 && allLetters(parts[i]) {
		i++ // script
	}
	if i < len(parts) {
		p := parts[i]
		if (len(p) == 2 && allLetters(p)) || (len(p) == 3 && allDigits(p)) {
			region = strings.ToUpper(p)
		}
	}
	return lang, region, true
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func allLetters(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isLetter(s[i]) {
			return false
		}
	}
	return true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
