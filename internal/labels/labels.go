// Package labels selects the best label translation for a requested
// language. Logic files may carry one label column per language; the
// driver asks this package which one to emit.
package labels

import (
	"sort"

	"golang.org/x/text/language"
)

// Pick returns the label whose language tag best matches want, using
// x/text matching so that "en" serves "en-US" and regional variants
// collapse sensibly. An empty want or an unparsable want falls back to
// English, then to the lexicographically first available language, so the
// choice stays deterministic.
func Pick(byLang map[string]string, want string) (string, bool) {
	if len(byLang) == 0 {
		return "", false
	}

	codes := make([]string, 0, len(byLang))
	for code := range byLang {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	tags := make([]language.Tag, 0, len(codes))
	valid := make([]string, 0, len(codes))
	for _, code := range codes {
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		valid = append(valid, code)
	}
	if len(tags) == 0 {
		// Ни один код не разобрался; берём первый по алфавиту.
		return byLang[codes[0]], true
	}

	wantTag, err := language.Parse(want)
	if err != nil || want == "" {
		wantTag = language.English
	}

	matcher := language.NewMatcher(tags)
	_, idx, conf := matcher.Match(wantTag)
	if conf == language.No {
		// Matcher всё равно выдаёт индекс первого тега; он и есть
		// детерминированный запасной вариант.
		return byLang[valid[idx]], true
	}
	return byLang[valid[idx]], true
}

// Languages returns the sorted language codes present in the map.
func Languages(byLang map[string]string) []string {
	codes := make([]string, 0, len(byLang))
	for code := range byLang {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
