package extract

import (
	"regexp"
	"strings"

	"github.com/heartmarshall/dictionary-importer/internal/domain"
)

const maxEtymologyChars = 500

var (
	etymBracketRe = regexp.MustCompile(`\[([^\]]{2,})\]`)
	fromLangRe    = regexp.MustCompile(`(?i)\bfrom\s+((?:(?:old|middle|late|medieval|modern|vulgar|new|high|low|anglo-)\s*)*(?:english|french|latin|greek|german|dutch|norse|italian|spanish|portuguese|arabic|hebrew|sanskrit|afrikaans|irish|welsh|persian|turkish|chinese|japanese|hindi|norman))\s+([\p{L}'’\-]+)`)
	abbrevLangRe  = regexp.MustCompile(`\b(LL|NL|ML|OF|OE|ME|OHG|MHG|AS|Gr|L|F|G|D|It|Sp|Pg|Skr|Heb|Ar|Icel|Dan|Sw|Goth|Pers|Turk|W|Ir|Gael)\.\s+([\p{L}'’\-]+)`)
	langNameRe    = regexp.MustCompile(`(?i)\b((?:old|middle|late|medieval|modern|vulgar|new)\s+)?(english|french|latin|greek|german|dutch|norse|italian|spanish|portuguese|arabic|hebrew|sanskrit|afrikaans|irish|welsh|persian|turkish|chinese|japanese|hindi)\b`)
)

// languageCodes maps folded language names and abbreviations to ISO 639 codes.
var languageCodes = map[string]string{
	"l": "la", "latin": "la", "ll": "la", "late latin": "la", "nl": "la", "new latin": "la",
	"ml": "la", "medieval latin": "la", "vulgar latin": "la",
	"gr": "grc", "greek": "grc", "late greek": "grc", "modern greek": "el",
	"of": "fro", "old french": "fro", "f": "fr", "french": "fr", "middle french": "frm",
	"norman": "xno", "anglo-norman": "xno",
	"as": "ang", "oe": "ang", "old english": "ang", "me": "enm", "middle english": "enm", "english": "en",
	"g": "de", "german": "de", "ohg": "goh", "old high german": "goh", "mhg": "gmh", "middle high german": "gmh",
	"low german": "nds", "d": "nl", "dutch": "nl", "middle dutch": "dum",
	"it": "it", "italian": "it", "sp": "es", "spanish": "es", "pg": "pt", "portuguese": "pt",
	"skr": "sa", "sanskrit": "sa", "heb": "he", "hebrew": "he", "ar": "ar", "arabic": "ar",
	"icel": "is", "old norse": "non", "norse": "non", "dan": "da", "sw": "sv", "goth": "got",
	"pers": "fa", "persian": "fa", "turk": "tr", "turkish": "tr", "w": "cy", "welsh": "cy",
	"ir": "ga", "irish": "ga", "gael": "gd", "afrikaans": "af", "chinese": "zh",
	"japanese": "ja", "hindi": "hi",
}

// LanguageCode resolves a language name or abbreviation, "" when unknown.
func LanguageCode(name string) string {
	return languageCodes[domain.FoldKey(name)]
}

// ExtractEtymology builds the entry-level etymology. Text from explicit
// etymology sections wins; otherwise "from <Language> <word>" phrases in
// text are used. Inside explicit sections "<Abbr>. <word>" forms such as
// "L. amare" also yield etymons.
func ExtractEtymology(sections []string, text string) Result[domain.Etymology] {
	return guard("etymology", func() Result[domain.Etymology] {
		explicit := strings.TrimSpace(strings.Join(sections, " "))
		if m := etymBracketRe.FindStringSubmatch(explicit); m != nil && strings.HasPrefix(explicit, "[") {
			explicit = strings.TrimSpace(m[1])
		}

		search := explicit
		if search == "" {
			search = text
		}

		var etymons []domain.Etymon
		var phrases []string
		for _, m := range fromLangRe.FindAllStringSubmatch(search, -1) {
			etymons = append(etymons, domain.Etymon{Language: strings.Join(strings.Fields(m[1]), " "), Word: m[2]})
			phrases = append(phrases, m[0])
		}
		// Abbreviations collide with author initials in citations, so they
		// are only trusted inside an explicit etymology.
		if explicit != "" {
			for _, m := range abbrevLangRe.FindAllStringSubmatch(explicit, -1) {
				etymons = append(etymons, domain.Etymon{Language: m[1], Word: m[2]})
			}
		}
		etymons = dedupEtymons(etymons)

		if explicit == "" && len(etymons) == 0 {
			return none[domain.Etymology]()
		}

		e := domain.Etymology{Text: explicit, Etymons: etymons}
		if e.Text == "" {
			e.Text = strings.Join(phrases, "; ")
		}
		e.Text = truncateRunes(e.Text, maxEtymologyChars)

		for _, et := range etymons {
			if code := LanguageCode(et.Language); code != "" {
				e.LanguageCode = code
				break
			}
		}
		if e.LanguageCode == "" {
			if m := langNameRe.FindString(e.Text); m != "" {
				e.LanguageCode = LanguageCode(m)
			}
		}
		return found(e)
	})
}

func dedupEtymons(in []domain.Etymon) []domain.Etymon {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(in))
	out := make([]domain.Etymon, 0, len(in))
	for _, e := range in {
		key := domain.FoldKey(e.Language) + "|" + strings.ToLower(e.Word)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out
}
