package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/dictionary-importer/internal/domain"
	"github.com/heartmarshall/dictionary-importer/internal/extract"
)

func parseOne(t *testing.T, code domain.SourceCode, word, text string) []domain.ParsedDefinition {
	t.Helper()
	defs, err := Parse(domain.RawFragment{Word: word, RawText: text, Source: code})
	require.NoError(t, err)
	require.NotEmpty(t, defs)
	return defs
}

func grammar(t *testing.T, code domain.SourceCode) *extract.Grammar {
	t.Helper()
	g, err := Grammar(code)
	require.NoError(t, err)
	return g
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	for _, code := range domain.SourceCodes() {
		p, err := Parser(code)
		require.NoError(t, err, code)
		assert.Equal(t, code, p.Source())
		assert.Equal(t, code, p.Grammar().Code)
	}

	_, err := Parser("MERRIAM")
	assert.ErrorIs(t, err, domain.ErrUnknownSource)
	_, err = Grammar("")
	assert.ErrorIs(t, err, domain.ErrUnknownSource)
	_, err = Parse(domain.RawFragment{Source: "MERRIAM", RawText: "x"})
	assert.ErrorIs(t, err, domain.ErrUnknownSource)
}

func TestWebster_Aardvark(t *testing.T) {
	t.Parallel()

	defs := parseOne(t, domain.SourceGutenbergWebster, "",
		"AARDVARK\nAard·vark, n. Defn: A South African mammal. Syn. -- ant bear, earth pig.")

	require.Len(t, defs, 1)
	d := defs[0]
	assert.Equal(t, "Aardvark", d.MeaningTitle)
	assert.Regexp(t, `^A South African mammal\.`, d.Definition)
	assert.Equal(t, []string{"Ant Bear", "Earth Pig"}, d.Synonyms)
	require.NotNil(t, d.PartOfSpeech)
	assert.Equal(t, domain.PartOfSpeechNoun, *d.PartOfSpeech)
}

func TestWebster_SynonymsStopAtSeeAlso(t *testing.T) {
	t.Parallel()

	defs := parseOne(t, domain.SourceGutenbergWebster, "",
		"DASH\nDefn: To move fast. Syn. -- run, race; see also Sprint.")

	require.Len(t, defs, 1)
	d := defs[0]
	assert.Equal(t, "Dash", d.MeaningTitle)
	assert.Equal(t, []string{"Run", "Race"}, d.Synonyms)
	assert.Equal(t, []domain.CrossReference{{TargetWord: "Sprint", Type: domain.ReferenceAlso}}, d.CrossReferences)
}

func TestWebster_DumpEntry(t *testing.T) {
	t.Parallel()

	text := "The Project Gutenberg eBook of Webster's Unabridged Dictionary\n" +
		"*** START OF THE PROJECT GUTENBERG EBOOK WEBSTER'S UNABRIDGED DICTIONARY ***\n" +
		"AARDVARK\n" +
		"Aard\"vark`, n. Etym: [D. aardvark earth-pig.]\n" +
		"\n" +
		"Defn: (Zoöl.)\n" +
		" An edentate mammal, of the genus Orycteropus, somewhat resembling a\n" +
		"pig, common in some parts of Southern Africa.\n" +
		"*** END OF THE PROJECT GUTENBERG EBOOK WEBSTER'S UNABRIDGED DICTIONARY ***\n"

	defs := parseOne(t, domain.SourceGutenbergWebster, "", text)

	require.Len(t, defs, 1)
	d := defs[0]
	assert.Equal(t, "Aardvark", d.MeaningTitle)
	assert.Equal(t, "An edentate mammal, of the genus Orycteropus, somewhat resembling a pig, common in some parts of Southern Africa.", d.Definition)
	require.NotNil(t, d.Domain)
	assert.Equal(t, "zoology", *d.Domain)
	require.NotNil(t, d.Etymology)
	assert.Equal(t, "nl", d.Etymology.LanguageCode)
	assert.Equal(t, []domain.Etymon{{Language: "D", Word: "aardvark"}}, d.Etymology.Etymons)
}

func TestWebster_NumberedSenses(t *testing.T) {
	t.Parallel()

	defs := parseOne(t, domain.SourceGutenbergWebster, "",
		"ABACK\nA*back\", adv.\n\n1. Toward the back or rear; backward.\n\n2. (Naut.) Backward against the mast.\n\n3. (Obs.) Behind.")

	require.Len(t, defs, 3)
	for i, d := range defs {
		assert.Equal(t, i+1, d.SenseNumber)
		assert.Equal(t, "Aback", d.MeaningTitle)
		require.NotNil(t, d.PartOfSpeech)
		assert.Equal(t, domain.PartOfSpeechAdverb, *d.PartOfSpeech)
	}
	require.NotNil(t, defs[1].Domain)
	assert.Equal(t, "nautical", *defs[1].Domain)
	assert.Equal(t, "Backward against the mast.", defs[1].Definition)
	require.NotNil(t, defs[2].UsageLabel)
	assert.Equal(t, "obsolete", *defs[2].UsageLabel)
}

func TestCollins_LabelAndExamples(t *testing.T) {
	t.Parallel()
	g := grammar(t, domain.SourceCollins)

	labels := extract.ExtractLabels(g, "【Label】：informal")
	require.True(t, labels.Found)
	assert.Equal(t, []string{"informal"}, labels.Value.Registers)

	examples := extract.ExtractExamples(g, []string{"【Examples】»He legged it."}, "")
	assert.Equal(t, []string{"He legged it."}, examples.Value)

	defs := parseOne(t, domain.SourceCollins, "leg it", "【Label】：informal\n【Examples】»He legged it.")
	require.Len(t, defs, 1)
	require.NotNil(t, defs[0].UsageLabel)
	assert.Equal(t, "informal", *defs[0].UsageLabel)
	assert.Equal(t, []string{"He legged it."}, defs[0].Examples)
}

func TestCollins_FullEntry(t *testing.T) {
	t.Parallel()

	defs := parseOne(t, domain.SourceCollins, "",
		"【Headword】leg it\n【POS】phrasal verb\n【Label】：informal\n"+
			"【Definition】：If you leg it, you run very quickly.\n"+
			"【Examples】»He legged it down the road.\n【Synonyms】：run, dash")

	require.Len(t, defs, 1)
	d := defs[0]
	assert.Equal(t, "Leg It", d.MeaningTitle)
	assert.Equal(t, "If you leg it, you run very quickly.", d.Definition)
	require.NotNil(t, d.PartOfSpeech)
	assert.Equal(t, domain.PartOfSpeechVerb, *d.PartOfSpeech)
	require.NotNil(t, d.UsageLabel)
	assert.Equal(t, "informal", *d.UsageLabel)
	assert.Equal(t, []string{"He legged it down the road."}, d.Examples)
	assert.Equal(t, []string{"Run", "Dash"}, d.Synonyms)
}

func TestEngChn_Glyph(t *testing.T) {
	t.Parallel()
	g := grammar(t, domain.SourceEngChn)

	labels := extract.ExtractLabels(g, "〔口〕放弃")
	require.True(t, labels.Found)
	assert.Equal(t, []string{"informal"}, labels.Value.Registers)

	defs := parseOne(t, domain.SourceEngChn, "", "abandon [əˈbændən] vt. 〔口〕放弃\nHe abandoned the car. ⬄ 他弃车而去。")
	require.Len(t, defs, 1)
	d := defs[0]
	assert.Equal(t, "abandon", d.MeaningTitle)
	assert.Equal(t, "放弃.", d.Definition)
	require.NotNil(t, d.PartOfSpeech)
	assert.Equal(t, domain.PartOfSpeechVerb, *d.PartOfSpeech)
	require.NotNil(t, d.UsageLabel)
	assert.Equal(t, "informal", *d.UsageLabel)
	require.NotNil(t, d.Pronunciation)
	assert.Equal(t, "əˈbændən", *d.Pronunciation)
	assert.Equal(t, []string{"He abandoned the car."}, d.Examples)
}

func TestCentury21_HTML(t *testing.T) {
	t.Parallel()

	html := `<span class="hw">abandon</span> <span class="pr">/əˈbændən/</span> <span class="ps">vt.</span> ` +
		`<b>1.</b> 〈医〉放弃 <span class="eg">He abandoned the plan.</span>`

	defs := parseOne(t, domain.SourceCentury21, "", html)
	require.Len(t, defs, 1)
	d := defs[0]
	assert.Equal(t, "abandon", d.MeaningTitle)
	assert.Equal(t, "放弃.", d.Definition)
	require.NotNil(t, d.Domain)
	assert.Equal(t, "medicine", *d.Domain)
	require.NotNil(t, d.PartOfSpeech)
	assert.Equal(t, domain.PartOfSpeechVerb, *d.PartOfSpeech)
	require.NotNil(t, d.Pronunciation)
	assert.Equal(t, "əˈbændən", *d.Pronunciation)
	assert.Equal(t, []string{"He abandoned the plan."}, d.Examples)
}

// Oxford labels are written both as (informal) and as [Brit.]; both forms
// are recognized.
func TestOxford_ParenAndBracketLabels(t *testing.T) {
	t.Parallel()

	text := "serendipity /ˌsɛr(ə)nˈdɪpɪti/\nnoun\n" +
		"1 [mass noun] (informal) the occurrence of events by chance. ◘ a fortunate stroke of serendipity.\n" +
		"2 [Brit.] good luck.\n" +
		"ORIGIN 1754: coined by Horace Walpole."

	defs := parseOne(t, domain.SourceOxford, "", text)
	require.Len(t, defs, 2)

	first := defs[0]
	assert.Equal(t, "serendipity", first.MeaningTitle)
	assert.Equal(t, "the occurrence of events by chance.", first.Definition)
	require.NotNil(t, first.UsageLabel)
	assert.Equal(t, "informal", *first.UsageLabel)
	assert.Equal(t, []string{"a fortunate stroke of serendipity."}, first.Examples)
	require.NotNil(t, first.PartOfSpeech)
	assert.Equal(t, domain.PartOfSpeechNoun, *first.PartOfSpeech)
	require.NotNil(t, first.Pronunciation)
	assert.Equal(t, "ˌsɛr(ə)nˈdɪpɪti", *first.Pronunciation)
	require.NotNil(t, first.Etymology)
	assert.Equal(t, "1754: coined by Horace Walpole.", first.Etymology.Text)

	second := defs[1]
	assert.Equal(t, 2, second.SenseNumber)
	assert.Equal(t, "good luck.", second.Definition)
	require.NotNil(t, second.UsageLabel)
	assert.Equal(t, "british", *second.UsageLabel)
}

func TestAllSources_NeverEmpty(t *testing.T) {
	t.Parallel()

	inputs := []string{"", "\n", "<span>", "【", "〔口〕", "/", "1.", "*** START OF THE PROJECT GUTENBERG EBOOK X"}
	for _, code := range domain.SourceCodes() {
		for _, in := range inputs {
			defs := parseOne(t, code, "word", in)
			for i, d := range defs {
				assert.Equal(t, i+1, d.SenseNumber, "%s %q", code, in)
			}
		}
	}
}

func TestAllSources_BulletAndArrowExamples(t *testing.T) {
	t.Parallel()

	text := "Defn: To run away.\n⇒ He legged it down the road.\n• She legged it home again."
	for _, code := range domain.SourceCodes() {
		t.Run(code.String(), func(t *testing.T) {
			t.Parallel()

			defs := parseOne(t, code, "leg", text)
			require.Len(t, defs, 1)
			assert.Equal(t, "To run away.", defs[0].Definition)
			assert.Equal(t, []string{"He legged it down the road.", "She legged it home again."}, defs[0].Examples)
		})
	}
}
