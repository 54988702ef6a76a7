package domain

import "testing"

func TestSourceCode_IsValid(t *testing.T) {
	t.Parallel()

	for _, s := range SourceCodes() {
		if !s.IsValid() {
			t.Errorf("SourceCode(%q).IsValid() = false, want true", s)
		}
	}
	for _, s := range []SourceCode{"", "MERRIAM", "oxford"} {
		if s.IsValid() {
			t.Errorf("SourceCode(%q).IsValid() = true, want false", s)
		}
	}
}

func TestSourceCodes_Order(t *testing.T) {
	t.Parallel()

	got := SourceCodes()
	want := []SourceCode{SourceGutenbergWebster, SourceCentury21, SourceCollins, SourceOxford, SourceEngChn}
	if len(got) != len(want) {
		t.Fatalf("SourceCodes() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SourceCodes()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseSourceCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   SourceCode
		wantOK bool
	}{
		{"OXFORD", SourceOxford, true},
		{"gut_webster", SourceGutenbergWebster, true},
		{" Collins ", SourceCollins, true},
		{"eng_chn", SourceEngChn, true},
		{"webster", "WEBSTER", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseSourceCode(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseSourceCode(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestPartOfSpeech_IsValid(t *testing.T) {
	t.Parallel()

	valid := []PartOfSpeech{
		PartOfSpeechNoun, PartOfSpeechVerb, PartOfSpeechAdjective, PartOfSpeechAdverb,
		PartOfSpeechPronoun, PartOfSpeechPreposition, PartOfSpeechConjunction,
		PartOfSpeechInterjection, PartOfSpeechArticle, PartOfSpeechAbbreviation,
		PartOfSpeechPrefix, PartOfSpeechSuffix, PartOfSpeechPhrase, PartOfSpeechIdiom,
		PartOfSpeechOther,
	}
	for _, p := range valid {
		if !p.IsValid() {
			t.Errorf("PartOfSpeech(%q).IsValid() = false, want true", p)
		}
	}
	if PartOfSpeech("UNKNOWN").IsValid() {
		t.Error("PartOfSpeech(UNKNOWN).IsValid() = true, want false")
	}
}

func TestReferenceType_IsValid(t *testing.T) {
	t.Parallel()

	for _, r := range []ReferenceType{ReferenceSee, ReferenceVariant, ReferenceAlso, ReferenceSynonym, ReferenceAbbreviationFor} {
		if !r.IsValid() {
			t.Errorf("ReferenceType(%q).IsValid() = false, want true", r)
		}
	}
	if ReferenceType("LINK").IsValid() {
		t.Error("ReferenceType(LINK).IsValid() = true, want false")
	}
	if got := ReferenceAbbreviationFor.String(); got != "ABBREVIATION_FOR" {
		t.Errorf("got %q, want ABBREVIATION_FOR", got)
	}
}
