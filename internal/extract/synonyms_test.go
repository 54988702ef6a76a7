package extract

import (
	"slices"
	"testing"
)

func TestExtractSynonyms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		section []string
		body    string
		want    []string
	}{
		{name: "stops at see also", section: []string{"run, race; see also Sprint."}, want: []string{"Run", "Race"}},
		{name: "multi word tokens", section: []string{"ant bear, earth pig."}, want: []string{"Ant Bear", "Earth Pig"}},
		{name: "stops at caps headword", section: []string{"run, race", "RACE", "fly"}, want: []string{"Run", "Race"}},
		{name: "stops at blank", section: []string{"run", "", "walk"}, want: []string{"Run"}},
		{name: "stops at Defn", section: []string{"swift, fleet Defn: moving fast"}, want: []string{"Swift", "Fleet"}},
		{name: "citations stripped", section: []string{"swift (Shak.), quick"}, want: []string{"Swift", "Quick"}},
		{name: "long phrase rejected", section: []string{"to move very quickly on foot, dash"}, want: []string{"Dash"}},
		{name: "split on and", section: []string{"bread and butter"}, want: []string{"Bread", "Butter"}},
		{name: "leading dash", section: []string{"-- quick; fast"}, want: []string{"Quick", "Fast"}},
		{name: "duplicates", section: []string{"run, Run, RUN"}, want: []string{"Run"}},
		{name: "same as", body: "A fish, same as pike.", want: []string{"Pike"}},
		{name: "also called", body: "A mammal also called ant bear.", want: []string{"Ant Bear"}},
		{name: "stop words only", section: []string{"etc., and"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := ExtractSynonyms(tt.section, tt.body)
			if r.Found != (len(tt.want) > 0) {
				t.Fatalf("Found = %v, value %q", r.Found, r.Value)
			}
			if !slices.Equal(r.Value, tt.want) {
				t.Errorf("ExtractSynonyms() = %q, want %q", r.Value, tt.want)
			}
		})
	}
}
