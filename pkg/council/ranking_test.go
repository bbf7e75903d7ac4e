package council

import (
	"reflect"
	"testing"
)

func TestParseRanking(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "numbered list after marker",
			text: "Response A is strong.\nResponse B rambles.\n\nFINAL RANKING:\n1. Response B\n2. Response A",
			want: []string{"Response B", "Response A"},
		},
		{
			name: "numbered list with extra spacing",
			text: "FINAL RANKING:\n1.  Response C\n2.\tResponse A\n3. Response B",
			want: []string{"Response C", "Response A", "Response B"},
		},
		{
			name: "bare labels after marker",
			text: "Analysis...\nFINAL RANKING:\nResponse C, Response A, Response B",
			want: []string{"Response C", "Response A", "Response B"},
		},
		{
			name: "marker present but nothing after blocks fallback",
			text: "Response A is clearly better than Response B.\nFINAL RANKING:\nnone provided",
			want: []string{},
		},
		{
			name: "no marker falls back to whole text order",
			text: "I prefer Response B, then Response A, and finally Response C.",
			want: []string{"Response B", "Response A", "Response C"},
		},
		{
			name: "no labels at all",
			text: "I cannot rank these.",
			want: []string{},
		},
		{
			name: "empty text",
			text: "",
			want: []string{},
		},
		{
			name: "duplicate labels are preserved",
			text: "FINAL RANKING:\n1. Response A\n2. Response A\n3. Response B",
			want: []string{"Response A", "Response A", "Response B"},
		},
		{
			name: "only first marker occurrence splits",
			text: "I will write FINAL RANKING: later.\nFINAL RANKING:\n1. Response A",
			want: []string{"Response A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRanking(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseRanking() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseRankingNeverNil(t *testing.T) {
	if got := ParseRanking("nothing useful"); got == nil {
		t.Error("ParseRanking returned nil, want empty slice")
	}
}
