package council

import (
	"regexp"
	"strings"
)

const rankingMarker = "FINAL RANKING:"

var (
	numberedLabelRe = regexp.MustCompile(`\d+\.\s*Response [A-Z]`)
	bareLabelRe     = regexp.MustCompile(`Response [A-Z]`)
)

// rankStrategy attempts to extract an ordered label sequence from ranking
// text. It reports false when its pattern is absent, handing off to the next
// strategy in the chain.
type rankStrategy func(text string) ([]string, bool)

// The chain runs strict to loose. Earlier strategies only fire on text
// containing the explicit marker; the last one scavenges the whole text.
var rankStrategies = []rankStrategy{
	parseNumberedAfterMarker,
	parseBareAfterMarker,
	parseBareAnywhere,
}

// ParseRanking extracts the ordered ranking labels from free-form model text.
// Best effort: it never fails, returning an empty sequence when nothing
// matches. Duplicate labels are kept as-is and the aggregator counts them
// twice (known quirk, preserved deliberately).
func ParseRanking(text string) []string {
	for _, strategy := range rankStrategies {
		if labels, ok := strategy(text); ok {
			return labels
		}
	}
	return []string{}
}

// markerTail returns everything after the first occurrence of the marker.
func markerTail(text string) (string, bool) {
	_, tail, found := strings.Cut(text, rankingMarker)
	return tail, found
}

// parseNumberedAfterMarker matches "<n>. Response <letter>" lines after the
// marker, the format the ranking prompt demands.
func parseNumberedAfterMarker(text string) ([]string, bool) {
	tail, found := markerTail(text)
	if !found {
		return nil, false
	}
	matches := numberedLabelRe.FindAllString(tail, -1)
	if len(matches) == 0 {
		return nil, false
	}
	labels := make([]string, len(matches))
	for i, m := range matches {
		labels[i] = bareLabelRe.FindString(m)
	}
	return labels, true
}

// parseBareAfterMarker picks up unnumbered "Response <letter>" tokens after
// the marker. An empty result still terminates the chain: the marker was
// present, so the whole-text fallback must not run.
func parseBareAfterMarker(text string) ([]string, bool) {
	tail, found := markerTail(text)
	if !found {
		return nil, false
	}
	labels := bareLabelRe.FindAllString(tail, -1)
	if labels == nil {
		labels = []string{}
	}
	return labels, true
}

// parseBareAnywhere scans the entire text; last resort when the model ignored
// the marker entirely.
func parseBareAnywhere(text string) ([]string, bool) {
	labels := bareLabelRe.FindAllString(text, -1)
	if labels == nil {
		labels = []string{}
	}
	return labels, true
}
