package council

import (
	"math"
	"sort"
)

// AggregateRankings reduces the Stage 2 rankings into a single best-to-worst
// ordering by mean 1-based rank position. Labels outside the label→model map
// are ignored; models never mentioned in any parsed ranking are absent from
// the output rather than zero-filled. Ties keep first-encounter order.
func AggregateRankings(stage2 []Stage2Result, labelToModel map[string]string) []AggregateEntry {
	positions := make(map[string][]int)
	var encounterOrder []string

	for _, ranking := range stage2 {
		for i, label := range ranking.ParsedRanking {
			model, ok := labelToModel[label]
			if !ok {
				continue
			}
			if _, seen := positions[model]; !seen {
				encounterOrder = append(encounterOrder, model)
			}
			positions[model] = append(positions[model], i+1)
		}
	}

	aggregate := make([]AggregateEntry, 0, len(encounterOrder))
	for _, model := range encounterOrder {
		ranks := positions[model]
		sum := 0
		for _, r := range ranks {
			sum += r
		}
		mean := float64(sum) / float64(len(ranks))
		aggregate = append(aggregate, AggregateEntry{
			Model:         model,
			AverageRank:   math.Round(mean*100) / 100,
			RankingsCount: len(ranks),
		})
	}

	sort.SliceStable(aggregate, func(i, j int) bool {
		return aggregate[i].AverageRank < aggregate[j].AverageRank
	})

	return aggregate
}
