package evidence

import "carbongpt/internal/domain"

// SignificantSources selects the documents that dominate a retrieval: every
// source whose chunks account for at least half of the retrieved set. A
// qualifying source contributes one entry per retrieved chunk, so duplicate
// {source, clause} pairs are possible and expected. An empty result means no
// source dominated, which is a valid outcome for diverse retrievals.
func SignificantSources(chunks []domain.Chunk) []domain.SignificantSource {
	if len(chunks) == 0 {
		return nil
	}
	counts := make(map[string]int, len(chunks))
	var order []string
	for _, ch := range chunks {
		if counts[ch.Source] == 0 {
			order = append(order, ch.Source)
		}
		counts[ch.Source]++
	}
	total := float64(len(chunks))

	var out []domain.SignificantSource
	for _, src := range order {
		if float64(counts[src])/total < 0.5 {
			continue
		}
		for _, ch := range chunks {
			if ch.Source != src {
				continue
			}
			out = append(out, domain.SignificantSource{Source: src, Clause: chunkClause(ch)})
		}
	}
	return out
}
