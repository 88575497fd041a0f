package cover

// MaxHashDistance is the number of differing hash bits under which two
// images are taken for the same cover, e.g. after a lossy re-encoding
const MaxHashDistance = 4

// Select picks the cover out of fetched candidates, ordered best first:
// the image most sources agree upon, in its highest resolution
func Select(fetched []*Candidate) *Candidate {
	type cluster struct {
		seed    Hash
		members []*Candidate
	}

	var clusters []*cluster
	for _, candidate := range fetched {
		if candidate.Hash == nil {
			continue
		}

		var group *cluster
		for _, existing := range clusters {
			if existing.seed.Distance(*candidate.Hash) <= MaxHashDistance {
				group = existing
				break
			}
		}
		if group == nil {
			group = &cluster{seed: *candidate.Hash}
			clusters = append(clusters, group)
		}
		group.members = append(group.members, candidate)
	}

	var majority *cluster
	for _, group := range clusters {
		if majority == nil || len(group.members) > len(majority.members) {
			majority = group
		}
	}
	if majority == nil {
		return nil
	}

	selected := majority.members[0]
	for _, candidate := range majority.members[1:] {
		if candidate.Width*candidate.Height > selected.Width*selected.Height {
			selected = candidate
		}
	}
	return selected
}
