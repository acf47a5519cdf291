package quantize

import "math"

// localQuantize greedily splits clusters until targetK is reached or no
// remaining split is worthwhile. If the initial set already meets or
// exceeds targetK, it is returned unchanged.
func localQuantize(initial []*colorCluster, targetK int) []*colorCluster {
	if len(initial) >= targetK {
		return initial
	}

	clusters := make([]*colorCluster, len(initial))
	copy(clusters, initial)

	candidates := make([]*clusterPair, len(clusters))
	for i, c := range clusters {
		if pair, err := splitCluster(c); err == nil {
			candidates[i] = pair
		}
	}

	for len(clusters) < targetK {
		bestIdx := -1
		bestBenefit := math.Inf(-1)
		for i, c := range clusters {
			benefit := splitBenefit(c, candidates[i])
			if benefit > bestBenefit {
				bestBenefit = benefit
				bestIdx = i
			}
		}

		if bestIdx < 0 || bestBenefit < splitBenefitEpsilon {
			break
		}

		pair := candidates[bestIdx]
		clusters[bestIdx] = pair.right
		clusters = append(clusters, pair.left)

		if rightPair, err := splitCluster(pair.right); err == nil {
			candidates[bestIdx] = rightPair
		} else {
			candidates[bestIdx] = nil
		}
		if leftPair, err := splitCluster(pair.left); err == nil {
			candidates = append(candidates, leftPair)
		} else {
			candidates = append(candidates, nil)
		}
	}

	return clusters
}
