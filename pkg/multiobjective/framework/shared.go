package framework

// NonDominatedSort sorts the points into fronts and returns the indices of
// each front, best front first.
func NonDominatedSort(points []ObjectiveSpacePoint) [][]int {
	var fronts [][]int
	dominated := make([][]int, len(points))
	domCount := make([]int, len(points))

	// Calculate domination for each point
	for i := 0; i < len(points); i++ {
		for j := 0; j < len(points); j++ {
			if i != j {
				if Dominates(points[i], points[j]) {
					dominated[i] = append(dominated[i], j)
				} else if Dominates(points[j], points[i]) {
					domCount[i]++
				}
			}
		}
	}

	// Find first front
	currentFront := []int{}
	for i := 0; i < len(points); i++ {
		if domCount[i] == 0 {
			currentFront = append(currentFront, i)
		}
	}

	// Find subsequent fronts
	for len(currentFront) > 0 {
		fronts = append(fronts, currentFront)
		nextFront := []int{}
		for _, idx := range currentFront {
			for _, dominatedIdx := range dominated[idx] {
				domCount[dominatedIdx]--
				if domCount[dominatedIdx] == 0 {
					nextFront = append(nextFront, dominatedIdx)
				}
			}
		}
		currentFront = nextFront
	}

	return fronts
}

// NonDominatedSubset returns the indices of the first front in ascending order.
func NonDominatedSubset(points []ObjectiveSpacePoint) []int {
	fronts := NonDominatedSort(points)
	if len(fronts) == 0 {
		return []int{}
	}
	return fronts[0]
}

// Dominates checks if point a dominates point b under minimisation.
func Dominates(a, b ObjectiveSpacePoint) bool {
	better := false
	for i := 0; i < len(a); i++ {
		if a[i] > b[i] {
			return false
		}
		if a[i] < b[i] {
			better = true
		}
	}
	return better
}
