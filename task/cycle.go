package task

// WouldCreateCycle reports whether adding the dependency edge from -> to
// would close a cycle: either from == to, or to already reaches from by
// following dependency edges. Missing tasks are dead ends.
func WouldCreateCycle(r Reader, from, to int) bool {
	if from == to {
		return true
	}

	visited := make(map[int]bool)
	queue := []int{to}
	for head := 0; head < len(queue); head++ {
		current := queue[head]
		if current == from {
			return true
		}
		if visited[current] {
			continue
		}
		visited[current] = true

		t, err := r.GetTask(current)
		if err != nil {
			continue
		}
		for _, dep := range t.Dependencies {
			if !visited[dep] {
				queue = append(queue, dep)
			}
		}
	}

	return false
}
