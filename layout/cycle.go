package layout

import "sort"

// FindCycle looks for a reference cycle in a dependency graph mapping each
// widget name to the names its layout references. It returns the names on
// the first cycle found, in reference order, or nil. Names are visited in
// sorted order so the reported cycle is deterministic.
func FindCycle(deps map[string][]string) []string {
	const (
		unvisited = iota
		active
		done
	)
	state := make(map[string]int, len(deps))
	var stack []string
	var cycle []string

	var visit func(n string) bool
	visit = func(n string) bool {
		switch state[n] {
		case active:
			for i, s := range stack {
				if s == n {
					cycle = append([]string(nil), stack[i:]...)
					return true
				}
			}
			return true
		case done:
			return false
		}
		state[n] = active
		stack = append(stack, n)
		for _, d := range deps[n] {
			if visit(d) {
				return true
			}
		}
		stack = stack[:len(stack)-1]
		state[n] = done
		return false
	}

	names := make([]string, 0, len(deps))
	for n := range deps {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		if visit(n) {
			return cycle
		}
	}
	return nil
}
