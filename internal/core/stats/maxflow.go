package stats

// flowNetwork is a dense capacity matrix for the small graphs connectivity is
// computed on.
type flowNetwork struct {
	cap [][]int
}

func newFlowNetwork(n int) *flowNetwork {
	c := make([][]int, n)
	for i := range c {
		c[i] = make([]int, n)
	}
	return &flowNetwork{cap: c}
}

func (f *flowNetwork) add(u, v, c int) {
	f.cap[u][v] += c
}

// maxFlow runs Edmonds-Karp on a copy of the capacities, stopping early once
// the flow reaches limit.
func (f *flowNetwork) maxFlow(s, t, limit int) int {
	n := len(f.cap)
	residual := make([][]int, n)
	for i := range residual {
		residual[i] = append([]int(nil), f.cap[i]...)
	}

	flow := 0
	parent := make([]int, n)
	for flow < limit {
		for i := range parent {
			parent[i] = -1
		}
		parent[s] = s
		queue := []int{s}
		for len(queue) > 0 && parent[t] == -1 {
			u := queue[0]
			queue = queue[1:]
			for v := 0; v < n; v++ {
				if parent[v] == -1 && residual[u][v] > 0 {
					parent[v] = u
					queue = append(queue, v)
				}
			}
		}
		if parent[t] == -1 {
			break
		}

		bottleneck := limit - flow
		for v := t; v != s; v = parent[v] {
			bottleneck = min(bottleneck, residual[parent[v]][v])
		}
		for v := t; v != s; v = parent[v] {
			residual[parent[v]][v] -= bottleneck
			residual[v][parent[v]] += bottleneck
		}
		flow += bottleneck
	}
	return flow
}
