package community

import (
	"slices"

	"github.com/agenthands/graphlens/internal/core/graph"
)

// GreedyModularity is Clauset-Newman-Moore agglomeration: start from
// singletons and keep merging the pair of connected communities with the
// largest modularity gain while that gain is positive. Equal gains go to the
// pair with the lowest community ids.
type GreedyModularity struct {
	Resolution float64
}

func NewGreedyModularity(resolution float64) *GreedyModularity {
	return &GreedyModularity{Resolution: resolution}
}

func (d *GreedyModularity) Detect(g *graph.Graph) [][]int {
	net := newNetwork(g)
	n := net.size()
	if net.total == 0 {
		return singletons(n)
	}

	q0 := 1 / (2 * net.total)
	// e[c][d] is the weight between communities c and d, a[c] the share of
	// total degree held by c.
	e := make([]map[int]float64, n)
	a := make([]float64, n)
	members := make([][]int, n)
	alive := make([]bool, n)
	for u := 0; u < n; u++ {
		e[u] = make(map[int]float64)
		a[u] = net.degree[u] * q0
		members[u] = []int{u}
		alive[u] = true
	}
	for u := 0; u < n; u++ {
		for _, l := range net.adj[u] {
			e[u][l.to] += l.w
		}
	}

	for {
		bi, bj, best := -1, -1, 0.0
		for i := 0; i < n; i++ {
			if !alive[i] {
				continue
			}
			for j, w := range e[i] {
				if j <= i {
					continue
				}
				dq := 2*w*q0 - 2*d.Resolution*a[i]*a[j]
				if dq > best || (dq == best && bi >= 0 && (i < bi || (i == bi && j < bj))) {
					bi, bj, best = i, j, dq
				}
			}
		}
		if bi < 0 {
			break
		}

		// Merge bj into bi.
		for k, w := range e[bj] {
			if k == bi {
				continue
			}
			e[bi][k] += w
			e[k][bi] += w
			delete(e[k], bj)
		}
		delete(e[bi], bj)
		e[bj] = nil
		a[bi] += a[bj]
		members[bi] = append(members[bi], members[bj]...)
		members[bj] = nil
		alive[bj] = false
	}

	var out [][]int
	for i := 0; i < n; i++ {
		if alive[i] {
			out = append(out, members[i])
		}
	}
	out = normalize(out)
	slices.SortStableFunc(out, func(x, y []int) int { return len(y) - len(x) })
	return out
}
