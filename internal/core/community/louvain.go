package community

import (
	"github.com/agenthands/graphlens/internal/core/graph"
)

// Louvain is the two phase Louvain method: local moving of single nodes in
// index order, then aggregation of each community into one node, repeated
// while a level still moves something. With a fixed visiting order and
// strict improvement required for a move the result is deterministic.
// minGain keeps floating point noise from moving a node back and forth.
const minGain = 1e-12

type Louvain struct {
	Resolution float64
	MaxLevels  int
}

func NewLouvain(resolution float64) *Louvain {
	return &Louvain{Resolution: resolution, MaxLevels: 32}
}

func (d *Louvain) Detect(g *graph.Graph) [][]int {
	net := newNetwork(g)
	n := net.size()
	if net.total == 0 {
		return singletons(n)
	}

	// owner maps every original node to its node in the current level.
	owner := make([]int, n)
	for i := range owner {
		owner[i] = i
	}
	for level := 0; level < d.MaxLevels; level++ {
		membership, moved := d.localMoving(net)
		if !moved {
			break
		}
		for i, v := range owner {
			owner[i] = membership[v]
		}
		net = net.aggregate(membership)
	}
	return normalize(groups(owner))
}

// localMoving returns a compact community id per node and whether any node
// changed community.
func (d *Louvain) localMoving(net *network) ([]int, bool) {
	n := net.size()
	m2 := 2 * net.total
	community := make([]int, n)
	sigma := make([]float64, n)
	for i := range community {
		community[i] = i
		sigma[i] = net.degree[i]
	}

	toward := make(map[int]float64)
	var order []int
	moved := false
	for {
		improved := false
		for u := 0; u < n; u++ {
			clear(toward)
			order = order[:0]
			for _, l := range net.adj[u] {
				c := community[l.to]
				if _, seen := toward[c]; !seen {
					order = append(order, c)
				}
				toward[c] += l.w
			}

			own := community[u]
			k := net.degree[u]
			sigma[own] -= k
			gain := func(c int) float64 {
				return toward[c] - d.Resolution*sigma[c]*k/m2
			}

			best, bestGain := own, gain(own)
			for _, c := range order {
				if c == own {
					continue
				}
				if g := gain(c); g > bestGain+minGain {
					best, bestGain = c, g
				}
			}
			sigma[best] += k
			community[u] = best
			if best != own {
				improved = true
				moved = true
			}
		}
		if !improved {
			break
		}
	}

	compact := make(map[int]int)
	for i, c := range community {
		id, ok := compact[c]
		if !ok {
			id = len(compact)
			compact[c] = id
		}
		community[i] = id
	}
	return community, moved
}

// aggregate collapses each community into a single node. Internal weight
// becomes a self-loop on the new node.
func (net *network) aggregate(membership []int) *network {
	k := 0
	for _, c := range membership {
		k = max(k, c+1)
	}
	out := &network{
		adj:    make([][]link, k),
		loops:  make([]float64, k),
		degree: make([]float64, k),
	}

	between := make(map[[2]int]float64)
	var pairs [][2]int
	for u := range net.adj {
		cu := membership[u]
		if net.loops[u] != 0 {
			out.add(cu, cu, net.loops[u])
		}
		for _, l := range net.adj[u] {
			if l.to < u {
				continue
			}
			cv := membership[l.to]
			if cu == cv {
				out.add(cu, cu, l.w)
				continue
			}
			key := [2]int{min(cu, cv), max(cu, cv)}
			if _, seen := between[key]; !seen {
				pairs = append(pairs, key)
			}
			between[key] += l.w
		}
	}
	for _, p := range pairs {
		out.add(p[0], p[1], between[p])
	}
	return out
}
