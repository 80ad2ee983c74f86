package model

// NodeRecord is a node as it arrives from a caller: plain JSON, nothing derived yet.
type NodeRecord struct {
	ID    string `json:"id" validate:"required"`
	Label string `json:"label,omitempty"`
	Type  string `json:"type,omitempty"`
	Group string `json:"group,omitempty"`
}

// DisplayLabel falls back to the id when no label was supplied.
func (n NodeRecord) DisplayLabel() string {
	if n.Label == "" {
		return n.ID
	}
	return n.Label
}

// Graph is the wire form of a graph: the node and edge lists exactly as supplied.
type Graph struct {
	Nodes []NodeRecord `json:"nodes"`
	Edges []EdgeRecord `json:"edges"`
}
