package ir

import "encoding/json"

// jsonPathNode is the wire shape of a PathNode in IR dumps.
type jsonPathNode struct {
	Type     string    `json:"type"`
	Relative bool      `json:"relative"`
	Args     []float32 `json:"args"`
}

// MarshalPathNode returns the JSON encoding of a single path node.
func MarshalPathNode(n PathNode) ([]byte, error) {
	return json.Marshal(toJSONPathNode(n))
}

func toJSONPathNode(n PathNode) jsonPathNode {
	args := n.Args()
	if args == nil {
		args = []float32{}
	}
	return jsonPathNode{
		Type:     n.Command().String(),
		Relative: n.IsRelative(),
		Args:     args,
	}
}

// MarshalJSON implements json.Marshaler.
func (g *Group) MarshalJSON() ([]byte, error) {
	paths := g.Paths
	if paths == nil {
		paths = []*Path{}
	}
	return json.Marshal(struct {
		Type  string  `json:"type"`
		Paths []*Path `json:"paths"`
	}{"group", paths})
}

// MarshalJSON implements json.Marshaler.
func (p *Path) MarshalJSON() ([]byte, error) {
	nodes := make([]jsonPathNode, len(p.Nodes))
	for i, n := range p.Nodes {
		nodes[i] = toJSONPathNode(n)
	}
	return json.Marshal(struct {
		Type        string         `json:"type"`
		StrokeAlpha float32        `json:"stroke_alpha"`
		FillAlpha   float32        `json:"fill_alpha"`
		FillType    FillType       `json:"fill_type"`
		Nodes       []jsonPathNode `json:"nodes"`
	}{"path", p.StrokeAlpha, p.FillAlpha, p.FillType, nodes})
}
