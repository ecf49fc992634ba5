package logic

import (
	"encoding/json"

	"github.com/gnoverse/rangelogic/rangeset"
)

type jsonNode struct {
	Kind   string         `json:"kind"`
	Name   string         `json:"name,omitempty"`
	Domain *rangeset.List `json:"domain,omitempty"`
	Left   *Node          `json:"left,omitempty"`
	Right  *Node          `json:"right,omitempty"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonNode{
		Kind:   n.kind.String(),
		Name:   n.name,
		Domain: n.domain,
		Left:   n.left,
		Right:  n.right,
	})
}
