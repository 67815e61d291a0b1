package util

import (
	"encoding/json"
	"fmt"

	"github.com/ValentinKolb/forcespec/lib/lnode"
	"github.com/ValentinKolb/forcespec/lib/rodforce"
	"github.com/ValentinKolb/forcespec/lib/springforce"
	"github.com/ValentinKolb/forcespec/lib/streamable"
)

// NodeJSON is the JSON description of one node and its force specifications.
// A node may carry any number of records of each type. Within a node, rod
// records are stored before spring records.
type NodeJSON struct {
	Index   int           `json:"index"`
	Rods    []RodsJSON    `json:"rods,omitempty"`
	Springs []SpringsJSON `json:"springs,omitempty"`
}

// RodsJSON describes a rodforce.Spec; the master index is the node index
type RodsJSON struct {
	Peers  []int                     `json:"peers"`
	Params []rodforce.MaterialParams `json:"params"`
}

// SpringsJSON describes a springforce.Spec; the master index is the node index
type SpringsJSON struct {
	Peers          []int       `json:"peers"`
	ForceFunctions []int       `json:"force_functions"`
	Params         [][]float64 `json:"params"`
}

// ParseNodes decodes a JSON node list and stores the records in the node set
func ParseNodes(data []byte, nodes *lnode.NodeSet) error {
	var parsed []NodeJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("invalid node description: %w", err)
	}

	for _, n := range parsed {
		items := make([]streamable.Streamable, 0, len(n.Rods)+len(n.Springs))
		for i, rods := range n.Rods {
			spec, err := rodforce.NewSpecFrom(n.Index, rods.Peers, rods.Params)
			if err != nil {
				return fmt.Errorf("node %d, rods %d: %w", n.Index, i, err)
			}
			items = append(items, spec)
		}
		for i, springs := range n.Springs {
			spec, err := springforce.NewSpecFrom(n.Index, springs.Peers, springs.ForceFunctions, springs.Params)
			if err != nil {
				return fmt.Errorf("node %d, springs %d: %w", n.Index, i, err)
			}
			items = append(items, spec)
		}
		nodes.Put(n.Index, items...)
	}
	return nil
}

// FormatNodes encodes all nodes of the set as indented JSON, ordered by node index
func FormatNodes(nodes *lnode.NodeSet) ([]byte, error) {
	out := make([]NodeJSON, 0, nodes.Len())
	for _, idx := range nodes.Indices() {
		items, _ := nodes.Get(idx)
		n := NodeJSON{Index: idx}
		for _, item := range items {
			switch spec := item.(type) {
			case *rodforce.Spec:
				n.Rods = append(n.Rods, RodsJSON{Peers: spec.PeerIndices(), Params: spec.MaterialParams()})
			case *springforce.Spec:
				n.Springs = append(n.Springs, SpringsJSON{Peers: spec.PeerIndices(), ForceFunctions: spec.ForceFunctionIndices(), Params: spec.Parameters()})
			default:
				return nil, fmt.Errorf("node %d: cannot format record of type %T", idx, item)
			}
		}
		out = append(out, n)
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
