package live

import (
	"github.com/Jjop12/renpy/pkg/vdom"
)

// Message is the JSON envelope of the live preview protocol. Type
// determines which fields are meaningful.
type Message struct {
	// Type is one of "hello", "set", "render", "patches", "reload",
	// "error".
	Type string `json:"type"`

	// Session identifies the session ("hello").
	Session string `json:"session,omitempty"`

	// Name and Value carry a scope update ("set").
	Name  string `json:"name,omitempty"`
	Value any    `json:"value,omitempty"`

	// HTML carries a full rendering ("render").
	HTML string `json:"html,omitempty"`

	// Patches carries an incremental update ("patches").
	Patches []PatchMessage `json:"patches,omitempty"`

	// Error carries a failure description ("error").
	Error string `json:"error,omitempty"`
}

// PatchMessage is the wire form of one tree mutation.
type PatchMessage struct {
	Op     string `json:"op"`
	Node   uint32 `json:"node"`
	Parent uint32 `json:"parent,omitempty"`
	Before uint32 `json:"before,omitempty"`
	Key    string `json:"key,omitempty"`
	Value  string `json:"value,omitempty"`
	HTML   string `json:"html,omitempty"`
}

var patchOpNames = map[vdom.PatchOp]string{
	vdom.OpReplaceText: "replace-text",
	vdom.OpSetProp:     "set-prop",
	vdom.OpRemoveProp:  "remove-prop",
	vdom.OpRemoveNode:  "remove-node",
	vdom.OpInsertNode:  "insert-node",
	vdom.OpMoveNode:    "move-node",
}

// encodePatches converts diff output to wire form. Inserted subtrees are
// carried as rendered HTML.
func encodePatches(patches []vdom.Patch, renderHTML func(*vdom.Node) (string, error)) ([]PatchMessage, error) {
	messages := make([]PatchMessage, 0, len(patches))
	for _, patch := range patches {
		msg := PatchMessage{
			Op:     patchOpNames[patch.Op],
			Node:   patch.NodeID,
			Parent: patch.ParentID,
			Before: patch.BeforeID,
			Key:    patch.Key,
			Value:  patch.Value,
		}
		if patch.Op == vdom.OpInsertNode && patch.Node != nil {
			html, err := renderHTML(patch.Node)
			if err != nil {
				return nil, err
			}
			msg.HTML = html
		}
		messages = append(messages, msg)
	}
	return messages, nil
}
