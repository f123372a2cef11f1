package vdom

import (
	"fmt"
)

// PatchOp represents the type of patch operation.
type PatchOp uint8

const (
	// OpReplaceText replaces text node content
	OpReplaceText PatchOp = 0x01
	// OpSetProp sets or replaces a widget property
	OpSetProp PatchOp = 0x02
	// OpRemoveNode removes a node
	OpRemoveNode PatchOp = 0x03
	// OpInsertNode inserts a new node
	OpInsertNode PatchOp = 0x04
	// OpRemoveProp removes a widget property
	OpRemoveProp PatchOp = 0x05
	// OpMoveNode moves a node to a new position
	OpMoveNode PatchOp = 0x06
)

// Patch represents a single tree mutation.
type Patch struct {
	Op       PatchOp
	NodeID   uint32
	ParentID uint32 // For insert operations
	BeforeID uint32 // For insert/move operations (0 means append)
	Key      string // Property key for set/remove property
	Value    string // Text content or stringified property value
	Node     *Node  // For insert operations
}

// String returns a human-readable representation of the patch.
func (p Patch) String() string {
	switch p.Op {
	case OpReplaceText:
		return fmt.Sprintf("ReplaceText(node=%d, text=%q)", p.NodeID, p.Value)
	case OpSetProp:
		return fmt.Sprintf("SetProp(node=%d, key=%q, value=%q)", p.NodeID, p.Key, p.Value)
	case OpRemoveProp:
		return fmt.Sprintf("RemoveProp(node=%d, key=%q)", p.NodeID, p.Key)
	case OpRemoveNode:
		return fmt.Sprintf("RemoveNode(node=%d)", p.NodeID)
	case OpInsertNode:
		return fmt.Sprintf("InsertNode(parent=%d, before=%d)", p.ParentID, p.BeforeID)
	case OpMoveNode:
		return fmt.Sprintf("MoveNode(node=%d, parent=%d, before=%d)", p.NodeID, p.ParentID, p.BeforeID)
	default:
		return fmt.Sprintf("Unknown(op=%d)", p.Op)
	}
}

// diffContext holds state during diffing.
type diffContext struct {
	patches     []Patch
	nodeCounter uint32
	nodeMap     map[*Node]uint32
}

func newDiffContext() *diffContext {
	return &diffContext{
		patches:     make([]Patch, 0, 16),
		nodeCounter: 1,
		nodeMap:     make(map[*Node]uint32),
	}
}

func (ctx *diffContext) getNodeID(node *Node) uint32 {
	if node == nil {
		return 0
	}
	if id, ok := ctx.nodeMap[node]; ok {
		return id
	}
	id := ctx.nodeCounter
	ctx.nodeCounter++
	ctx.nodeMap[node] = id
	return id
}

func (ctx *diffContext) addPatch(patch Patch) {
	ctx.patches = append(ctx.patches, patch)
}

// Diff computes the patches needed to transform prev into next.
func Diff(prev, next *Node) []Patch {
	ctx := newDiffContext()
	diffNode(ctx, prev, next, 0)
	return ctx.patches
}

func diffNode(ctx *diffContext, prev, next *Node, parentID uint32) {
	if prev == nil && next == nil {
		return
	}

	// Node removed
	if prev != nil && next == nil {
		ctx.addPatch(Patch{Op: OpRemoveNode, NodeID: ctx.getNodeID(prev)})
		return
	}

	// Node added
	if prev == nil {
		ctx.addPatch(Patch{
			Op:       OpInsertNode,
			NodeID:   ctx.getNodeID(next),
			ParentID: parentID,
			Node:     next,
		})
		return
	}

	// Different node types - replace
	if prev.Kind != next.Kind || (prev.Kind == KindWidget && prev.Tag != next.Tag) {
		ctx.addPatch(Patch{Op: OpRemoveNode, NodeID: ctx.getNodeID(prev)})
		ctx.addPatch(Patch{
			Op:       OpInsertNode,
			NodeID:   ctx.getNodeID(next),
			ParentID: parentID,
			Node:     next,
		})
		return
	}

	nodeID := ctx.getNodeID(prev)
	ctx.nodeMap[next] = nodeID

	switch prev.Kind {
	case KindText:
		if prev.Text != next.Text {
			ctx.addPatch(Patch{Op: OpReplaceText, NodeID: nodeID, Value: next.Text})
		}

	case KindWidget:
		diffProps(ctx, nodeID, prev.Props, next.Props)
		diffChildren(ctx, nodeID, prev.Kids, next.Kids)
	}
}

func diffProps(ctx *diffContext, nodeID uint32, prevProps, nextProps Props) {
	for key, prevVal := range prevProps {
		if key == "key" {
			continue
		}
		nextVal, exists := nextProps[key]
		if !exists {
			ctx.addPatch(Patch{Op: OpRemoveProp, NodeID: nodeID, Key: key})
		} else if !propsEqual(prevVal, nextVal) {
			ctx.addPatch(Patch{
				Op:     OpSetProp,
				NodeID: nodeID,
				Key:    key,
				Value:  propToString(nextVal),
			})
		}
	}

	for key, nextVal := range nextProps {
		if key == "key" {
			continue
		}
		if _, exists := prevProps[key]; !exists {
			ctx.addPatch(Patch{
				Op:     OpSetProp,
				NodeID: nodeID,
				Key:    key,
				Value:  propToString(nextVal),
			})
		}
	}
}

// diffChildren diffs child nodes with keyed and unkeyed reconciliation.
func diffChildren(ctx *diffContext, parentID uint32, prevKids, nextKids []*Node) {
	if len(prevKids) == 0 && len(nextKids) == 0 {
		return
	}

	if len(nextKids) == 0 {
		for _, kid := range prevKids {
			diffNode(ctx, kid, nil, parentID)
		}
		return
	}

	if len(prevKids) == 0 {
		for _, kid := range nextKids {
			diffNode(ctx, nil, kid, parentID)
		}
		return
	}

	hasKeys := false
	for _, kid := range nextKids {
		if kid.GetKey() != "" {
			hasKeys = true
			break
		}
	}

	if hasKeys {
		diffKeyedChildren(ctx, parentID, prevKids, nextKids)
	} else {
		diffUnkeyedChildren(ctx, parentID, prevKids, nextKids)
	}
}

// diffUnkeyedChildren performs simple index-based diffing.
func diffUnkeyedChildren(ctx *diffContext, parentID uint32, prevKids, nextKids []*Node) {
	minLen := len(prevKids)
	if len(nextKids) < minLen {
		minLen = len(nextKids)
	}

	for i := 0; i < minLen; i++ {
		diffNode(ctx, prevKids[i], nextKids[i], parentID)
	}
	for i := minLen; i < len(prevKids); i++ {
		diffNode(ctx, prevKids[i], nil, parentID)
	}
	for i := minLen; i < len(nextKids); i++ {
		diffNode(ctx, nil, nextKids[i], parentID)
	}
}

// diffKeyedChildren performs keyed reconciliation for list updates.
func diffKeyedChildren(ctx *diffContext, parentID uint32, prevKids, nextKids []*Node) {
	prevKeyed := make(map[string]int)
	for i, kid := range prevKids {
		if key := kid.GetKey(); key != "" {
			prevKeyed[key] = i
		}
	}

	matched := make([]bool, len(prevKids))

	var moves []struct {
		nodeID   uint32
		newIndex int
	}

	for nextIdx, nextKid := range nextKids {
		key := nextKid.GetKey()

		if key != "" {
			if prevIdx, found := prevKeyed[key]; found {
				matched[prevIdx] = true
				nodeID := ctx.getNodeID(prevKids[prevIdx])
				diffNode(ctx, prevKids[prevIdx], nextKid, parentID)
				if prevIdx != nextIdx {
					moves = append(moves, struct {
						nodeID   uint32
						newIndex int
					}{nodeID, nextIdx})
				}
			} else {
				diffNode(ctx, nil, nextKid, parentID)
			}
		} else {
			if nextIdx < len(prevKids) && prevKids[nextIdx].GetKey() == "" && !matched[nextIdx] {
				matched[nextIdx] = true
				diffNode(ctx, prevKids[nextIdx], nextKid, parentID)
			} else {
				diffNode(ctx, nil, nextKid, parentID)
			}
		}
	}

	for i, wasMatched := range matched {
		if !wasMatched {
			diffNode(ctx, prevKids[i], nil, parentID)
		}
	}

	for _, move := range moves {
		var beforeID uint32
		if move.newIndex+1 < len(nextKids) {
			beforeID = ctx.getNodeID(nextKids[move.newIndex+1])
		}
		ctx.addPatch(Patch{
			Op:       OpMoveNode,
			NodeID:   move.nodeID,
			ParentID: parentID,
			BeforeID: beforeID,
		})
	}
}

func propsEqual(a, b any) bool {
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

func propToString(v any) string {
	return fmt.Sprintf("%v", v)
}
