package menu

import "strings"

// Node represents a menu entry definition within the registry tree.
type Node struct {
	ID       string
	Item     Item
	Children []*Node
}

// Registry exposes lookup utilities for menu definitions.
type Registry struct {
	root  *Node
	nodes map[string]*Node
}

// BuildRegistry arranges items into a tree using their colon-separated ids.
// Children keep the order in which they appear in items. Items whose parent
// is missing hang off the root.
func BuildRegistry(items []Item) *Registry {
	root := &Node{ID: "root"}
	nodes := map[string]*Node{"root": root}
	for _, item := range items {
		if item.ID == "" || item.ID == "root" {
			continue
		}
		if _, dup := nodes[item.ID]; dup {
			continue
		}
		node := &Node{ID: item.ID, Item: item}
		nodes[item.ID] = node
		parentID, _ := parentKey(item.ID)
		parent, ok := nodes[parentID]
		if !ok {
			parent = root
		}
		parent.Children = append(parent.Children, node)
	}
	return &Registry{root: root, nodes: nodes}
}

// Root returns the registry root node.
func (r *Registry) Root() *Node {
	return r.root
}

// Find locates a node by ID.
func (r *Registry) Find(id string) (*Node, bool) {
	node, ok := r.nodes[id]
	return node, ok
}

// Child resolves a child node under the given parent for the provided key.
func (r *Registry) Child(parentID, key string) (*Node, bool) {
	parent, ok := r.nodes[parentID]
	if !ok {
		return nil, false
	}
	for _, child := range parent.Children {
		if _, k := parentKey(child.ID); k == key {
			return child, true
		}
	}
	return nil, false
}

func parentKey(id string) (string, string) {
	if id == "" {
		return "root", ""
	}
	if !strings.Contains(id, ":") {
		return "root", id
	}
	idx := strings.LastIndex(id, ":")
	return id[:idx], id[idx+1:]
}
