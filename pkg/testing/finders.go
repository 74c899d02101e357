package testing

import (
	"fmt"

	"github.com/go-drift/immediate/pkg/core"
	"github.com/go-drift/immediate/pkg/identity"
	"github.com/go-drift/immediate/pkg/node"
)

// Finder locates nodes in the tree.
type Finder interface {
	// Evaluate returns all matching nodes under root in pre-order.
	Evaluate(o *core.Owner, root node.ID) []node.ID
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	nodes  []node.ID
	finder Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() node.ID {
	if len(r.nodes) == 0 {
		panic(fmt.Sprintf("finder found no nodes: %s", r.description()))
	}
	return r.nodes[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) node.ID {
	if index < 0 || index >= len(r.nodes) {
		panic(fmt.Sprintf("finder index %d out of range (found %d): %s", index, len(r.nodes), r.description()))
	}
	return r.nodes[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []node.ID {
	return r.nodes
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.nodes)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.nodes) > 0
}

func (r FinderResult) description() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// ByKind finds nodes whose identity has the given kind.
func ByKind(kind identity.Kind) Finder {
	return predicateFinder{
		desc: "kind " + kind.String(),
		match: func(n *node.Node) bool {
			return n.Identity.Kind == kind
		},
	}
}

// ByIdentity finds the node with the given identity.
func ByIdentity(id identity.Identity) Finder {
	return predicateFinder{
		desc: "identity " + id.String(),
		match: func(n *node.Node) bool {
			return n.Identity == id
		},
	}
}

// ByPredicate finds nodes for which match returns true.
func ByPredicate(desc string, match func(n *node.Node) bool) Finder {
	return predicateFinder{desc: desc, match: match}
}

type predicateFinder struct {
	desc  string
	match func(n *node.Node) bool
}

func (f predicateFinder) Evaluate(o *core.Owner, root node.ID) []node.ID {
	var out []node.ID
	o.Arena().Walk(root, func(id node.ID, n *node.Node) bool {
		if f.match(n) {
			out = append(out, id)
		}
		return true
	})
	return out
}

func (f predicateFinder) Description() string {
	return f.desc
}
