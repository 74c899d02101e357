package engine

import (
	"github.com/go-drift/immediate/pkg/errors"
	"github.com/go-drift/immediate/pkg/geometry"
	"github.com/go-drift/immediate/pkg/node"
	"golang.org/x/image/math/f32"
	"gopkg.in/yaml.v3"
)

// TreeNode is a serializable view of one node and its subtree.
type TreeNode struct {
	Kind     string     `yaml:"kind"`
	Identity string     `yaml:"identity"`
	ID       string     `yaml:"id"`
	Size     SizeDump   `yaml:"size"`
	Offset   OffsetDump `yaml:"offset"`
	Focused  bool       `yaml:"focused,omitempty"`
	Children []TreeNode `yaml:"children,omitempty"`
}

// SizeDump is the laid-out size of a node.
type SizeDump struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// OffsetDump is a node's origin in its parent's space.
type OffsetDump struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// Snapshot captures the tree from the root down.
type Snapshot struct {
	Stats Stats    `yaml:"stats"`
	Root  TreeNode `yaml:"root"`
}

// Snapshot returns the current tree with the last frame's statistics.
func (in *Interface) Snapshot() Snapshot {
	return Snapshot{Stats: in.last, Root: in.treeNode(in.root)}
}

// Dump returns Snapshot encoded as YAML.
func (in *Interface) Dump() ([]byte, error) {
	out, err := yaml.Marshal(in.Snapshot())
	if err != nil {
		return nil, &errors.FrameError{Op: "engine.Dump", Kind: errors.KindUnknown, Err: err}
	}
	return out, nil
}

func (in *Interface) treeNode(id node.ID) TreeNode {
	n := in.owner.Node(id)
	origin := geometry.Apply(n.Transform, f32.Vec3{0, 0, 0})
	tn := TreeNode{
		Kind:     n.Identity.Kind.String(),
		Identity: n.Identity.String(),
		ID:       id.String(),
		Size:     SizeDump{Width: n.Size.Width, Height: n.Size.Height},
		Offset:   OffsetDump{X: origin[0], Y: origin[1]},
		Focused:  in.owner.Services.Focus.Has(id),
	}
	if p, ok := n.Payload.(node.Parent); ok {
		for _, child := range p.ChildIDs() {
			tn.Children = append(tn.Children, in.treeNode(child))
		}
	}
	return tn
}
