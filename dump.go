package pulse

import (
	"io"

	"github.com/pulsekit/pulse/internal"
)

// GraphNode is any reactive node that can seed a WriteDOT traversal. Only
// types in this package implement it.
type GraphNode interface {
	reactiveNode() *internal.ReactiveNode
}

func (s *Signal[T]) reactiveNode() *internal.ReactiveNode { return s.signal.Node() }

func (s *ReadonlySignal[T]) reactiveNode() *internal.ReactiveNode { return s.signal.Node() }

func (c *Computed[T]) reactiveNode() *internal.ReactiveNode { return c.computed.Node() }

func (e *Effect) reactiveNode() *internal.ReactiveNode { return e.effect.Node() }

// WriteDOT renders the dependency graph reachable from roots as Graphviz
// DOT. Output is deterministic for a given graph shape, so it can be
// diffed or golden-tested.
func WriteDOT(w io.Writer, roots ...GraphNode) error {
	nodes := make([]*internal.ReactiveNode, len(roots))
	for i, root := range roots {
		nodes[i] = root.reactiveNode()
	}

	return internal.WriteDOT(w, nodes...)
}
