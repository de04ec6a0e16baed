package internal

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// WriteDOT renders the dependency graph reachable from roots as Graphviz
// DOT. Node identifiers are normalized to visit order, so output depends
// only on graph shape and creation order, not on process-global ids.
func WriteDOT(w io.Writer, roots ...*ReactiveNode) error {
	index := make(map[*ReactiveNode]int)
	var order []*ReactiveNode
	var queue []*ReactiveNode

	add := func(n *ReactiveNode) {
		if n == nil {
			return
		}
		if _, ok := index[n]; ok {
			return
		}
		index[n] = len(order)
		order = append(order, n)
		queue = append(queue, n)
	}

	for _, root := range roots {
		add(root)
	}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		for _, d := range n.deps {
			add(d.producer)
		}
		for _, sub := range n.sortedSubs() {
			add(sub.node())
		}
	}

	var b strings.Builder
	fmt.Fprintln(&b, "digraph pulse {")

	for i, n := range order {
		fmt.Fprintf(&b, "  n%d [label=%q shape=%s];\n", i, dumpLabel(n), dumpShape(n.kind))
	}

	seen := make(map[[2]int]bool)
	for _, n := range order {
		to := index[n]
		for _, d := range n.deps {
			from, ok := index[d.producer]
			if !ok || seen[[2]int{from, to}] {
				continue
			}
			seen[[2]int{from, to}] = true
			fmt.Fprintf(&b, "  n%d -> n%d;\n", from, to)
		}
	}

	fmt.Fprintln(&b, "}")

	_, err := io.WriteString(w, b.String())
	return err
}

func (n *ReactiveNode) sortedSubs() []consumer {
	n.subMu.Lock()
	subs := make([]consumer, 0, len(n.subs))
	for _, sub := range n.subs {
		subs = append(subs, sub)
	}
	n.subMu.Unlock()

	sort.Slice(subs, func(i, j int) bool {
		return subs[i].node().id < subs[j].node().id
	})

	return subs
}

func dumpLabel(n *ReactiveNode) string {
	if n.name != "" {
		return n.name
	}
	return n.kind.String()
}

func dumpShape(k NodeKind) string {
	switch k {
	case KindSignal:
		return "box"
	case KindEffect:
		return "diamond"
	}
	return "ellipse"
}
