// Package tree rebuilds the process forest from a snapshot's flat
// parent and children pids.
package tree

import (
	"github.com/ja7ad/taskman/pkg/model"
	"github.com/ja7ad/taskman/pkg/snapshot"
)

// Node is one process and its children.
type Node struct {
	Sample   model.ProcessSample
	Children []*Node
}

// Build returns the forest of view. Pass the exact view being displayed:
// a sample whose parent is not in view is a root, so filtering out a
// parent promotes its children.
//
// Children follow the kernel children list first, then any sample naming
// the node as parent that the list missed, in pid order. Listed pids that
// are absent from view, or whose own parent pid disagrees, are skipped.
// Samples unreachable from a root (a parent cycle after pid reuse) become
// roots. Every sample appears exactly once.
func Build(view *snapshot.ProcessSnapshot) []*Node {
	b := &builder{
		view:     view,
		visited:  make(map[uint32]bool, view.Len()),
		byParent: make(map[uint32][]uint32),
	}
	for pid, p := range view.All() {
		if p.ParentPID != pid {
			b.byParent[p.ParentPID] = append(b.byParent[p.ParentPID], pid)
		}
	}

	var roots []*Node
	for _, p := range view.All() {
		if p.IsRoot() || !view.Has(p.ParentPID) {
			roots = append(roots, b.node(p))
		}
	}
	for pid, p := range view.All() {
		if !b.visited[pid] {
			roots = append(roots, b.node(p))
		}
	}
	return roots
}

type builder struct {
	view     *snapshot.ProcessSnapshot
	visited  map[uint32]bool
	byParent map[uint32][]uint32
}

func (b *builder) node(p model.ProcessSample) *Node {
	b.visited[p.PID] = true
	n := &Node{Sample: p}
	attach := func(pid uint32) {
		if b.visited[pid] {
			return
		}
		c, ok := b.view.Get(pid)
		if !ok || c.ParentPID != p.PID || c.IsRoot() {
			return
		}
		n.Children = append(n.Children, b.node(c))
	}
	for _, pid := range p.ChildrenPIDs {
		attach(pid)
	}
	for _, pid := range b.byParent[p.PID] {
		attach(pid)
	}
	return n
}

// Walk visits the forest depth first, parents before children.
func Walk(forest []*Node, fn func(n *Node, depth int)) {
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		fn(n, depth)
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	for _, n := range forest {
		walk(n, 0)
	}
}

// Row is one line of a flattened forest.
type Row struct {
	Depth  int
	Sample model.ProcessSample
}

// Flatten lists the forest in Walk order.
func Flatten(forest []*Node) []Row {
	var rows []Row
	Walk(forest, func(n *Node, depth int) {
		rows = append(rows, Row{Depth: depth, Sample: n.Sample})
	})
	return rows
}
