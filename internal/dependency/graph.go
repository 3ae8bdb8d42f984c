package dependency

import (
	"fmt"
	"sort"
	"strings"
)

// NodeID is the unique identifier for a node inside a dependency graph.
// For the container it is the service id or alias name.
type NodeID string

// NodeKind categorises nodes.
type NodeKind int

const (
	KindUnknown NodeKind = iota
	KindDefinition
	KindAlias
)

// Node represents a service definition or alias together with the ids it
// depends on.
type Node struct {
	ID        NodeID
	Kind      NodeKind
	DependsOn []NodeID
}

// CycleError reports a circular reference. Path starts and ends with the same
// node.
type CycleError struct {
	Path []NodeID
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Path))
	for i, id := range e.Path {
		parts[i] = string(id)
	}
	return fmt.Sprintf("circular reference detected: %s", strings.Join(parts, " -> "))
}

// Graph is a very small helper to answer dependency queries. It is *not*
// thread-safe by itself; callers must synchronise if they write concurrently.
type Graph struct {
	nodes map[NodeID]*Node
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[NodeID]*Node)}
}

// AddNode adds (or replaces) a node in the graph.
func (g *Graph) AddNode(n Node) {
	if g.nodes == nil {
		g.nodes = make(map[NodeID]*Node)
	}
	// Copy to avoid external mutations
	copied := n
	copied.DependsOn = append([]NodeID(nil), n.DependsOn...)
	g.nodes[n.ID] = &copied
}

// Get returns a pointer to the stored node or nil if it does not exist.
func (g *Graph) Get(id NodeID) *Node {
	return g.nodes[id]
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Dependencies returns a slice of immediate dependency IDs for the given node.
func (g *Graph) Dependencies(id NodeID) []NodeID {
	if n, ok := g.nodes[id]; ok {
		depsCopy := make([]NodeID, len(n.DependsOn))
		copy(depsCopy, n.DependsOn)
		return depsCopy
	}
	return nil
}

// Dependents returns all node IDs that have a direct dependency on the given
// node, sorted for stable output.
func (g *Graph) Dependents(id NodeID) []NodeID {
	var res []NodeID
	for _, n := range g.nodes {
		for _, dep := range n.DependsOn {
			if dep == id {
				res = append(res, n.ID)
				break
			}
		}
	}
	sortIDs(res)
	return res
}

// Missing returns, per node, the dependencies that are not part of the graph.
// Nodes without missing dependencies are omitted.
func (g *Graph) Missing() map[NodeID][]NodeID {
	missing := make(map[NodeID][]NodeID)
	for _, n := range g.nodes {
		for _, dep := range n.DependsOn {
			if _, ok := g.nodes[dep]; !ok {
				missing[n.ID] = append(missing[n.ID], dep)
			}
		}
	}
	return missing
}

// Sort returns the node ids in dependency order: every node appears after the
// nodes it depends on. Ties are broken by id so the order is deterministic.
// Dependencies that are not part of the graph are skipped. A *CycleError is
// returned when the graph is not acyclic.
func (g *Graph) Sort() ([]NodeID, error) {
	const (
		unvisited = iota
		visiting
		done
	)

	ids := make([]NodeID, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sortIDs(ids)

	marks := make(map[NodeID]int, len(g.nodes))
	order := make([]NodeID, 0, len(g.nodes))
	var stack []NodeID

	var visit func(id NodeID) error
	visit = func(id NodeID) error {
		switch marks[id] {
		case done:
			return nil
		case visiting:
			start := 0
			for i, s := range stack {
				if s == id {
					start = i
					break
				}
			}
			path := append(append([]NodeID(nil), stack[start:]...), id)
			return &CycleError{Path: path}
		}

		marks[id] = visiting
		stack = append(stack, id)

		deps := append([]NodeID(nil), g.nodes[id].DependsOn...)
		sortIDs(deps)
		for _, dep := range deps {
			if _, ok := g.nodes[dep]; !ok {
				continue
			}
			if err := visit(dep); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		marks[id] = done
		order = append(order, id)
		return nil
	}

	for _, id := range ids {
		if err := visit(id); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func sortIDs(ids []NodeID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
