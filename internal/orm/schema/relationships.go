package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-openapi/inflect"
)

// tableGraph is the adjacency structure over the tables of a dictionary.
// Nodes are addressed by their index in the sorted table list.
type tableGraph struct {
	nodes []*Table
	index map[string]int

	// generalization and composition edges: table -> tables it depends on
	deps       [][]int
	dependents [][]int

	// generalization, composition and range edges for reachability
	precursors [][]int
	successors [][]int
}

func newTableGraph(dict *Dictionary) *tableGraph {
	g := &tableGraph{
		nodes: dict.Tables(),
		index: make(map[string]int, len(dict.tables)),
	}
	for i, table := range g.nodes {
		g.index[table.Name] = i
	}

	n := len(g.nodes)
	g.deps = make([][]int, n)
	g.dependents = make([][]int, n)
	g.precursors = make([][]int, n)
	g.successors = make([][]int, n)

	// Nodes are visited in name order so that every adjacency list is
	// sorted by name as well
	for i, table := range g.nodes {
		for _, ref := range table.References {
			target, exists := g.index[ref.Target]
			if !exists {
				continue
			}
			switch ref.Kind {
			case RefGeneralization, RefComposition:
				g.deps[i] = appendUnique(g.deps[i], target)
				g.precursors[i] = appendUnique(g.precursors[i], target)
			case RefRange:
				g.precursors[i] = appendUnique(g.precursors[i], target)
			}
		}
	}
	for i := range g.nodes {
		for _, target := range g.deps[i] {
			g.dependents[target] = append(g.dependents[target], i)
		}
		for _, target := range g.precursors[i] {
			g.successors[target] = append(g.successors[target], i)
		}
	}

	return g
}

func appendUnique(list []int, v int) []int {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}

// TopologicalSequence returns all table names so that every table follows
// the tables it specializes or is composed of. The initial ready set is
// sorted by namespace and name; tables that become ready later are appended
// in the order they are discovered.
func (d *Dictionary) TopologicalSequence() ([]string, error) {
	return d.graph.topologicalSort(d.name)
}

func (g *tableGraph) topologicalSort(dictionary string) ([]string, error) {
	n := len(g.nodes)
	pending := make([]int, n)
	queue := make([]int, 0, n)
	for i := range g.nodes {
		pending[i] = len(g.deps[i])
		if pending[i] == 0 {
			queue = append(queue, i)
		}
	}

	sort.SliceStable(queue, func(a, b int) bool {
		ta, tb := g.nodes[queue[a]], g.nodes[queue[b]]
		if ta.Namespace != tb.Namespace {
			return ta.Namespace < tb.Namespace
		}
		return ta.Name < tb.Name
	})

	result := make([]string, 0, n)
	for head := 0; head < len(queue); head++ {
		node := queue[head]
		result = append(result, g.nodes[node].Name)

		for _, dependent := range g.dependents[node] {
			pending[dependent]--
			if pending[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(result) != n {
		detail := "unresolved tables: " + strings.Join(g.unresolved(pending), ", ")
		if cycles := g.DetectCycles(); len(cycles) > 0 {
			detail = formatCycles(cycles)
		}
		return nil, newError(ErrCycleDetected, dictionary, "table", g.nodes[g.firstPending(pending)].Name, detail)
	}

	return result, nil
}

func (g *tableGraph) unresolved(pending []int) []string {
	var names []string
	for i, p := range pending {
		if p > 0 {
			names = append(names, g.nodes[i].Name)
		}
	}
	return names
}

func (g *tableGraph) firstPending(pending []int) int {
	for i, p := range pending {
		if p > 0 {
			return i
		}
	}
	return 0
}

// DetectCycles returns every cycle closed by a back edge over
// generalization and composition edges
func (g *tableGraph) DetectCycles() [][]string {
	var cycles [][]string
	visited := make([]bool, len(g.nodes))
	onStack := make([]bool, len(g.nodes))

	var dfs func(node int, path []int)
	dfs = func(node int, path []int) {
		visited[node] = true
		onStack[node] = true
		path = append(path, node)

		for _, neighbor := range g.deps[node] {
			if !visited[neighbor] {
				dfs(neighbor, path)
				continue
			}
			if !onStack[neighbor] {
				continue
			}
			for i, n := range path {
				if n == neighbor {
					cycle := make([]string, 0, len(path)-i)
					for _, c := range path[i:] {
						cycle = append(cycle, g.nodes[c].Name)
					}
					cycles = append(cycles, cycle)
					break
				}
			}
		}

		onStack[node] = false
	}

	for node := range g.nodes {
		if !visited[node] {
			dfs(node, nil)
		}
	}

	return cycles
}

// formatCycles formats cycle information for error messages
func formatCycles(cycles [][]string) string {
	var b strings.Builder
	for i, cycle := range cycles {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(strings.Join(cycle, " -> "))
		b.WriteString(" -> ")
		b.WriteString(cycle[0])
	}
	return b.String()
}

// reach collects the nodes reachable from start. The visited set keeps the
// walk finite on cyclic graphs; start itself is only reported when an edge
// leads back to it.
func (g *tableGraph) reach(start int, adjacency [][]int, transitive bool) []string {
	visited := make([]bool, len(g.nodes))
	stack := append([]int(nil), adjacency[start]...)
	var names []string

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[node] {
			continue
		}
		visited[node] = true
		names = append(names, g.nodes[node].Name)
		if transitive {
			stack = append(stack, adjacency[node]...)
		}
	}

	sort.Strings(names)
	return names
}

func (d *Dictionary) nodeOf(table *Table) (int, error) {
	if table == nil {
		return 0, NotFound(d.name, "table", "<nil>")
	}
	node, exists := d.graph.index[table.Name]
	if !exists || table.dictionary != d.name {
		return 0, NotFound(d.name, "table", table.Name)
	}
	return node, nil
}

// GetPrecursors returns the names of the tables the given table references
// through generalization, composition or range edges, optionally closed
// transitively
func (d *Dictionary) GetPrecursors(table *Table, transitive bool) ([]string, error) {
	node, err := d.nodeOf(table)
	if err != nil {
		return nil, err
	}
	return d.graph.reach(node, d.graph.precursors, transitive), nil
}

// GetSuccessors returns the names of the tables that reference the given
// table through generalization, composition or range edges, optionally
// closed transitively
func (d *Dictionary) GetSuccessors(table *Table, transitive bool) ([]string, error) {
	node, err := d.nodeOf(table)
	if err != nil {
		return nil, err
	}
	return d.graph.reach(node, d.graph.successors, transitive), nil
}

// GetDependencies returns the direct generalization/composition
// dependencies of a table
func (d *Dictionary) GetDependencies(table *Table) ([]string, error) {
	node, err := d.nodeOf(table)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(d.graph.deps[node]))
	for _, dep := range d.graph.deps[node] {
		names = append(names, d.graph.nodes[dep].Name)
	}
	return names, nil
}

// GetParents resolves the targets of the table's references of the given kind
func (d *Dictionary) GetParents(table *Table, kind ReferenceKind) ([]*Table, error) {
	var parents []*Table
	for _, ref := range table.References {
		if ref.Kind != kind {
			continue
		}
		parent, err := d.FindTable(ref.Target)
		if err != nil {
			return nil, fmt.Errorf("reference %s.%s: %w", table.Name, ref.Name, err)
		}
		parents = append(parents, parent)
	}
	return parents, nil
}

// ContainerKind is the shape of the collection holding composed rows
type ContainerKind int

const (
	// ContainerValue holds a single composed value per owner
	ContainerValue ContainerKind = iota
	// ContainerMap holds composed values keyed by the residual key
	ContainerMap
)

// String returns the string representation of the container kind
func (c ContainerKind) String() string {
	if c == ContainerMap {
		return "map"
	}
	return "value"
}

// PartOf describes a table that references the inspected table, together
// with the container derived from its residual primary key
type PartOf struct {
	Table     *Table
	Reference *Reference
	Residual  []*Attribute

	Container ContainerKind
	KeyType   string
	ValueType string
	Variable  string
}

// TypeName returns the generated container type
func (p PartOf) TypeName() string {
	if p.Container == ContainerMap {
		return fmt.Sprintf("map<%s, %s>", p.KeyType, p.ValueType)
	}
	return p.ValueType
}

// GetPartOfs finds the tables holding a reference of the given kind to
// table. Residual keys with more than one attribute are not supported and
// fail with ErrNotImplemented.
func (d *Dictionary) GetPartOfs(table *Table, kind ReferenceKind) ([]PartOf, error) {
	var parts []PartOf

	for _, other := range d.Tables() {
		if other.Name == table.Name {
			continue
		}
		for _, ref := range other.References {
			if ref.Kind != kind || ref.Target != table.Name {
				continue
			}

			residual := residualKey(other, ref)
			valueType := other.SourceName
			if valueType == "" {
				valueType = other.Name
			}

			part := PartOf{
				Table:     other,
				Reference: ref,
				Residual:  residual,
				ValueType: valueType,
			}

			switch len(residual) {
			case 0:
				part.Container = ContainerValue
				part.Variable = inflect.CamelizeDownFirst(valueType)
			case 1:
				dt, err := d.FindDataType(residual[0].Datatype)
				if err != nil {
					return nil, err
				}
				part.Container = ContainerMap
				part.KeyType = dt.SourceType
				part.Variable = inflect.CamelizeDownFirst(inflect.Pluralize(valueType))
			default:
				return nil, newError(ErrNotImplemented, d.name, "reference", ref.Name,
					fmt.Sprintf("table %s: residual key with %d attributes", other.Name, len(residual)))
			}

			parts = append(parts, part)
		}
	}

	return parts, nil
}

// residualKey returns the primary attributes of table that are not the own
// side of a key pair of ref
func residualKey(table *Table, ref *Reference) []*Attribute {
	joined := make(map[int]bool, len(ref.Keys))
	for _, key := range ref.Keys {
		joined[key.Own] = true
	}

	var residual []*Attribute
	for _, attr := range table.PrimaryKey() {
		if !joined[attr.ID] {
			residual = append(residual, attr)
		}
	}
	return residual
}

// ProcessingItem pairs an attribute with its resolved datatype
type ProcessingItem struct {
	Attribute *Attribute
	Datatype  *Datatype
}

// GetProcessingData zips the table's attributes with their datatypes
func (d *Dictionary) GetProcessingData(table *Table) ([]ProcessingItem, error) {
	items := make([]ProcessingItem, 0, len(table.Attributes))
	for _, attr := range table.Attributes {
		dt, err := d.FindDataType(attr.Datatype)
		if err != nil {
			return nil, fmt.Errorf("attribute %s.%s: %w", table.Name, attr.Name, err)
		}
		items = append(items, ProcessingItem{Attribute: attr, Datatype: dt})
	}
	return items, nil
}

// DependencyReport contains the results of dependency analysis
type DependencyReport struct {
	TotalTables      int
	Dependencies     map[string][]string // table -> direct dependencies
	Dependents       map[string][]string // table -> tables that depend on it
	CircularDeps     [][]string
	HasCycles        bool
	TopologicalOrder []string
}

// AnalyzeDependencies returns a dependency analysis report
func (d *Dictionary) AnalyzeDependencies() *DependencyReport {
	report := &DependencyReport{
		TotalTables:  len(d.graph.nodes),
		Dependencies: make(map[string][]string),
		Dependents:   make(map[string][]string),
	}

	for i, table := range d.graph.nodes {
		deps := make([]string, 0, len(d.graph.deps[i]))
		for _, dep := range d.graph.deps[i] {
			deps = append(deps, d.graph.nodes[dep].Name)
		}
		report.Dependencies[table.Name] = deps

		dependents := make([]string, 0, len(d.graph.dependents[i]))
		for _, dep := range d.graph.dependents[i] {
			dependents = append(dependents, d.graph.nodes[dep].Name)
		}
		report.Dependents[table.Name] = dependents
	}

	if cycles := d.graph.DetectCycles(); len(cycles) > 0 {
		report.CircularDeps = cycles
		report.HasCycles = true
	}

	if order, err := d.TopologicalSequence(); err == nil {
		report.TopologicalOrder = order
	}

	return report
}

// String formats the dependency report
func (r *DependencyReport) String() string {
	var b strings.Builder

	b.WriteString("Dependency Analysis Report\n")
	b.WriteString(fmt.Sprintf("Total Tables: %d\n\n", r.TotalTables))

	if r.HasCycles {
		b.WriteString("ERRORS:\n")
		b.WriteString("Circular dependencies detected:\n  ")
		b.WriteString(formatCycles(r.CircularDeps))
		b.WriteString("\n\n")
	}

	if len(r.TopologicalOrder) > 0 {
		b.WriteString("Dependency Order (safe creation order):\n")
		for i, table := range r.TopologicalOrder {
			deps := r.Dependencies[table]
			if len(deps) > 0 {
				b.WriteString(fmt.Sprintf("  %d. %s (depends on: %s)\n",
					i+1, table, strings.Join(deps, ", ")))
			} else {
				b.WriteString(fmt.Sprintf("  %d. %s (no dependencies)\n", i+1, table))
			}
		}
	}

	return b.String()
}
