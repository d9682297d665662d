package truss

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Model edit errors
var (
	ErrDuplicateID   = errors.New("duplicate id")
	ErrDuplicateNode = errors.New("a node already exists at these coordinates")
	ErrNodeNotFound  = errors.New("node not found")
	ErrMemberExists  = errors.New("member already exists")
	ErrMemberMissing = errors.New("member not found")
	ErrSameNode      = errors.New("member endpoints must be distinct nodes")
)

// DuplicatePolicy decides what AddNode does with a node placed exactly on an
// existing node's coordinates
type DuplicatePolicy int

const (
	DuplicateAllow  DuplicatePolicy = iota // store the coincident node
	DuplicateReject                        // fail with ErrDuplicateNode
	DuplicateMerge                         // keep the existing node, return its id
)

// ParseDuplicatePolicy accepts "allow", "reject" or "merge"
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch s {
	case "", "allow":
		return DuplicateAllow, nil
	case "reject":
		return DuplicateReject, nil
	case "merge":
		return DuplicateMerge, nil
	}
	return DuplicateAllow, fmt.Errorf("unknown duplicate node policy %q (want allow, reject or merge)", s)
}

func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateReject:
		return "reject"
	case DuplicateMerge:
		return "merge"
	}
	return "allow"
}

// State is the analysis state of a model
type State int

const (
	Unsolved State = iota
	Solved
)

func (s State) String() string {
	if s == Solved {
		return "solved"
	}
	return "unsolved"
}

// Truss owns the nodes and members of a structure.
// Entities are kept in id-indexed maps; the order slices make iteration
// deterministic (insertion order).
type Truss struct {
	Name       string
	Duplicates DuplicatePolicy

	nodes       map[string]*Node
	nodeOrder   []string
	members     map[string]*Member
	memberOrder []string

	numDisplacements int

	solution *Solution
}

// New creates an empty, unsolved truss
func New(name string) *Truss {
	return &Truss{
		Name:    name,
		nodes:   make(map[string]*Node),
		members: make(map[string]*Member),
	}
}

// State returns Solved when a solution is attached
func (t *Truss) State() State {
	if t.solution != nil {
		return Solved
	}
	return Unsolved
}

// Solution returns the attached solution, or nil when unsolved
func (t *Truss) Solution() *Solution {
	return t.solution
}

// Attach binds a solution to the model and annotates the load nodes with
// their share of the applied load
func (t *Truss) Attach(s *Solution) {
	t.invalidate()
	if s == nil {
		return
	}
	for id, load := range s.NodeLoads {
		if n, ok := t.nodes[id]; ok {
			n.Load = load
		}
	}
	t.solution = s
}

// invalidate is called by every mutator: the model returns to Unsolved and
// load annotations written by Attach are cleared
func (t *Truss) invalidate() {
	t.solution = nil
	for _, n := range t.nodes {
		n.Load = 0
	}
}

// NumNodes returns the number of nodes
func (t *Truss) NumNodes() int { return len(t.nodeOrder) }

// NumMembers returns the number of members
func (t *Truss) NumMembers() int { return len(t.memberOrder) }

// NumDisplacements returns the number of active support axes
func (t *Truss) NumDisplacements() int { return t.numDisplacements }

// AddNode stores a copy of n and returns the id under which the node is
// stored. With DuplicateMerge the id of an existing coincident node is
// returned instead and nothing changes.
func (t *Truss) AddNode(n Node) (string, error) {
	if n.ID == "" {
		return "", fmt.Errorf("node id must not be empty")
	}
	if !finite(n.X, n.Y) {
		return "", fmt.Errorf("node %s: coordinates must be finite", n.ID)
	}
	if _, ok := t.nodes[n.ID]; ok {
		return "", fmt.Errorf("node %s: %w", n.ID, ErrDuplicateID)
	}
	if existing, ok := t.NodeAt(n.X, n.Y); ok {
		switch t.Duplicates {
		case DuplicateReject:
			return "", fmt.Errorf("node %s at (%g, %g): %w", n.ID, n.X, n.Y, ErrDuplicateNode)
		case DuplicateMerge:
			return existing.ID, nil
		}
	}

	t.invalidate()
	n.Load = 0
	node := n
	t.nodes[n.ID] = &node
	t.nodeOrder = append(t.nodeOrder, n.ID)
	t.numDisplacements += n.Supports()
	return n.ID, nil
}

// RemoveNode deletes a node together with every member attached to it
func (t *Truss) RemoveNode(id string) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("node %s: %w", id, ErrNodeNotFound)
	}

	t.invalidate()

	// Members first, so no member ever references a missing node
	kept := t.memberOrder[:0]
	for _, mid := range t.memberOrder {
		if t.members[mid].Touches(id) {
			delete(t.members, mid)
			continue
		}
		kept = append(kept, mid)
	}
	t.memberOrder = kept

	t.numDisplacements -= n.Supports()
	delete(t.nodes, id)
	t.nodeOrder = removeID(t.nodeOrder, id)
	return nil
}

// MoveNode changes a node's coordinates
func (t *Truss) MoveNode(id string, x, y float64) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("node %s: %w", id, ErrNodeNotFound)
	}
	if !finite(x, y) {
		return fmt.Errorf("node %s: coordinates must be finite", id)
	}
	t.invalidate()
	n.X, n.Y = x, y
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// SetSupport switches the reaction along one axis of a node on or off
func (t *Truss) SetSupport(id string, axis Axis, on bool) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("node %s: %w", id, ErrNodeNotFound)
	}
	t.invalidate()

	t.numDisplacements -= n.Supports()
	if axis == AxisX {
		n.SupportX = on
	} else {
		n.SupportY = on
	}
	t.numDisplacements += n.Supports()
	return nil
}

// AddMember connects nodes a and b. An empty id is replaced by the next free
// integer id. The stored member is returned.
func (t *Truss) AddMember(id, a, b string) (Member, error) {
	if a == b {
		return Member{}, fmt.Errorf("member %s (%s-%s): %w", id, a, b, ErrSameNode)
	}
	for _, end := range []string{a, b} {
		if _, ok := t.nodes[end]; !ok {
			return Member{}, fmt.Errorf("member %s: node %s: %w", id, end, ErrNodeNotFound)
		}
	}
	if existing, ok := t.MemberBetween(a, b); ok {
		return Member{}, fmt.Errorf("member %s already connects %s-%s: %w", existing.ID, a, b, ErrMemberExists)
	}
	if id == "" {
		id = t.nextMemberID()
	}
	if _, ok := t.members[id]; ok {
		return Member{}, fmt.Errorf("member %s: %w", id, ErrDuplicateID)
	}

	t.invalidate()
	m := &Member{ID: id, A: a, B: b}
	t.members[id] = m
	t.memberOrder = append(t.memberOrder, id)
	return *m, nil
}

// RemoveMember deletes a member by id
func (t *Truss) RemoveMember(id string) error {
	if _, ok := t.members[id]; !ok {
		return fmt.Errorf("member %s: %w", id, ErrMemberMissing)
	}
	t.invalidate()
	delete(t.members, id)
	t.memberOrder = removeID(t.memberOrder, id)
	return nil
}

// Node looks up a node by id
func (t *Truss) Node(id string) (Node, bool) {
	n, ok := t.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// NodeAt finds a node placed exactly at (x, y)
func (t *Truss) NodeAt(x, y float64) (Node, bool) {
	for _, id := range t.nodeOrder {
		n := t.nodes[id]
		if n.X == x && n.Y == y {
			return *n, true
		}
	}
	return Node{}, false
}

// Member looks up a member by id
func (t *Truss) Member(id string) (Member, bool) {
	m, ok := t.members[id]
	if !ok {
		return Member{}, false
	}
	return *m, true
}

// MemberBetween finds the member joining a and b in either order
func (t *Truss) MemberBetween(a, b string) (Member, bool) {
	for _, id := range t.memberOrder {
		if m := t.members[id]; m.Connects(a, b) {
			return *m, true
		}
	}
	return Member{}, false
}

// Nodes returns copies of all nodes in insertion order
func (t *Truss) Nodes() []Node {
	out := make([]Node, 0, len(t.nodeOrder))
	for _, id := range t.nodeOrder {
		out = append(out, *t.nodes[id])
	}
	return out
}

// Members returns copies of all members in insertion order
func (t *Truss) Members() []Member {
	out := make([]Member, 0, len(t.memberOrder))
	for _, id := range t.memberOrder {
		out = append(out, *t.members[id])
	}
	return out
}

// Neighbors returns the nodes directly connected to the given node
func (t *Truss) Neighbors(id string) []Node {
	var out []Node
	for _, mid := range t.memberOrder {
		m := t.members[mid]
		if m.Touches(id) {
			out = append(out, *t.nodes[m.Other(id)])
		}
	}
	return out
}

// Degree returns the number of members attached to a node
func (t *Truss) Degree(id string) int {
	count := 0
	for _, mid := range t.memberOrder {
		if t.members[mid].Touches(id) {
			count++
		}
	}
	return count
}

// Length returns the distance between the member's endpoints
func (t *Truss) Length(m Member) float64 {
	a, b := t.nodes[m.A], t.nodes[m.B]
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Angle returns the member inclination from A towards B (radians)
func (t *Truss) Angle(m Member) float64 {
	a, b := t.nodes[m.A], t.nodes[m.B]
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// TotalLength sums the lengths of all members
func (t *Truss) TotalLength() float64 {
	var total float64
	for _, id := range t.memberOrder {
		total += t.Length(*t.members[id])
	}
	return total
}

// Clone returns an independent copy of the model. The attached solution, if
// any, is shared.
func (t *Truss) Clone() *Truss {
	c := New(t.Name)
	c.Duplicates = t.Duplicates
	for _, id := range t.nodeOrder {
		n := *t.nodes[id]
		c.nodes[id] = &n
	}
	c.nodeOrder = append([]string(nil), t.nodeOrder...)
	for _, id := range t.memberOrder {
		m := *t.members[id]
		c.members[id] = &m
	}
	c.memberOrder = append([]string(nil), t.memberOrder...)
	c.numDisplacements = t.numDisplacements
	c.solution = t.solution
	return c
}

// nextMemberID mirrors the editor's numbering: count + 1, skipping ids in use
func (t *Truss) nextMemberID() string {
	for i := len(t.memberOrder) + 1; ; i++ {
		id := strconv.Itoa(i)
		if _, ok := t.members[id]; !ok {
			return id
		}
	}
}

// NextNodeID returns the first free integer node id above the node count
func (t *Truss) NextNodeID() string {
	for i := len(t.nodeOrder) + 1; ; i++ {
		id := strconv.Itoa(i)
		if _, ok := t.nodes[id]; !ok {
			return id
		}
	}
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
