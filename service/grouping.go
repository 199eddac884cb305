package service

// Grouping is a compact ragged partition: a sorted array of group-start
// offsets plus a flat member arena. Group i spans members[offsets[i]:
// offsets[i+1]]; empty groups are legal. The layout gives O(1) random
// access to any group's extent without nested dynamic lists.
type Grouping struct {
	offsets []int
	members []int
}

// NewGrouping builds a Grouping from explicit index groups. The member
// arena preserves the given order within and across groups.
func NewGrouping(groups [][]int) *Grouping {
	g := &Grouping{offsets: make([]int, 1, len(groups)+1)}
	for _, grp := range groups {
		g.members = append(g.members, grp...)
		g.offsets = append(g.offsets, len(g.members))
	}
	return g
}

// Groups reports the number of groups, empty ones included.
func (g *Grouping) Groups() int { return len(g.offsets) - 1 }

// Len reports the total member count across all groups.
func (g *Grouping) Len() int { return len(g.members) }

// Group returns the member indices of group i as a view into the arena.
// Callers must treat the returned slice as read-only.
func (g *Grouping) Group(i int) []int {
	return g.members[g.offsets[i]:g.offsets[i+1]]
}

// GroupLen reports the size of group i without materializing it.
func (g *Grouping) GroupLen(i int) int {
	return g.offsets[i+1] - g.offsets[i]
}

// offset returns the arena start of group i; offset(Groups()) is the arena end.
func (g *Grouping) offset(i int) int { return g.offsets[i] }
