package gridplot

// A ShareLevel tells how aggressively two axes with matching spans share
// one dimension. Each level is a strict superset of the one below it.
type ShareLevel int

const (
	// ShareNone disables sharing.
	ShareNone ShareLevel = iota
	// ShareLabels draws the axis label only on the sharing base; tick
	// labels stay visible everywhere.
	ShareLabels
	// ShareLimits additionally forces equal limits on all group members.
	ShareLimits
	// ShareAll additionally hides tick labels on non-base axes.
	ShareAll
)

// A SharingRelation is a directed edge from a dependent axis to its
// sharing base for one dimension. Relations are created once during
// figure assembly and never mutated afterwards.
type SharingRelation struct {
	Base  int // arena index of the base axis
	Level ShareLevel
}

// shareGroup is one set of main-axes arena indices with exactly matching
// spans, plus the elected base.
type shareGroup struct {
	members []int
	base    int
}

// detectShareGroups clusters axes whose span in the shared dimension
// matches exactly. The base of each group is the member reaching
// furthest along the cross dimension: the bottom-most axis for x groups,
// the left-most for y groups, so shared tick labels converge toward the
// figure edge.
func detectShareGroups(axes []*Axis, forX bool) []shareGroup {
	span := func(ax *Axis) [2]int {
		if forX {
			return ax.colSpan
		}
		return ax.rowSpan
	}
	cross := func(ax *Axis) int {
		if forX {
			return ax.rowSpan[1] // larger = lower in the grid
		}
		return -ax.colSpan[0] // larger = further left
	}

	grouped := map[int]bool{}
	var groups []shareGroup
	for _, ax := range axes {
		if grouped[ax.index] {
			continue
		}
		g := shareGroup{base: ax.index}
		for _, other := range axes {
			if span(other) == span(ax) {
				g.members = append(g.members, other.index)
				grouped[other.index] = true
				if cross(other) > cross(ax.fig.at(g.base)) {
					g.base = other.index
				}
			}
		}
		if len(g.members) > 1 {
			groups = append(groups, g)
		}
	}
	return groups
}

// wireSharing creates the SharingRelations for one dimension at the
// given level and applies their immediate consequences: label
// suppression at ShareLabels and above, limit locking at ShareLimits and
// above, tick label hiding at ShareAll.
func wireSharing(fig *Figure, axes []*Axis, forX bool, level ShareLevel) {
	if level == ShareNone {
		return
	}
	for _, g := range detectShareGroups(axes, forX) {
		for _, idx := range g.members {
			if idx == g.base {
				continue
			}
			dep := fig.at(idx)
			rel := &SharingRelation{Base: g.base, Level: level}
			if forX {
				dep.shareX = rel
				dep.ShowXLabel = false
				if level >= ShareLimits {
					dep.XLim = fig.at(g.base).XLim
				}
				if level >= ShareAll {
					dep.ShowXTicks = false
				}
			} else {
				dep.shareY = rel
				dep.ShowYLabel = false
				if level >= ShareLimits {
					dep.YLim = fig.at(g.base).YLim
				}
				if level >= ShareAll {
					dep.ShowYTicks = false
				}
			}
		}
	}
}

// sharePanels wires the default panel/main sharing: bottom and top
// panels follow the main x axis, left and right panels the main y axis,
// both at full level. Colorbar-kind panels opt out during construction.
func sharePanels(fig *Figure, main *Axis) {
	for side, idx := range main.panels {
		pnl := fig.at(idx)
		if pnl == nil {
			continue
		}
		switch Side(side) {
		case SideBottom, SideTop:
			pnl.shareX = &SharingRelation{Base: main.index, Level: ShareAll}
			pnl.ShowXLabel = false
			pnl.ShowXTicks = false
			pnl.XLim = main.XLim
		case SideLeft, SideRight:
			pnl.shareY = &SharingRelation{Base: main.index, Level: ShareAll}
			pnl.ShowYLabel = false
			pnl.ShowYTicks = false
			pnl.YLim = main.YLim
		}
	}
}
