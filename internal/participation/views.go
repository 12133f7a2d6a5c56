package participation

import (
	"strings"

	"collabcore/internal/model"
)

// Filter narrows the participation list. Zero values mean no filtering.
type Filter struct {
	PhaseID string `json:"phaseId" query:"phaseId"`
	Query   string `json:"q" query:"q"`
}

// Group is one phase and the participations assigned to it.
type Group struct {
	Phase          model.Phase           `json:"phase"`
	Participations []model.Participation `json:"participations"`
}

// Grouped is the grouped-by-phase view. Unassigned holds participations in no known phase.
type Grouped struct {
	Groups     []Group               `json:"groups"`
	Unassigned []model.Participation `json:"unassigned"`
}

// ByPhase keeps participations assigned to phaseID. An empty phaseID keeps everything.
func ByPhase(list []model.Participation, phaseID string) []model.Participation {
	if phaseID == "" {
		return list
	}
	out := make([]model.Participation, 0, len(list))
	for _, p := range list {
		if p.InPhase(phaseID) {
			out = append(out, p)
		}
	}
	return out
}

// Search keeps participations whose user name, user email or venture name contains query,
// case-insensitively. A blank query keeps everything.
func Search(list []model.Participation, query string) []model.Participation {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return list
	}
	out := make([]model.Participation, 0, len(list))
	for _, p := range list {
		if matches(p, q) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p model.Participation, q string) bool {
	if strings.Contains(strings.ToLower(p.User.Name), q) || strings.Contains(strings.ToLower(p.User.Email), q) {
		return true
	}
	return p.Venture != nil && strings.Contains(strings.ToLower(p.Venture.Name), q)
}

// Apply runs the phase scope then the search.
func Apply(list []model.Participation, f Filter) []model.Participation {
	return Search(ByPhase(list, f.PhaseID), f.Query)
}

// Paginate returns the 1-indexed page of list. Pages out of range are empty.
func Paginate[T any](list []T, page, pageSize int) []T {
	if page < 1 || pageSize < 1 {
		return []T{}
	}
	start := (page - 1) * pageSize
	if start >= len(list) {
		return []T{}
	}
	end := min(start+pageSize, len(list))
	out := make([]T, end-start)
	copy(out, list[start:end])
	return out
}

// CountsByPhase counts assignments per phase in one pass over list.
// Every phase in phases gets an entry, zero when nobody is assigned.
func CountsByPhase(list []model.Participation, phases []model.Phase) map[string]int {
	counts := make(map[string]int, len(phases))
	for _, ph := range phases {
		counts[ph.ID] = 0
	}
	for _, p := range list {
		seen := make(map[string]struct{}, len(p.Phases))
		for _, ref := range p.Phases {
			if _, known := counts[ref.ID]; !known {
				continue
			}
			if _, dup := seen[ref.ID]; dup {
				continue
			}
			seen[ref.ID] = struct{}{}
			counts[ref.ID]++
		}
	}
	return counts
}

// GroupByPhase lays participations out under each phase, in phases order.
// A participation in several phases appears in each of their groups.
func GroupByPhase(list []model.Participation, phases []model.Phase) Grouped {
	index := make(map[string]int, len(phases))
	g := Grouped{Groups: make([]Group, len(phases)), Unassigned: []model.Participation{}}
	for i, ph := range phases {
		index[ph.ID] = i
		g.Groups[i] = Group{Phase: ph, Participations: []model.Participation{}}
	}
	for _, p := range list {
		placed := false
		for _, ref := range p.Phases {
			i, ok := index[ref.ID]
			if !ok {
				continue
			}
			grp := &g.Groups[i]
			if n := len(grp.Participations); n > 0 && grp.Participations[n-1].Key() == p.Key() {
				continue
			}
			grp.Participations = append(grp.Participations, p)
			placed = true
		}
		if !placed {
			g.Unassigned = append(g.Unassigned, p)
		}
	}
	return g
}
