package semantic

import (
	"github.com/odvcencio/sift/diff"
	"github.com/odvcencio/sift/grammars"
)

// Status classifies a matched declaration relative to the two versions.
type Status int

const (
	// StatusPaired means the declaration exists in both versions.
	StatusPaired Status = iota
	// StatusRemoved means it exists only in the old version.
	StatusRemoved
	// StatusAdded means it exists only in the new version.
	StatusAdded
)

// MemberMatch is one member paired (or not) across versions. OldSpan is
// meaningful unless Status is StatusAdded; NewSpan unless StatusRemoved.
type MemberMatch struct {
	Status  Status
	Kind    grammars.NodeKind
	Name    string
	OldSpan diff.Span
	NewSpan diff.Span
}

// ContainerMatch is one container paired (or not) across versions, with its
// members matched inside it.
type ContainerMatch struct {
	Status    Status
	Kind      grammars.NodeKind
	Name      string
	Qualifier string
	OldSpan   diff.Span
	NewSpan   diff.Span
	Members   []MemberMatch
}

// Match pairs containers between the old and new summaries by identity
// (name, kind, qualifier), ignoring position. Duplicate identities pair by
// order of occurrence: first unmatched old to first unmatched new. An old
// container with no partner is Removed, a new one with no partner Added —
// renames deliberately surface as a Removed plus an Added, never inferred.
//
// The result is ordered for display: paired and removed containers follow
// old-document order, with added containers inserted by their new-side
// position relative to their paired neighbors.
func Match(oldSum, newSum *Summary) []ContainerMatch {
	var oldCs, newCs []Container
	if oldSum != nil {
		oldCs = oldSum.Containers
	}
	if newSum != nil {
		newCs = newSum.Containers
	}

	taken := make([]bool, len(newCs))
	var out []ContainerMatch
	for _, oc := range oldCs {
		partner := -1
		for j, nc := range newCs {
			if !taken[j] && oc.sameIdentity(nc) {
				partner = j
				break
			}
		}
		if partner < 0 {
			out = append(out, ContainerMatch{
				Status:    StatusRemoved,
				Kind:      oc.Kind,
				Name:      oc.Name,
				Qualifier: oc.Qualifier,
				OldSpan:   oc.Span,
				Members:   removedMembers(oc.Members),
			})
			continue
		}
		taken[partner] = true
		nc := newCs[partner]
		out = append(out, ContainerMatch{
			Status:    StatusPaired,
			Kind:      oc.Kind,
			Name:      oc.Name,
			Qualifier: oc.Qualifier,
			OldSpan:   oc.Span,
			NewSpan:   nc.Span,
			Members:   matchMembers(oc.Members, nc.Members),
		})
	}

	for j, nc := range newCs {
		if taken[j] {
			continue
		}
		added := ContainerMatch{
			Status:    StatusAdded,
			Kind:      nc.Kind,
			Name:      nc.Name,
			Qualifier: nc.Qualifier,
			NewSpan:   nc.Span,
			Members:   addedMembers(nc.Members),
		}
		out = insertByNewPosition(out, added)
	}
	return out
}

// matchMembers pairs members within one matched container, scoped so that a
// member never matches a same-named member of a different container.
func matchMembers(oldMs, newMs []Member) []MemberMatch {
	taken := make([]bool, len(newMs))
	var out []MemberMatch
	for _, om := range oldMs {
		partner := -1
		for j, nm := range newMs {
			if !taken[j] && om.sameIdentity(nm) {
				partner = j
				break
			}
		}
		if partner < 0 {
			out = append(out, MemberMatch{
				Status:  StatusRemoved,
				Kind:    om.Kind,
				Name:    om.Name,
				OldSpan: om.Span,
			})
			continue
		}
		taken[partner] = true
		out = append(out, MemberMatch{
			Status:  StatusPaired,
			Kind:    om.Kind,
			Name:    om.Name,
			OldSpan: om.Span,
			NewSpan: newMs[partner].Span,
		})
	}
	for j, nm := range newMs {
		if taken[j] {
			continue
		}
		added := MemberMatch{
			Status:  StatusAdded,
			Kind:    nm.Kind,
			Name:    nm.Name,
			NewSpan: nm.Span,
		}
		out = insertMemberByNewPosition(out, added)
	}
	return out
}

func removedMembers(ms []Member) []MemberMatch {
	var out []MemberMatch
	for _, m := range ms {
		out = append(out, MemberMatch{Status: StatusRemoved, Kind: m.Kind, Name: m.Name, OldSpan: m.Span})
	}
	return out
}

func addedMembers(ms []Member) []MemberMatch {
	var out []MemberMatch
	for _, m := range ms {
		out = append(out, MemberMatch{Status: StatusAdded, Kind: m.Kind, Name: m.Name, NewSpan: m.Span})
	}
	return out
}

func insertByNewPosition(out []ContainerMatch, added ContainerMatch) []ContainerMatch {
	at := len(out)
	for i, m := range out {
		if m.Status == StatusRemoved {
			continue
		}
		if m.NewSpan.Start > added.NewSpan.Start {
			at = i
			break
		}
	}
	out = append(out, ContainerMatch{})
	copy(out[at+1:], out[at:])
	out[at] = added
	return out
}

func insertMemberByNewPosition(out []MemberMatch, added MemberMatch) []MemberMatch {
	at := len(out)
	for i, m := range out {
		if m.Status == StatusRemoved {
			continue
		}
		if m.NewSpan.Start > added.NewSpan.Start {
			at = i
			break
		}
	}
	out = append(out, MemberMatch{})
	copy(out[at+1:], out[at:])
	out[at] = added
	return out
}
