// Package section implements the MUD section model: the Core codec, the
// type registry that maps section IDs to payload codecs, the group tree
// with its ordered member lists, and the concrete section catalogue.
package section

import (
	"github.com/arloliu/mud/wire"
)

// Payload is the codec contract every registered section type implements.
// Decode must consume exactly the declared payload from its bounded reader;
// Encode must emit the bytes Size reports.
type Payload interface {
	Decode(r *wire.Reader, size uint32) error
	Encode(w *wire.Writer) error
	Size() uint32
}

// Section is a Core plus a typed payload, linked into its parent group's
// ordered member list.
type Section struct {
	Core
	Payload Payload
}

// ID addresses a section within a group: a secID plus an instanceID. An
// InstanceID of 0 is a wildcard matching the first section with the given
// secID in insertion order.
type ID struct {
	SecID      uint32
	InstanceID uint32
}

// Group returns the section's payload as a Group, or nil if the section is
// not a group.
func (s *Section) Group() *Group {
	g, _ := s.Payload.(*Group)

	return g
}

func (s *Section) matches(id ID) bool {
	return s.SecID == id.SecID && (id.InstanceID == 0 || s.InstanceID == id.InstanceID)
}

// FindChild returns the first direct child of the group matching id, in
// insertion order, or nil. Friendly initializers number instances 1..n, so
// the exact match doubles as a 1-based ordinal selector.
func (s *Section) FindChild(id ID) *Section {
	g := s.Group()
	if g == nil {
		return nil
	}
	for _, m := range g.Members {
		if m.matches(id) {
			return m
		}
	}

	return nil
}

// Search resolves a chained path of IDs depth-first. The first path element
// must match the receiver itself; each subsequent element selects among the
// members of the section matched so far.
func (s *Section) Search(path ...ID) *Section {
	if len(path) == 0 {
		return s
	}
	if !s.matches(path[0]) {
		return nil
	}
	if len(path) == 1 {
		return s
	}
	g := s.Group()
	if g == nil {
		return nil
	}
	for _, m := range g.Members {
		if found := m.Search(path[1:]...); found != nil {
			return found
		}
	}

	return nil
}

// Refresh runs the sizing and offset passes over the subtree rooted at s:
// every section's Size is recomputed from its payload, and every group
// member's NextOffset is set to CoreSize+Size except the last, which gets 0.
// The section's own NextOffset is left to its parent (the root keeps 0).
func (s *Section) Refresh() {
	if g := s.Group(); g != nil {
		for i, m := range g.Members {
			m.Refresh()
			if i == len(g.Members)-1 {
				m.NextOffset = 0
			} else {
				m.NextOffset = CoreSize + m.Size
			}
		}
	}
	s.Size = s.Payload.Size()
}

// Encode writes the section's Core and payload to w. Callers run Refresh
// first so sizes and offsets are current; nextOffset lives at the front of
// each Core, which is why emission needs the sizing pass done already.
func (s *Section) Encode(w *wire.Writer) error {
	EncodeCore(w, s.Core)

	return s.Payload.Encode(w)
}
