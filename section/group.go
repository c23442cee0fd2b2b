package section

import (
	"fmt"

	"github.com/arloliu/mud/errs"
	"github.com/arloliu/mud/wire"
)

// Group is the payload of a group section: a member count followed by the
// Core+payload of each member. Members form an ordered sibling list and the
// order survives read/write round trips. A group owns its members.
type Group struct {
	Members []*Section
}

// Decode reads numMembers and then each member, dispatching every child
// Core to its registered codec. Child payload reads are bounded by the
// child's declared size; the walk honors each child's nextOffset.
func (g *Group) Decode(r *wire.Reader, size uint32) error {
	n, err := r.ReadU32()
	if err != nil {
		return fmt.Errorf("%w: group member count", errs.ErrCorruptSection)
	}

	// Every member costs at least a Core, which bounds a sane count.
	if int(n) > r.Remaining()/CoreSize {
		return fmt.Errorf("%w: group declares %d members in %d bytes", errs.ErrCorruptSection, n, r.Remaining())
	}

	g.Members = make([]*Section, 0, n)
	for i := uint32(0); i < n; i++ {
		start := r.Pos()

		core, err := DecodeCore(r)
		if err != nil {
			return fmt.Errorf("%w: member %d", errs.ErrCorruptSection, i)
		}

		sub, err := r.Sub(int(core.Size))
		if err != nil {
			return fmt.Errorf("%w: member %d declares %d payload bytes, %d remain",
				errs.ErrCorruptSection, i, core.Size, r.Remaining())
		}

		sec := New(core.SecID, core.InstanceID)
		sec.Core = core
		if err := sec.Payload.Decode(sub, core.Size); err != nil {
			return fmt.Errorf("member %d (secID 0x%08X): %w", i, core.SecID, err)
		}
		g.Members = append(g.Members, sec)

		// Legacy readers seek by nextOffset, so the walk honors it too.
		if i < n-1 {
			if core.NextOffset < CoreSize {
				return fmt.Errorf("%w: member %d nextOffset %d", errs.ErrCorruptSection, i, core.NextOffset)
			}
			if err := r.Seek(start + int(core.NextOffset)); err != nil {
				return fmt.Errorf("%w: member %d nextOffset %d overruns group",
					errs.ErrCorruptSection, i, core.NextOffset)
			}
		}
	}

	return nil
}

// Encode writes numMembers followed by each member's Core and payload.
func (g *Group) Encode(w *wire.Writer) error {
	w.WriteU32(uint32(len(g.Members)))
	for _, m := range g.Members {
		if err := m.Encode(w); err != nil {
			return err
		}
	}

	return nil
}

// Size returns 4 + the sum of CoreSize+Size over the members. Member sizes
// must be current; Section.Refresh recomputes them post-order.
func (g *Group) Size() uint32 {
	total := uint32(4)
	for _, m := range g.Members {
		total += CoreSize + m.Size
	}

	return total
}

// AddToGroup appends child at the end of the group's member list. The
// group takes ownership; a section must not appear in two groups.
func (s *Section) AddToGroup(child *Section) error {
	g := s.Group()
	if g == nil {
		return fmt.Errorf("%w: secID 0x%08X is not a group", errs.ErrInvalidInput, s.SecID)
	}
	g.Members = append(g.Members, child)

	return nil
}

// RemoveFromGroup detaches child from the group's member list; the caller
// takes ownership. Returns false when the child is not a direct member.
func (s *Section) RemoveFromGroup(child *Section) bool {
	g := s.Group()
	if g == nil {
		return false
	}
	for i, m := range g.Members {
		if m == child {
			g.Members = append(g.Members[:i], g.Members[i+1:]...)

			return true
		}
	}

	return false
}
