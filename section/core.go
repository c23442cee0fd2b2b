package section

import (
	"fmt"

	"github.com/arloliu/mud/errs"
	"github.com/arloliu/mud/wire"
)

// Core is the fixed prefix of every section. Only the four ID and size
// fields are meaningful on disk; the remaining 8 bytes of the 24-byte wire
// Core are the legacy in-memory slots, zero on write and skipped on read.
type Core struct {
	// NextOffset is the byte distance from the start of this section to the
	// start of the next sibling; 0 marks the last section in its scope.
	NextOffset uint32
	// Size is the payload length, not including the Core.
	Size uint32
	// SecID selects the section type (and its codec) from the registry.
	SecID uint32
	// InstanceID disambiguates repeated sections of the same type; for
	// groups it carries the group type.
	InstanceID uint32
}

// DecodeCore reads a Core from r.
func DecodeCore(r *wire.Reader) (Core, error) {
	var c Core
	var err error

	if c.NextOffset, err = r.ReadU32(); err != nil {
		return c, fmt.Errorf("%w: truncated core", errs.ErrInvalidFile)
	}
	if c.Size, err = r.ReadU32(); err != nil {
		return c, fmt.Errorf("%w: truncated core", errs.ErrInvalidFile)
	}
	if c.SecID, err = r.ReadU32(); err != nil {
		return c, fmt.Errorf("%w: truncated core", errs.ErrInvalidFile)
	}
	if c.InstanceID, err = r.ReadU32(); err != nil {
		return c, fmt.Errorf("%w: truncated core", errs.ErrInvalidFile)
	}
	// Legacy sizeof and procRef slots.
	if _, err = r.ReadRaw(8); err != nil {
		return c, fmt.Errorf("%w: truncated core", errs.ErrInvalidFile)
	}

	return c, nil
}

// EncodeCore writes c to w.
func EncodeCore(w *wire.Writer, c Core) {
	w.WriteU32(c.NextOffset)
	w.WriteU32(c.Size)
	w.WriteU32(c.SecID)
	w.WriteU32(c.InstanceID)
	w.WriteRaw(make([]byte, 8))
}
