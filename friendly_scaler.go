package mud

import (
	"fmt"

	"github.com/arloliu/mud/errs"
	"github.com/arloliu/mud/section"
)

var scalerGroupIDs = []uint32{section.GrpTriTdScalerID, section.GrpGenScalerID}

func (f *File) scaler(num uint32) (*section.Scaler, error) {
	grp, err := f.findGroup(scalerGroupIDs...)
	if err != nil {
		return nil, err
	}
	for _, id := range []uint32{section.SecGenScalerID, section.SecTriTdScalerID} {
		if sec := grp.FindChild(section.ID{SecID: id, InstanceID: num}); sec != nil {
			return sec.Payload.(*section.Scaler), nil
		}
	}

	return nil, fmt.Errorf("%w: scaler %d", errs.ErrNotFound, num)
}

// GetScalers returns the scaler group type and the number of scalers.
func (f *File) GetScalers() (uint32, uint32, error) {
	grp, err := f.findGroup(scalerGroupIDs...)
	if err != nil {
		return 0, 0, err
	}

	n := countMembers(grp, section.SecGenScalerID) + countMembers(grp, section.SecTriTdScalerID)

	return grp.InstanceID, n, nil
}

// SetScalers replaces any existing scaler group with a fresh group of the
// given type holding n zero-initialized scalers, numbered 1..n.
func (f *File) SetScalers(groupType uint32, n uint32) error {
	grp, err := f.replaceGroup(groupType, scalerGroupIDs...)
	if err != nil {
		return err
	}
	for i := uint32(1); i <= n; i++ {
		if err := grp.AddToGroup(section.New(section.SecGenScalerID, i)); err != nil {
			return err
		}
	}

	return nil
}

func (f *File) GetScalerLabel(num uint32) (string, error) {
	s, err := f.scaler(num)
	if err != nil {
		return "", err
	}

	return s.Label, nil
}

func (f *File) SetScalerLabel(num uint32, v string) error {
	if err := f.writable(); err != nil {
		return err
	}
	s, err := f.scaler(num)
	if err != nil {
		return err
	}
	s.Label = v

	return nil
}

// GetScalerCounts returns the scaler's two count words.
func (f *File) GetScalerCounts(num uint32) ([2]uint32, error) {
	s, err := f.scaler(num)
	if err != nil {
		return [2]uint32{}, err
	}

	return s.Counts, nil
}

func (f *File) SetScalerCounts(num uint32, counts [2]uint32) error {
	if err := f.writable(); err != nil {
		return err
	}
	s, err := f.scaler(num)
	if err != nil {
		return err
	}
	s.Counts = counts

	return nil
}
