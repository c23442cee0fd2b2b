package mud

import (
	"fmt"
	"time"

	"github.com/arloliu/mud/errs"
	"github.com/arloliu/mud/section"
)

// The friendly accessors mirror the MUD_get*/MUD_set* surface of the
// reference library: each one resolves a hard-coded path into the tree and
// copies a single field. Initializers (SetRunDesc, SetHists, SetScalers,
// SetIndVars, SetComments) must run before the per-field setters they feed.

func (f *File) findRunDesc() (*section.Section, error) {
	if err := f.readable(); err != nil {
		return nil, err
	}
	for _, id := range []uint32{section.SecGenRunDescID, section.SecTriTiRunDescID} {
		if sec := f.root.FindChild(section.ID{SecID: id}); sec != nil {
			return sec, nil
		}
	}

	return nil, fmt.Errorf("%w: run description", errs.ErrNotFound)
}

// descU32 resolves a numeric run-description field present in both the TD
// and TI variants.
func (f *File) descU32(td func(*section.RunDesc) *uint32, ti func(*section.TIRunDesc) *uint32) (*uint32, error) {
	sec, err := f.findRunDesc()
	if err != nil {
		return nil, err
	}
	switch d := sec.Payload.(type) {
	case *section.RunDesc:
		return td(d), nil
	case *section.TIRunDesc:
		return ti(d), nil
	}

	return nil, fmt.Errorf("%w: run description", errs.ErrNotFound)
}

// descStr resolves a string run-description field. A nil selector marks the
// field as absent from that variant.
func (f *File) descStr(td func(*section.RunDesc) *string, ti func(*section.TIRunDesc) *string) (*string, error) {
	sec, err := f.findRunDesc()
	if err != nil {
		return nil, err
	}
	switch d := sec.Payload.(type) {
	case *section.RunDesc:
		if td == nil {
			return nil, fmt.Errorf("%w: field absent from TD run description", errs.ErrNotFound)
		}

		return td(d), nil
	case *section.TIRunDesc:
		if ti == nil {
			return nil, fmt.Errorf("%w: field absent from TI run description", errs.ErrNotFound)
		}

		return ti(d), nil
	}

	return nil, fmt.Errorf("%w: run description", errs.ErrNotFound)
}

func (f *File) getDescU32(td func(*section.RunDesc) *uint32, ti func(*section.TIRunDesc) *uint32) (uint32, error) {
	p, err := f.descU32(td, ti)
	if err != nil {
		return 0, err
	}

	return *p, nil
}

func (f *File) setDescU32(v uint32, td func(*section.RunDesc) *uint32, ti func(*section.TIRunDesc) *uint32) error {
	if err := f.writable(); err != nil {
		return err
	}
	p, err := f.descU32(td, ti)
	if err != nil {
		return err
	}
	*p = v

	return nil
}

func (f *File) getDescStr(td func(*section.RunDesc) *string, ti func(*section.TIRunDesc) *string) (string, error) {
	p, err := f.descStr(td, ti)
	if err != nil {
		return "", err
	}

	return *p, nil
}

func (f *File) setDescStr(v string, td func(*section.RunDesc) *string, ti func(*section.TIRunDesc) *string) error {
	if err := f.writable(); err != nil {
		return err
	}
	p, err := f.descStr(td, ti)
	if err != nil {
		return err
	}
	*p = v

	return nil
}

// SetRunDesc installs a run description section of the given type
// (SecGenRunDesc or SecTriTiRunDesc), replacing any existing one. It must
// be called before the per-field setters on a fresh file.
func (f *File) SetRunDesc(descType uint32) error {
	if err := f.writable(); err != nil {
		return err
	}
	if descType != section.SecGenRunDescID && descType != section.SecTriTiRunDescID {
		return fmt.Errorf("%w: run description type 0x%08X", errs.ErrInvalidInput, descType)
	}
	for _, id := range []uint32{section.SecGenRunDescID, section.SecTriTiRunDescID} {
		if old := f.root.FindChild(section.ID{SecID: id}); old != nil {
			f.root.RemoveFromGroup(old)
		}
	}

	return f.root.AddToGroup(section.New(descType, 1))
}

func (f *File) GetExptNumber() (uint32, error) {
	return f.getDescU32(
		func(d *section.RunDesc) *uint32 { return &d.ExptNumber },
		func(d *section.TIRunDesc) *uint32 { return &d.ExptNumber })
}

func (f *File) SetExptNumber(v uint32) error {
	return f.setDescU32(v,
		func(d *section.RunDesc) *uint32 { return &d.ExptNumber },
		func(d *section.TIRunDesc) *uint32 { return &d.ExptNumber })
}

func (f *File) GetRunNumber() (uint32, error) {
	return f.getDescU32(
		func(d *section.RunDesc) *uint32 { return &d.RunNumber },
		func(d *section.TIRunDesc) *uint32 { return &d.RunNumber })
}

func (f *File) SetRunNumber(v uint32) error {
	return f.setDescU32(v,
		func(d *section.RunDesc) *uint32 { return &d.RunNumber },
		func(d *section.TIRunDesc) *uint32 { return &d.RunNumber })
}

func (f *File) GetElapsedSec() (uint32, error) {
	return f.getDescU32(
		func(d *section.RunDesc) *uint32 { return &d.ElapsedSec },
		func(d *section.TIRunDesc) *uint32 { return &d.ElapsedSec })
}

func (f *File) SetElapsedSec(v uint32) error {
	return f.setDescU32(v,
		func(d *section.RunDesc) *uint32 { return &d.ElapsedSec },
		func(d *section.TIRunDesc) *uint32 { return &d.ElapsedSec })
}

func (f *File) GetTimeBegin() (uint32, error) {
	return f.getDescU32(
		func(d *section.RunDesc) *uint32 { return &d.TimeBegin },
		func(d *section.TIRunDesc) *uint32 { return &d.TimeBegin })
}

// SetTimeBegin accepts a time.Time and stores it as u32 epoch seconds, the
// on-disk width of the format. Times outside the u32 range are rejected.
func (f *File) SetTimeBegin(t time.Time) error {
	v, err := epochSeconds(t)
	if err != nil {
		return err
	}

	return f.setDescU32(v,
		func(d *section.RunDesc) *uint32 { return &d.TimeBegin },
		func(d *section.TIRunDesc) *uint32 { return &d.TimeBegin })
}

func (f *File) GetTimeEnd() (uint32, error) {
	return f.getDescU32(
		func(d *section.RunDesc) *uint32 { return &d.TimeEnd },
		func(d *section.TIRunDesc) *uint32 { return &d.TimeEnd })
}

func (f *File) SetTimeEnd(t time.Time) error {
	v, err := epochSeconds(t)
	if err != nil {
		return err
	}

	return f.setDescU32(v,
		func(d *section.RunDesc) *uint32 { return &d.TimeEnd },
		func(d *section.TIRunDesc) *uint32 { return &d.TimeEnd })
}

// TimeBeginAsTime returns the run start as a time.Time in UTC.
func (f *File) TimeBeginAsTime() (time.Time, error) {
	v, err := f.GetTimeBegin()
	if err != nil {
		return time.Time{}, err
	}

	return time.Unix(int64(v), 0).UTC(), nil
}

func epochSeconds(t time.Time) (uint32, error) {
	sec := t.Unix()
	if sec < 0 || sec > int64(^uint32(0)) {
		return 0, fmt.Errorf("%w: time %v outside the u32 epoch range", errs.ErrInvalidInput, t)
	}

	return uint32(sec), nil
}

func (f *File) GetTitle() (string, error) {
	return f.getDescStr(
		func(d *section.RunDesc) *string { return &d.Title },
		func(d *section.TIRunDesc) *string { return &d.Title })
}

func (f *File) SetTitle(v string) error {
	return f.setDescStr(v,
		func(d *section.RunDesc) *string { return &d.Title },
		func(d *section.TIRunDesc) *string { return &d.Title })
}

func (f *File) GetLab() (string, error) {
	return f.getDescStr(
		func(d *section.RunDesc) *string { return &d.Lab },
		func(d *section.TIRunDesc) *string { return &d.Lab })
}

func (f *File) SetLab(v string) error {
	return f.setDescStr(v,
		func(d *section.RunDesc) *string { return &d.Lab },
		func(d *section.TIRunDesc) *string { return &d.Lab })
}

func (f *File) GetArea() (string, error) {
	return f.getDescStr(
		func(d *section.RunDesc) *string { return &d.Area },
		func(d *section.TIRunDesc) *string { return &d.Area })
}

func (f *File) SetArea(v string) error {
	return f.setDescStr(v,
		func(d *section.RunDesc) *string { return &d.Area },
		func(d *section.TIRunDesc) *string { return &d.Area })
}

func (f *File) GetMethod() (string, error) {
	return f.getDescStr(
		func(d *section.RunDesc) *string { return &d.Method },
		func(d *section.TIRunDesc) *string { return &d.Method })
}

func (f *File) SetMethod(v string) error {
	return f.setDescStr(v,
		func(d *section.RunDesc) *string { return &d.Method },
		func(d *section.TIRunDesc) *string { return &d.Method })
}

func (f *File) GetApparatus() (string, error) {
	return f.getDescStr(
		func(d *section.RunDesc) *string { return &d.Apparatus },
		func(d *section.TIRunDesc) *string { return &d.Apparatus })
}

func (f *File) SetApparatus(v string) error {
	return f.setDescStr(v,
		func(d *section.RunDesc) *string { return &d.Apparatus },
		func(d *section.TIRunDesc) *string { return &d.Apparatus })
}

func (f *File) GetInsert() (string, error) {
	return f.getDescStr(
		func(d *section.RunDesc) *string { return &d.Insert },
		func(d *section.TIRunDesc) *string { return &d.Insert })
}

func (f *File) SetInsert(v string) error {
	return f.setDescStr(v,
		func(d *section.RunDesc) *string { return &d.Insert },
		func(d *section.TIRunDesc) *string { return &d.Insert })
}

func (f *File) GetSample() (string, error) {
	return f.getDescStr(
		func(d *section.RunDesc) *string { return &d.Sample },
		func(d *section.TIRunDesc) *string { return &d.Sample })
}

func (f *File) SetSample(v string) error {
	return f.setDescStr(v,
		func(d *section.RunDesc) *string { return &d.Sample },
		func(d *section.TIRunDesc) *string { return &d.Sample })
}

func (f *File) GetOrient() (string, error) {
	return f.getDescStr(
		func(d *section.RunDesc) *string { return &d.Orient },
		func(d *section.TIRunDesc) *string { return &d.Orient })
}

func (f *File) SetOrient(v string) error {
	return f.setDescStr(v,
		func(d *section.RunDesc) *string { return &d.Orient },
		func(d *section.TIRunDesc) *string { return &d.Orient })
}

func (f *File) GetDas() (string, error) {
	return f.getDescStr(
		func(d *section.RunDesc) *string { return &d.Das },
		func(d *section.TIRunDesc) *string { return &d.Das })
}

func (f *File) SetDas(v string) error {
	return f.setDescStr(v,
		func(d *section.RunDesc) *string { return &d.Das },
		func(d *section.TIRunDesc) *string { return &d.Das })
}

func (f *File) GetExperimenter() (string, error) {
	return f.getDescStr(
		func(d *section.RunDesc) *string { return &d.Experimenter },
		func(d *section.TIRunDesc) *string { return &d.Experimenter })
}

func (f *File) SetExperimenter(v string) error {
	return f.setDescStr(v,
		func(d *section.RunDesc) *string { return &d.Experimenter },
		func(d *section.TIRunDesc) *string { return &d.Experimenter })
}

// Temperature and Field exist only in the TD run description.

func (f *File) GetTemperature() (string, error) {
	return f.getDescStr(func(d *section.RunDesc) *string { return &d.Temperature }, nil)
}

func (f *File) SetTemperature(v string) error {
	return f.setDescStr(v, func(d *section.RunDesc) *string { return &d.Temperature }, nil)
}

func (f *File) GetField() (string, error) {
	return f.getDescStr(func(d *section.RunDesc) *string { return &d.Field }, nil)
}

func (f *File) SetField(v string) error {
	return f.setDescStr(v, func(d *section.RunDesc) *string { return &d.Field }, nil)
}

// Subtitle and the three comment lines exist only in the TI variant.

func (f *File) GetSubtitle() (string, error) {
	return f.getDescStr(nil, func(d *section.TIRunDesc) *string { return &d.Subtitle })
}

func (f *File) SetSubtitle(v string) error {
	return f.setDescStr(v, nil, func(d *section.TIRunDesc) *string { return &d.Subtitle })
}

func (f *File) GetComment1() (string, error) {
	return f.getDescStr(nil, func(d *section.TIRunDesc) *string { return &d.Comment1 })
}

func (f *File) SetComment1(v string) error {
	return f.setDescStr(v, nil, func(d *section.TIRunDesc) *string { return &d.Comment1 })
}

func (f *File) GetComment2() (string, error) {
	return f.getDescStr(nil, func(d *section.TIRunDesc) *string { return &d.Comment2 })
}

func (f *File) SetComment2(v string) error {
	return f.setDescStr(v, nil, func(d *section.TIRunDesc) *string { return &d.Comment2 })
}

func (f *File) GetComment3() (string, error) {
	return f.getDescStr(nil, func(d *section.TIRunDesc) *string { return &d.Comment3 })
}

func (f *File) SetComment3(v string) error {
	return f.setDescStr(v, nil, func(d *section.TIRunDesc) *string { return &d.Comment3 })
}

// findGroup locates the first inner group whose type is one of groupIDs.
func (f *File) findGroup(groupIDs ...uint32) (*section.Section, error) {
	if err := f.readable(); err != nil {
		return nil, err
	}
	for _, id := range groupIDs {
		if grp := f.root.FindChild(section.ID{SecID: section.SecGrpID, InstanceID: id}); grp != nil {
			return grp, nil
		}
	}

	return nil, fmt.Errorf("%w: group 0x%08X", errs.ErrNotFound, groupIDs[0])
}

// replaceGroup removes any existing group of the given types and installs a
// fresh empty one, returning it.
func (f *File) replaceGroup(groupType uint32, groupIDs ...uint32) (*section.Section, error) {
	if err := f.writable(); err != nil {
		return nil, err
	}
	for _, id := range groupIDs {
		if old := f.root.FindChild(section.ID{SecID: section.SecGrpID, InstanceID: id}); old != nil {
			f.root.RemoveFromGroup(old)
		}
	}
	grp := section.NewGroup(groupType)
	if err := f.root.AddToGroup(grp); err != nil {
		return nil, err
	}

	return grp, nil
}

// countMembers counts a group's direct children with the given secID.
func countMembers(grp *section.Section, secID uint32) uint32 {
	n := uint32(0)
	for _, m := range grp.Group().Members {
		if m.SecID == secID {
			n++
		}
	}

	return n
}
