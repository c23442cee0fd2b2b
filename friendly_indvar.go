package mud

import (
	"fmt"

	"github.com/arloliu/mud/errs"
	"github.com/arloliu/mud/section"
)

var indVarGroupIDs = []uint32{section.GrpGenIndVarID, section.GrpGenIndVarArrID}

// indVar resolves independent variable num; the second return is the array
// tail when the section is the array variant, else nil.
func (f *File) indVar(num uint32) (*section.IndVar, *section.IndVarArr, error) {
	grp, err := f.findGroup(indVarGroupIDs...)
	if err != nil {
		return nil, nil, err
	}
	if sec := grp.FindChild(section.ID{SecID: section.SecGenIndVarArrID, InstanceID: num}); sec != nil {
		arr := sec.Payload.(*section.IndVarArr)

		return &arr.IndVar, arr, nil
	}
	if sec := grp.FindChild(section.ID{SecID: section.SecGenIndVarID, InstanceID: num}); sec != nil {
		return sec.Payload.(*section.IndVar), nil, nil
	}

	return nil, nil, fmt.Errorf("%w: independent variable %d", errs.ErrNotFound, num)
}

func (f *File) indVarArr(num uint32) (*section.IndVarArr, error) {
	_, arr, err := f.indVar(num)
	if err != nil {
		return nil, err
	}
	if arr == nil {
		return nil, fmt.Errorf("%w: independent variable %d has no array data", errs.ErrNotFound, num)
	}

	return arr, nil
}

// GetIndVars returns the independent variable group type and member count.
func (f *File) GetIndVars() (uint32, uint32, error) {
	grp, err := f.findGroup(indVarGroupIDs...)
	if err != nil {
		return 0, 0, err
	}
	n := countMembers(grp, section.SecGenIndVarID) + countMembers(grp, section.SecGenIndVarArrID)

	return grp.InstanceID, n, nil
}

// SetIndVars replaces any existing independent variable group with a fresh
// group of the given type holding n zero-initialized variables, numbered
// 1..n. GrpGenIndVarArr selects the array variant.
func (f *File) SetIndVars(groupType uint32, n uint32) error {
	grp, err := f.replaceGroup(groupType, indVarGroupIDs...)
	if err != nil {
		return err
	}
	secID := section.SecGenIndVarID
	if groupType == section.GrpGenIndVarArrID {
		secID = section.SecGenIndVarArrID
	}
	for i := uint32(1); i <= n; i++ {
		if err := grp.AddToGroup(section.New(secID, i)); err != nil {
			return err
		}
	}

	return nil
}

func (f *File) getIndVarF64(num uint32, sel func(*section.IndVar) *float64) (float64, error) {
	v, _, err := f.indVar(num)
	if err != nil {
		return 0, err
	}

	return *sel(v), nil
}

func (f *File) setIndVarF64(num uint32, val float64, sel func(*section.IndVar) *float64) error {
	if err := f.writable(); err != nil {
		return err
	}
	v, _, err := f.indVar(num)
	if err != nil {
		return err
	}
	*sel(v) = val

	return nil
}

func (f *File) GetIndVarLow(num uint32) (float64, error) {
	return f.getIndVarF64(num, func(v *section.IndVar) *float64 { return &v.Low })
}

func (f *File) SetIndVarLow(num uint32, val float64) error {
	return f.setIndVarF64(num, val, func(v *section.IndVar) *float64 { return &v.Low })
}

func (f *File) GetIndVarHigh(num uint32) (float64, error) {
	return f.getIndVarF64(num, func(v *section.IndVar) *float64 { return &v.High })
}

func (f *File) SetIndVarHigh(num uint32, val float64) error {
	return f.setIndVarF64(num, val, func(v *section.IndVar) *float64 { return &v.High })
}

func (f *File) GetIndVarMean(num uint32) (float64, error) {
	return f.getIndVarF64(num, func(v *section.IndVar) *float64 { return &v.Mean })
}

func (f *File) SetIndVarMean(num uint32, val float64) error {
	return f.setIndVarF64(num, val, func(v *section.IndVar) *float64 { return &v.Mean })
}

func (f *File) GetIndVarStddev(num uint32) (float64, error) {
	return f.getIndVarF64(num, func(v *section.IndVar) *float64 { return &v.StdDev })
}

func (f *File) SetIndVarStddev(num uint32, val float64) error {
	return f.setIndVarF64(num, val, func(v *section.IndVar) *float64 { return &v.StdDev })
}

func (f *File) GetIndVarSkewness(num uint32) (float64, error) {
	return f.getIndVarF64(num, func(v *section.IndVar) *float64 { return &v.Skewness })
}

func (f *File) SetIndVarSkewness(num uint32, val float64) error {
	return f.setIndVarF64(num, val, func(v *section.IndVar) *float64 { return &v.Skewness })
}

func (f *File) getIndVarStr(num uint32, sel func(*section.IndVar) *string) (string, error) {
	v, _, err := f.indVar(num)
	if err != nil {
		return "", err
	}

	return *sel(v), nil
}

func (f *File) setIndVarStr(num uint32, val string, sel func(*section.IndVar) *string) error {
	if err := f.writable(); err != nil {
		return err
	}
	v, _, err := f.indVar(num)
	if err != nil {
		return err
	}
	*sel(v) = val

	return nil
}

func (f *File) GetIndVarName(num uint32) (string, error) {
	return f.getIndVarStr(num, func(v *section.IndVar) *string { return &v.Name })
}

func (f *File) SetIndVarName(num uint32, val string) error {
	return f.setIndVarStr(num, val, func(v *section.IndVar) *string { return &v.Name })
}

func (f *File) GetIndVarDescription(num uint32) (string, error) {
	return f.getIndVarStr(num, func(v *section.IndVar) *string { return &v.Description })
}

func (f *File) SetIndVarDescription(num uint32, val string) error {
	return f.setIndVarStr(num, val, func(v *section.IndVar) *string { return &v.Description })
}

func (f *File) GetIndVarUnits(num uint32) (string, error) {
	return f.getIndVarStr(num, func(v *section.IndVar) *string { return &v.Units })
}

func (f *File) SetIndVarUnits(num uint32, val string) error {
	return f.setIndVarStr(num, val, func(v *section.IndVar) *string { return &v.Units })
}

func (f *File) GetIndVarNumData(num uint32) (uint32, error) {
	arr, err := f.indVarArr(num)
	if err != nil {
		return 0, err
	}

	return arr.NumData, nil
}

func (f *File) GetIndVarElemSize(num uint32) (uint32, error) {
	arr, err := f.indVarArr(num)
	if err != nil {
		return 0, err
	}

	return arr.ElemSize, nil
}

func (f *File) GetIndVarDataType(num uint32) (uint32, error) {
	arr, err := f.indVarArr(num)
	if err != nil {
		return 0, err
	}

	return arr.DataType, nil
}

func (f *File) GetIndVarHasTime(num uint32) (bool, error) {
	arr, err := f.indVarArr(num)
	if err != nil {
		return false, err
	}

	return arr.HasTime != 0, nil
}

// GetIndVarData returns the raw sampled history; elemSize and dataType
// describe its layout.
func (f *File) GetIndVarData(num uint32) ([]byte, error) {
	arr, err := f.indVarArr(num)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(arr.Data))
	copy(out, arr.Data)

	return out, nil
}

// SetIndVarData stores the sampled history. len(data) must be a whole
// number of elemSize elements.
func (f *File) SetIndVarData(num uint32, elemSize, dataType uint32, data []byte) error {
	if err := f.writable(); err != nil {
		return err
	}
	if elemSize == 0 || len(data)%int(elemSize) != 0 {
		return fmt.Errorf("%w: %d data bytes with elemSize %d", errs.ErrInvalidInput, len(data), elemSize)
	}
	arr, err := f.indVarArr(num)
	if err != nil {
		return err
	}
	arr.ElemSize = elemSize
	arr.DataType = dataType
	arr.NumData = uint32(len(data)) / elemSize
	arr.Data = make([]byte, len(data))
	copy(arr.Data, data)
	if arr.HasTime != 0 && len(arr.TimeData) != int(arr.NumData) {
		arr.TimeData = make([]uint32, arr.NumData)
	}

	return nil
}

// GetIndVarTimeData returns the per-sample times, when recorded.
func (f *File) GetIndVarTimeData(num uint32) ([]uint32, error) {
	arr, err := f.indVarArr(num)
	if err != nil {
		return nil, err
	}
	if arr.HasTime == 0 {
		return nil, fmt.Errorf("%w: independent variable %d has no time data", errs.ErrNotFound, num)
	}
	out := make([]uint32, len(arr.TimeData))
	copy(out, arr.TimeData)

	return out, nil
}

// SetIndVarTimeData stores one sample time per data element.
func (f *File) SetIndVarTimeData(num uint32, times []uint32) error {
	if err := f.writable(); err != nil {
		return err
	}
	arr, err := f.indVarArr(num)
	if err != nil {
		return err
	}
	if len(times) != int(arr.NumData) {
		return fmt.Errorf("%w: %d times for %d data elements", errs.ErrInvalidInput, len(times), arr.NumData)
	}
	arr.HasTime = 1
	arr.TimeData = make([]uint32, len(times))
	copy(arr.TimeData, times)

	return nil
}
