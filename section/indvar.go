package section

import (
	"fmt"

	"github.com/arloliu/mud/errs"
	"github.com/arloliu/mud/wire"
)

// IndVar records the statistics of one independent variable over the run.
type IndVar struct {
	Low      float64
	High     float64
	Mean     float64
	StdDev   float64
	Skewness float64

	Name        string
	Description string
	Units       string
}

func (v *IndVar) Decode(r *wire.Reader, _ uint32) error {
	var err error
	for _, f := range []*float64{&v.Low, &v.High, &v.Mean, &v.StdDev, &v.Skewness} {
		if *f, err = r.ReadF64(); err != nil {
			return err
		}
	}
	for _, s := range []*string{&v.Name, &v.Description, &v.Units} {
		if *s, err = r.ReadStr(); err != nil {
			return err
		}
	}

	return nil
}

func (v *IndVar) Encode(w *wire.Writer) error {
	for _, f := range []float64{v.Low, v.High, v.Mean, v.StdDev, v.Skewness} {
		w.WriteF64(f)
	}
	for _, s := range []string{v.Name, v.Description, v.Units} {
		if err := w.WriteStr(s); err != nil {
			return err
		}
	}

	return nil
}

func (v *IndVar) Size() uint32 {
	return 5*8 + wire.StrSize(v.Name) + wire.StrSize(v.Description) + wire.StrSize(v.Units)
}

// IndVarArr extends IndVar with the sampled history: NumData elements of
// ElemSize bytes, and optionally one u32 sample time per element.
type IndVarArr struct {
	IndVar

	NumData  uint32
	ElemSize uint32
	DataType uint32
	HasTime  uint32
	Data     []byte
	TimeData []uint32
}

func (v *IndVarArr) Decode(r *wire.Reader, size uint32) error {
	if err := v.IndVar.Decode(r, size); err != nil {
		return err
	}

	var err error
	for _, f := range []*uint32{&v.NumData, &v.ElemSize, &v.DataType, &v.HasTime} {
		if *f, err = r.ReadU32(); err != nil {
			return err
		}
	}

	dataLen := int(v.ElemSize) * int(v.NumData)
	if dataLen > r.Remaining() {
		return fmt.Errorf("%w: variable array declares %d data bytes, %d remain",
			errs.ErrCorruptSection, dataLen, r.Remaining())
	}
	if v.Data, err = r.ReadRaw(dataLen); err != nil {
		return err
	}

	if v.HasTime != 0 {
		v.TimeData = make([]uint32, v.NumData)
		for i := range v.TimeData {
			if v.TimeData[i], err = r.ReadTime(); err != nil {
				return fmt.Errorf("%w: variable array time data", errs.ErrCorruptSection)
			}
		}
	}

	return nil
}

func (v *IndVarArr) Encode(w *wire.Writer) error {
	if err := v.IndVar.Encode(w); err != nil {
		return err
	}
	w.WriteU32(v.NumData)
	w.WriteU32(v.ElemSize)
	w.WriteU32(v.DataType)
	w.WriteU32(v.HasTime)
	w.WriteRaw(v.Data)
	if v.HasTime != 0 {
		for _, t := range v.TimeData {
			w.WriteTime(t)
		}
	}

	return nil
}

func (v *IndVarArr) Size() uint32 {
	total := v.IndVar.Size() + 4*4 + uint32(len(v.Data))
	if v.HasTime != 0 {
		total += 4 * uint32(len(v.TimeData))
	}

	return total
}
