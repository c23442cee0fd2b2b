package section

import (
	"fmt"

	"github.com/arloliu/mud/errs"
	"github.com/arloliu/mud/wire"
)

// HistHdr describes one histogram: bin geometry, timing calibration, the
// good-bin and background windows, and the title. The bin counts live in a
// separate HistDat section with the same instanceID.
type HistHdr struct {
	HistType    uint32
	NBytes      uint32
	NBins       uint32
	BytesPerBin uint32 // 0 selects the packed variable-width encoding
	FsPerBin    uint32
	T0Ps        uint32
	T0Bin       uint32
	GoodBin1    uint32
	GoodBin2    uint32
	Bkgd1       uint32
	Bkgd2       uint32
	NEvents     uint32
	Title       string
}

func (h *HistHdr) fields() []*uint32 {
	return []*uint32{
		&h.HistType, &h.NBytes, &h.NBins, &h.BytesPerBin, &h.FsPerBin,
		&h.T0Ps, &h.T0Bin, &h.GoodBin1, &h.GoodBin2, &h.Bkgd1, &h.Bkgd2, &h.NEvents,
	}
}

func (h *HistHdr) Decode(r *wire.Reader, _ uint32) error {
	var err error
	for _, f := range h.fields() {
		if *f, err = r.ReadU32(); err != nil {
			return err
		}
	}
	if h.Title, err = r.ReadStr(); err != nil {
		return err
	}

	return nil
}

func (h *HistHdr) Encode(w *wire.Writer) error {
	for _, f := range h.fields() {
		w.WriteU32(*f)
	}

	return w.WriteStr(h.Title)
}

func (h *HistHdr) Size() uint32 {
	return 12*4 + wire.StrSize(h.Title)
}

// HistDat carries the raw histogram bytes. Interpretation follows the
// paired header's bytesPerBin: fixed 1/2/4-byte little-endian bins, or the
// packed variable-width stream when bytesPerBin is 0.
type HistDat struct {
	Bytes []byte
}

func (h *HistDat) Decode(r *wire.Reader, size uint32) error {
	b, err := r.ReadRaw(int(size))
	if err != nil {
		return fmt.Errorf("%w: histogram data of %d bytes", errs.ErrCorruptSection, size)
	}
	h.Bytes = b

	return nil
}

func (h *HistDat) Encode(w *wire.Writer) error {
	w.WriteRaw(h.Bytes)

	return nil
}

func (h *HistDat) Size() uint32 {
	return uint32(len(h.Bytes))
}

// HistSecondsPerBin is the auxiliary bin-interval section, emitted with the
// histogram's instanceID when fsPerBin cannot represent the interval as an
// integer count of femtoseconds. Readers prefer it over fsPerBin * 1e-15.
type HistSecondsPerBin struct {
	SecondsPerBin float64
}

func (h *HistSecondsPerBin) Decode(r *wire.Reader, _ uint32) error {
	var err error
	h.SecondsPerBin, err = r.ReadF64()

	return err
}

func (h *HistSecondsPerBin) Encode(w *wire.Writer) error {
	w.WriteF64(h.SecondsPerBin)

	return nil
}

func (h *HistSecondsPerBin) Size() uint32 {
	return 8
}
