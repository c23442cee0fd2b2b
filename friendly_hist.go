package mud

import (
	"fmt"
	"math"

	"github.com/arloliu/mud/errs"
	"github.com/arloliu/mud/pack"
	"github.com/arloliu/mud/section"
)

var histGroupIDs = []uint32{
	section.GrpTriTdHistID, section.GrpTriTiHistID, section.GrpGenHistID,
}

func (f *File) histGroup() (*section.Section, error) {
	return f.findGroup(histGroupIDs...)
}

// histHdrIDs covers the generic header plus the TRI-specific IDs some
// producers stamp on their headers.
var histHdrIDs = []uint32{
	section.SecGenHistHdrID, section.SecTriTdHistID, section.SecTriTiHistID,
}

func (f *File) histHdr(num uint32) (*section.HistHdr, error) {
	grp, err := f.histGroup()
	if err != nil {
		return nil, err
	}
	for _, id := range histHdrIDs {
		if sec := grp.FindChild(section.ID{SecID: id, InstanceID: num}); sec != nil {
			return sec.Payload.(*section.HistHdr), nil
		}
	}

	return nil, fmt.Errorf("%w: histogram header %d", errs.ErrNotFound, num)
}

func (f *File) histDat(num uint32) (*section.HistDat, error) {
	grp, err := f.histGroup()
	if err != nil {
		return nil, err
	}
	sec := grp.FindChild(section.ID{SecID: section.SecGenHistDatID, InstanceID: num})
	if sec == nil {
		return nil, fmt.Errorf("%w: histogram data %d", errs.ErrNotFound, num)
	}

	return sec.Payload.(*section.HistDat), nil
}

// GetHists returns the histogram group type and the number of histograms.
func (f *File) GetHists() (uint32, uint32, error) {
	grp, err := f.histGroup()
	if err != nil {
		return 0, 0, err
	}
	n := uint32(0)
	for _, id := range histHdrIDs {
		n += countMembers(grp, id)
	}

	return grp.InstanceID, n, nil
}

// SetHists replaces any existing histogram group with a fresh group of the
// given type holding n zero-initialized header/data pairs, numbered 1..n.
// It must be called before the per-histogram setters.
func (f *File) SetHists(groupType uint32, n uint32) error {
	grp, err := f.replaceGroup(groupType, histGroupIDs...)
	if err != nil {
		return err
	}
	for i := uint32(1); i <= n; i++ {
		if err := grp.AddToGroup(section.New(section.SecGenHistHdrID, i)); err != nil {
			return err
		}
		if err := grp.AddToGroup(section.New(section.SecGenHistDatID, i)); err != nil {
			return err
		}
	}

	return nil
}

func (f *File) getHistU32(num uint32, sel func(*section.HistHdr) *uint32) (uint32, error) {
	h, err := f.histHdr(num)
	if err != nil {
		return 0, err
	}

	return *sel(h), nil
}

func (f *File) setHistU32(num, v uint32, sel func(*section.HistHdr) *uint32) error {
	if err := f.writable(); err != nil {
		return err
	}
	h, err := f.histHdr(num)
	if err != nil {
		return err
	}
	*sel(h) = v

	return nil
}

func (f *File) GetHistType(num uint32) (uint32, error) {
	return f.getHistU32(num, func(h *section.HistHdr) *uint32 { return &h.HistType })
}

func (f *File) SetHistType(num, v uint32) error {
	return f.setHistU32(num, v, func(h *section.HistHdr) *uint32 { return &h.HistType })
}

func (f *File) GetHistNumBytes(num uint32) (uint32, error) {
	return f.getHistU32(num, func(h *section.HistHdr) *uint32 { return &h.NBytes })
}

func (f *File) GetHistNumBins(num uint32) (uint32, error) {
	return f.getHistU32(num, func(h *section.HistHdr) *uint32 { return &h.NBins })
}

func (f *File) GetHistBytesPerBin(num uint32) (uint32, error) {
	return f.getHistU32(num, func(h *section.HistHdr) *uint32 { return &h.BytesPerBin })
}

// SetHistBytesPerBin accepts 0 (packed) or a fixed element width of 1, 2 or
// 4 bytes.
func (f *File) SetHistBytesPerBin(num, v uint32) error {
	switch v {
	case 0, 1, 2, 4:
	default:
		return fmt.Errorf("%w: bytesPerBin %d", errs.ErrInvalidInput, v)
	}

	return f.setHistU32(num, v, func(h *section.HistHdr) *uint32 { return &h.BytesPerBin })
}

func (f *File) GetHistFsPerBin(num uint32) (uint32, error) {
	return f.getHistU32(num, func(h *section.HistHdr) *uint32 { return &h.FsPerBin })
}

func (f *File) SetHistFsPerBin(num, v uint32) error {
	return f.setHistU32(num, v, func(h *section.HistHdr) *uint32 { return &h.FsPerBin })
}

func (f *File) GetHistT0_Ps(num uint32) (uint32, error) {
	return f.getHistU32(num, func(h *section.HistHdr) *uint32 { return &h.T0Ps })
}

func (f *File) SetHistT0_Ps(num, v uint32) error {
	return f.setHistU32(num, v, func(h *section.HistHdr) *uint32 { return &h.T0Ps })
}

func (f *File) GetHistT0_Bin(num uint32) (uint32, error) {
	return f.getHistU32(num, func(h *section.HistHdr) *uint32 { return &h.T0Bin })
}

func (f *File) SetHistT0_Bin(num, v uint32) error {
	return f.setHistU32(num, v, func(h *section.HistHdr) *uint32 { return &h.T0Bin })
}

func (f *File) GetHistGoodBin1(num uint32) (uint32, error) {
	return f.getHistU32(num, func(h *section.HistHdr) *uint32 { return &h.GoodBin1 })
}

func (f *File) SetHistGoodBin1(num, v uint32) error {
	return f.setHistU32(num, v, func(h *section.HistHdr) *uint32 { return &h.GoodBin1 })
}

func (f *File) GetHistGoodBin2(num uint32) (uint32, error) {
	return f.getHistU32(num, func(h *section.HistHdr) *uint32 { return &h.GoodBin2 })
}

func (f *File) SetHistGoodBin2(num, v uint32) error {
	return f.setHistU32(num, v, func(h *section.HistHdr) *uint32 { return &h.GoodBin2 })
}

func (f *File) GetHistBkgd1(num uint32) (uint32, error) {
	return f.getHistU32(num, func(h *section.HistHdr) *uint32 { return &h.Bkgd1 })
}

func (f *File) SetHistBkgd1(num, v uint32) error {
	return f.setHistU32(num, v, func(h *section.HistHdr) *uint32 { return &h.Bkgd1 })
}

func (f *File) GetHistBkgd2(num uint32) (uint32, error) {
	return f.getHistU32(num, func(h *section.HistHdr) *uint32 { return &h.Bkgd2 })
}

func (f *File) SetHistBkgd2(num, v uint32) error {
	return f.setHistU32(num, v, func(h *section.HistHdr) *uint32 { return &h.Bkgd2 })
}

func (f *File) GetHistNumEvents(num uint32) (uint32, error) {
	return f.getHistU32(num, func(h *section.HistHdr) *uint32 { return &h.NEvents })
}

func (f *File) SetHistNumEvents(num, v uint32) error {
	return f.setHistU32(num, v, func(h *section.HistHdr) *uint32 { return &h.NEvents })
}

func (f *File) GetHistTitle(num uint32) (string, error) {
	h, err := f.histHdr(num)
	if err != nil {
		return "", err
	}

	return h.Title, nil
}

func (f *File) SetHistTitle(num uint32, v string) error {
	if err := f.writable(); err != nil {
		return err
	}
	h, err := f.histHdr(num)
	if err != nil {
		return err
	}
	h.Title = v

	return nil
}

// GetHistSecondsPerBin returns the exact bin interval: the auxiliary
// seconds-per-bin section when present, otherwise fsPerBin scaled to
// seconds.
func (f *File) GetHistSecondsPerBin(num uint32) (float64, error) {
	grp, err := f.histGroup()
	if err != nil {
		return 0, err
	}
	if aux := grp.FindChild(section.ID{SecID: section.SecGenHistSPBID, InstanceID: num}); aux != nil {
		return aux.Payload.(*section.HistSecondsPerBin).SecondsPerBin, nil
	}

	h, err := f.histHdr(num)
	if err != nil {
		return 0, err
	}

	return float64(h.FsPerBin) * 1e-15, nil
}

// SetHistSecondsPerBin stores the bin interval. Intervals that are an exact
// integer count of femtoseconds land in fsPerBin; anything else is carried
// in the auxiliary seconds-per-bin section, which readers prefer.
func (f *File) SetHistSecondsPerBin(num uint32, v float64) error {
	if err := f.writable(); err != nil {
		return err
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: secondsPerBin %v", errs.ErrInvalidInput, v)
	}
	grp, err := f.histGroup()
	if err != nil {
		return err
	}
	h, err := f.histHdr(num)
	if err != nil {
		return err
	}

	if aux := grp.FindChild(section.ID{SecID: section.SecGenHistSPBID, InstanceID: num}); aux != nil {
		grp.RemoveFromGroup(aux)
	}

	// fsPerBin carries the interval only when it represents it exactly.
	fs := math.Round(v * 1e15)
	if fs >= 0 && fs <= float64(math.MaxUint32) && fs*1e-15 == v {
		h.FsPerBin = uint32(fs)

		return nil
	}

	aux := section.New(section.SecGenHistSPBID, num)
	aux.Payload.(*section.HistSecondsPerBin).SecondsPerBin = v

	return grp.AddToGroup(aux)
}

// GetHistData returns the bin counts as 32-bit values, unpacking the
// variable-width stream when the histogram is packed.
func (f *File) GetHistData(num uint32) ([]uint32, error) {
	h, err := f.histHdr(num)
	if err != nil {
		return nil, err
	}
	d, err := f.histDat(num)
	if err != nil {
		return nil, err
	}

	nBins := int(h.NBins)
	switch h.BytesPerBin {
	case 0:
		return pack.Unpack(d.Bytes, nBins)
	case 1, 2, 4:
		width := int(h.BytesPerBin)
		if len(d.Bytes) < nBins*width {
			return nil, fmt.Errorf("%w: histogram %d data holds %d bytes, need %d",
				errs.ErrCorruptSection, num, len(d.Bytes), nBins*width)
		}
		out := make([]uint32, nBins)
		for i := 0; i < nBins; i++ {
			v := uint32(0)
			for b := width - 1; b >= 0; b-- {
				v = v<<8 | uint32(d.Bytes[i*width+b])
			}
			out[i] = v
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%w: bytesPerBin %d", errs.ErrInvalidInput, h.BytesPerBin)
	}
}

// SetHistData stores the bin counts, packing them when the histogram's
// bytesPerBin is 0. The header's nBins and nBytes are kept in step.
func (f *File) SetHistData(num uint32, bins []uint32) error {
	if err := f.writable(); err != nil {
		return err
	}
	h, err := f.histHdr(num)
	if err != nil {
		return err
	}
	d, err := f.histDat(num)
	if err != nil {
		return err
	}

	switch h.BytesPerBin {
	case 0:
		d.Bytes = pack.Pack(bins)
	case 1, 2, 4:
		width := int(h.BytesPerBin)
		max := uint64(1)<<(8*width) - 1
		out := make([]byte, len(bins)*width)
		for i, v := range bins {
			if uint64(v) > max {
				return fmt.Errorf("%w: bin %d value %d exceeds %d-byte bins", errs.ErrInvalidInput, i, v, width)
			}
			for b := 0; b < width; b++ {
				out[i*width+b] = byte(v >> (8 * b))
			}
		}
		d.Bytes = out
	default:
		return fmt.Errorf("%w: bytesPerBin %d", errs.ErrInvalidInput, h.BytesPerBin)
	}

	h.NBins = uint32(len(bins))
	h.NBytes = uint32(len(d.Bytes))

	return nil
}
