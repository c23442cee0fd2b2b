package mud

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/mud/compress"
	"github.com/arloliu/mud/errs"
	"github.com/arloliu/mud/section"
)

// writeSampleTD builds a TD-µSR file with a run description, 8 histograms
// and 2 scalers, and writes it to dir.
func writeSampleTD(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "006663.msr")

	f, err := OpenWrite(path, FmtTriTd)
	require.NoError(t, err)

	require.NoError(t, f.SetRunDesc(SecGenRunDesc))
	require.NoError(t, f.SetExptNumber(1012))
	require.NoError(t, f.SetRunNumber(6663))
	require.NoError(t, f.SetTitle("Sample calibration"))
	require.NoError(t, f.SetLab("TRIUMF"))
	require.NoError(t, f.SetArea("M20"))
	require.NoError(t, f.SetMethod("TD-uSR"))
	require.NoError(t, f.SetSample("CaCO3"))
	require.NoError(t, f.SetTemperature("300K"))
	require.NoError(t, f.SetField("0.05T"))
	require.NoError(t, f.SetTimeBegin(time.Unix(766038000, 0)))
	require.NoError(t, f.SetTimeEnd(time.Unix(766040201, 0)))
	require.NoError(t, f.SetElapsedSec(2201))

	require.NoError(t, f.SetHists(GrpTriTdHist, 8))
	bins := make([]uint32, 32768)
	for i := range bins {
		bins[i] = uint32(i % 1000)
	}
	for i := uint32(1); i <= 8; i++ {
		require.NoError(t, f.SetHistBytesPerBin(i, 4))
		require.NoError(t, f.SetHistData(i, bins))
		require.NoError(t, f.SetHistTitle(i, "Counter"))
		require.NoError(t, f.SetHistFsPerBin(i, 625000000))
		require.NoError(t, f.SetHistT0_Bin(i, 120))
		require.NoError(t, f.SetHistGoodBin1(i, 125))
		require.NoError(t, f.SetHistGoodBin2(i, 32000))
		require.NoError(t, f.SetHistNumEvents(i, 32768))
	}

	require.NoError(t, f.SetScalers(GrpTriTdScaler, 2))
	require.NoError(t, f.SetScalerLabel(1, "Clock"))
	require.NoError(t, f.SetScalerCounts(1, [2]uint32{123456, 789}))

	require.NoError(t, f.CloseWrite())

	return path
}

func TestReadHeadlineFields(t *testing.T) {
	path := writeSampleTD(t, t.TempDir())

	f, err := OpenRead(path)
	require.NoError(t, err)
	defer f.CloseRead()

	assert.Equal(t, FmtTriTd, f.FormatID())

	run, err := f.GetRunNumber()
	require.NoError(t, err)
	assert.Equal(t, uint32(6663), run)

	title, err := f.GetTitle()
	require.NoError(t, err)
	assert.Equal(t, "Sample calibration", title)

	begin, err := f.TimeBeginAsTime()
	require.NoError(t, err)
	assert.Equal(t, time.Unix(766038000, 0).UTC(), begin)

	// Read-only handles reject setters.
	assert.ErrorIs(t, f.SetTitle("nope"), errs.ErrReadOnly)
}

func TestModifyAndWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeSampleTD(t, dir)
	out := filepath.Join(dir, "out.msr")

	f, err := OpenReadWrite(path)
	require.NoError(t, err)
	require.NoError(t, f.SetTitle("New Title"))
	require.NoError(t, f.CloseWriteFile(out))

	g, err := OpenRead(out)
	require.NoError(t, err)
	defer g.CloseRead()

	title, err := g.GetTitle()
	require.NoError(t, err)
	assert.Equal(t, "New Title", title)

	// Everything else survives.
	run, err := g.GetRunNumber()
	require.NoError(t, err)
	assert.Equal(t, uint32(6663), run)

	lab, err := g.GetLab()
	require.NoError(t, err)
	assert.Equal(t, "TRIUMF", lab)

	temp, err := g.GetTemperature()
	require.NoError(t, err)
	assert.Equal(t, "300K", temp)

	counts, err := g.GetScalerCounts(1)
	require.NoError(t, err)
	assert.Equal(t, [2]uint32{123456, 789}, counts)
}

func TestHistogramLocate(t *testing.T) {
	path := writeSampleTD(t, t.TempDir())

	f, err := OpenRead(path)
	require.NoError(t, err)
	defer f.CloseRead()

	typ, n, err := f.GetHists()
	require.NoError(t, err)
	assert.Equal(t, GrpTriTdHist, typ)
	assert.Equal(t, uint32(8), n)

	nBins, err := f.GetHistNumBins(3)
	require.NoError(t, err)
	assert.Equal(t, uint32(32768), nBins)

	data, err := f.GetHistData(3)
	require.NoError(t, err)
	assert.Len(t, data, 32768)
	assert.Equal(t, uint32(999), data[999])
}

func TestSearchPath(t *testing.T) {
	path := writeSampleTD(t, t.TempDir())

	f, err := OpenRead(path)
	require.NoError(t, err)
	defer f.CloseRead()

	third := f.Root().Search(
		section.ID{SecID: section.SecGrpID, InstanceID: section.FmtTriTdID},
		section.ID{SecID: section.SecGrpID, InstanceID: section.GrpTriTdHistID},
		section.ID{SecID: section.SecGenHistHdrID, InstanceID: 3},
	)
	require.NotNil(t, third)
	assert.Equal(t, uint32(32768), third.Payload.(*section.HistHdr).NBins)
}

func TestUnknownSectionSurvivesRewrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "unknown.msr")
	out := filepath.Join(dir, "unknown-out.msr")

	f, err := OpenWrite(path, FmtGen)
	require.NoError(t, err)
	unknown := section.New(0x12345678, 1)
	unknown.Payload.(*section.Opaque).Bytes = []byte{1, 2, 3, 4, 5, 6, 7}
	require.NoError(t, f.Root().AddToGroup(unknown))
	require.NoError(t, f.CloseWrite())

	first, err := os.ReadFile(path)
	require.NoError(t, err)

	g, err := OpenReadWrite(path)
	require.NoError(t, err)
	m := g.Root().Group().Members[0]
	assert.Equal(t, uint32(0x12345678), m.SecID)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7}, m.Payload.(*section.Opaque).Bytes)
	require.NoError(t, g.CloseWriteFile(out))

	second, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPackedHistogramRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "packed.msr")

	xs := []uint32{0, 1, 255, 256, 65535, 65536, 0xFFFFFFFF}

	f, err := OpenWrite(path, FmtTriTd)
	require.NoError(t, err)
	require.NoError(t, f.SetRunDesc(SecGenRunDesc))
	require.NoError(t, f.SetHists(GrpTriTdHist, 1))
	require.NoError(t, f.SetHistBytesPerBin(1, 0))
	require.NoError(t, f.SetHistData(1, xs))
	require.NoError(t, f.CloseWrite())

	g, err := OpenRead(path)
	require.NoError(t, err)
	defer g.CloseRead()

	bpb, err := g.GetHistBytesPerBin(1)
	require.NoError(t, err)
	assert.Zero(t, bpb)

	out, err := g.GetHistData(1)
	require.NoError(t, err)
	assert.Equal(t, xs, out)
}

func TestSecondsPerBin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spb.msr")

	f, err := OpenWrite(path, FmtTriTd)
	require.NoError(t, err)
	require.NoError(t, f.SetHists(GrpTriTdHist, 2))

	// An interval stated in whole femtoseconds stays in fsPerBin.
	require.NoError(t, f.SetHistFsPerBin(1, 625000))

	// An interval fsPerBin cannot represent goes to the auxiliary section.
	require.NoError(t, f.SetHistSecondsPerBin(2, 1.0/3.0))
	require.NoError(t, f.CloseWrite())

	g, err := OpenRead(path)
	require.NoError(t, err)
	defer g.CloseRead()

	spb, err := g.GetHistSecondsPerBin(1)
	require.NoError(t, err)
	assert.InDelta(t, 625e-12, spb, 1e-20)

	spb, err = g.GetHistSecondsPerBin(2)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3.0, spb, 1e-16)
}

func TestTIRunDescription(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ti.msr")

	f, err := OpenWrite(path, FmtTriTi)
	require.NoError(t, err)
	require.NoError(t, f.SetRunDesc(SecTriTiRunDesc))
	require.NoError(t, f.SetRunNumber(411))
	require.NoError(t, f.SetSubtitle("integral mode"))
	require.NoError(t, f.SetComment1("first"))

	// TD-only fields are absent from the TI variant.
	assert.ErrorIs(t, f.SetTemperature("300K"), errs.ErrNotFound)

	require.NoError(t, f.CloseWrite())

	g, err := OpenRead(path)
	require.NoError(t, err)
	defer g.CloseRead()

	sub, err := g.GetSubtitle()
	require.NoError(t, err)
	assert.Equal(t, "integral mode", sub)

	_, err = g.GetTemperature()
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestIndVarsAndComments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "iv.msr")

	f, err := OpenWrite(path, FmtGen)
	require.NoError(t, err)

	require.NoError(t, f.SetIndVars(GrpGenIndVarArr, 1))
	require.NoError(t, f.SetIndVarName(1, "Temperature"))
	require.NoError(t, f.SetIndVarUnits(1, "K"))
	require.NoError(t, f.SetIndVarMean(1, 299.7))
	require.NoError(t, f.SetIndVarData(1, 4, 1, []byte{1, 0, 0, 0, 2, 0, 0, 0}))
	require.NoError(t, f.SetIndVarTimeData(1, []uint32{100, 200}))

	require.NoError(t, f.SetComments(2))
	require.NoError(t, f.SetCommentAuthor(1, "operator"))
	require.NoError(t, f.SetCommentBody(1, "beam stable"))
	require.NoError(t, f.SetCommentNext(1, 2))
	require.NoError(t, f.SetCommentTime(1, time.Unix(766038000, 0)))

	require.NoError(t, f.CloseWrite())

	g, err := OpenRead(path)
	require.NoError(t, err)
	defer g.CloseRead()

	_, n, err := g.GetIndVars()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), n)

	name, err := g.GetIndVarName(1)
	require.NoError(t, err)
	assert.Equal(t, "Temperature", name)

	mean, err := g.GetIndVarMean(1)
	require.NoError(t, err)
	assert.InDelta(t, 299.7, mean, 1e-12)

	numData, err := g.GetIndVarNumData(1)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), numData)

	times, err := g.GetIndVarTimeData(1)
	require.NoError(t, err)
	assert.Equal(t, []uint32{100, 200}, times)

	_, n, err = g.GetComments()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), n)

	author, err := g.GetCommentAuthor(1)
	require.NoError(t, err)
	assert.Equal(t, "operator", author)

	next, err := g.GetCommentNext(1)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), next)
}

func TestCompressedContainers(t *testing.T) {
	dir := t.TempDir()
	plain := writeSampleTD(t, dir)

	f, err := OpenRead(plain)
	require.NoError(t, err)
	wantDigest, err := f.Digest()
	require.NoError(t, err)
	require.NoError(t, f.CloseRead())

	for _, typ := range []compress.Type{compress.Gzip, compress.Zstd, compress.LZ4} {
		t.Run(typ.String(), func(t *testing.T) {
			path := filepath.Join(dir, "run-"+typ.String())

			src, err := OpenReadWrite(plain, WithCompression(typ))
			require.NoError(t, err)
			require.NoError(t, src.CloseWriteFile(path))

			// The container is actually compressed.
			raw, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, typ, compress.Sniff(raw))

			g, err := OpenRead(path)
			require.NoError(t, err)
			defer g.CloseRead()

			digest, err := g.Digest()
			require.NoError(t, err)
			assert.Equal(t, wantDigest, digest)
		})
	}
}

func TestDumpJSON(t *testing.T) {
	path := writeSampleTD(t, t.TempDir())

	f, err := OpenRead(path)
	require.NoError(t, err)
	defer f.CloseRead()

	var buf bytes.Buffer
	require.NoError(t, f.DumpJSON(&buf))

	out := buf.String()
	assert.True(t, strings.Contains(out, "Sample calibration"))
	assert.True(t, strings.Contains(out, "runDesc"))
	assert.True(t, strings.Contains(out, "histHdr"))
}

func TestOpenFailures(t *testing.T) {
	dir := t.TempDir()

	_, err := OpenRead(filepath.Join(dir, "missing.msr"))
	assert.ErrorIs(t, err, errs.ErrIOFailure)

	bad := filepath.Join(dir, "bad.msr")
	require.NoError(t, os.WriteFile(bad, []byte("not a mud file at all"), 0o644))
	_, err = OpenRead(bad)
	assert.ErrorIs(t, err, errs.ErrInvalidFile)

	short := filepath.Join(dir, "short.msr")
	require.NoError(t, os.WriteFile(short, []byte{1, 2, 3}, 0o644))
	_, err = OpenRead(short)
	assert.ErrorIs(t, err, errs.ErrInvalidFile)

	_, err = OpenWrite(filepath.Join(dir, "x.msr"), 0x999)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestCloseSemantics(t *testing.T) {
	path := writeSampleTD(t, t.TempDir())

	f, err := OpenRead(path)
	require.NoError(t, err)
	require.NoError(t, f.CloseRead())

	assert.ErrorIs(t, f.CloseRead(), errs.ErrClosed)
	_, err = f.GetRunNumber()
	assert.ErrorIs(t, err, errs.ErrClosed)

	// A read-only handle refuses CloseWrite; the tree stays for CloseRead.
	g, err := OpenRead(path)
	require.NoError(t, err)
	assert.ErrorIs(t, g.CloseWrite(), errs.ErrReadOnly)
	require.NoError(t, g.CloseRead())
}

func TestSettersRequireInitializer(t *testing.T) {
	f, err := OpenWrite(filepath.Join(t.TempDir(), "fresh.msr"), FmtTriTd)
	require.NoError(t, err)

	assert.ErrorIs(t, f.SetRunNumber(1), errs.ErrNotFound)
	assert.ErrorIs(t, f.SetHistTitle(1, "x"), errs.ErrNotFound)
	assert.ErrorIs(t, f.SetScalerLabel(1, "x"), errs.ErrNotFound)
	require.NoError(t, f.CloseRead())
}
