package section

import "github.com/arloliu/mud/wire"

// Opaque preserves sections with unregistered secIDs. The payload bytes are
// carried verbatim through a decode/encode round trip, which keeps files
// from newer producers readable without interpreting their extensions.
type Opaque struct {
	Bytes []byte
}

func (o *Opaque) Decode(r *wire.Reader, size uint32) error {
	b, err := r.ReadRaw(int(size))
	if err != nil {
		return err
	}
	o.Bytes = b

	return nil
}

func (o *Opaque) Encode(w *wire.Writer) error {
	w.WriteRaw(o.Bytes)

	return nil
}

func (o *Opaque) Size() uint32 {
	return uint32(len(o.Bytes))
}

// EOF is the zero-payload terminator the writer appends after the file
// group. Readers stop at the group boundary, so it is tolerated, not
// required.
type EOF struct{}

func (e *EOF) Decode(_ *wire.Reader, _ uint32) error { return nil }

func (e *EOF) Encode(_ *wire.Writer) error { return nil }

func (e *EOF) Size() uint32 { return 0 }
