package section

import "github.com/arloliu/mud/wire"

// Scaler holds one scaler channel: the two count words and the label.
type Scaler struct {
	Counts [2]uint32
	Label  string
}

func (s *Scaler) Decode(r *wire.Reader, _ uint32) error {
	var err error
	if s.Counts[0], err = r.ReadU32(); err != nil {
		return err
	}
	if s.Counts[1], err = r.ReadU32(); err != nil {
		return err
	}
	if s.Label, err = r.ReadStr(); err != nil {
		return err
	}

	return nil
}

func (s *Scaler) Encode(w *wire.Writer) error {
	w.WriteU32(s.Counts[0])
	w.WriteU32(s.Counts[1])

	return w.WriteStr(s.Label)
}

func (s *Scaler) Size() uint32 {
	return 2*4 + wire.StrSize(s.Label)
}
