package section

import "github.com/arloliu/mud/wire"

// RunDesc is the generic run description: experiment identity, run timing,
// and the free-form sample environment strings.
type RunDesc struct {
	ExptNumber uint32
	RunNumber  uint32
	TimeBegin  uint32
	TimeEnd    uint32
	ElapsedSec uint32

	Title        string
	Lab          string
	Area         string
	Method       string
	Apparatus    string
	Insert       string
	Sample       string
	Orient       string
	Das          string
	Experimenter string
	Temperature  string
	Field        string
}

func (d *RunDesc) Decode(r *wire.Reader, _ uint32) error {
	var err error
	if d.ExptNumber, err = r.ReadU32(); err != nil {
		return err
	}
	if d.RunNumber, err = r.ReadU32(); err != nil {
		return err
	}
	if d.TimeBegin, err = r.ReadTime(); err != nil {
		return err
	}
	if d.TimeEnd, err = r.ReadTime(); err != nil {
		return err
	}
	if d.ElapsedSec, err = r.ReadU32(); err != nil {
		return err
	}
	for _, dst := range []*string{
		&d.Title, &d.Lab, &d.Area, &d.Method, &d.Apparatus, &d.Insert,
		&d.Sample, &d.Orient, &d.Das, &d.Experimenter, &d.Temperature, &d.Field,
	} {
		if *dst, err = r.ReadStr(); err != nil {
			return err
		}
	}

	return nil
}

func (d *RunDesc) Encode(w *wire.Writer) error {
	w.WriteU32(d.ExptNumber)
	w.WriteU32(d.RunNumber)
	w.WriteTime(d.TimeBegin)
	w.WriteTime(d.TimeEnd)
	w.WriteU32(d.ElapsedSec)
	for _, s := range []string{
		d.Title, d.Lab, d.Area, d.Method, d.Apparatus, d.Insert,
		d.Sample, d.Orient, d.Das, d.Experimenter, d.Temperature, d.Field,
	} {
		if err := w.WriteStr(s); err != nil {
			return err
		}
	}

	return nil
}

func (d *RunDesc) Size() uint32 {
	total := uint32(5 * 4)
	for _, s := range []string{
		d.Title, d.Lab, d.Area, d.Method, d.Apparatus, d.Insert,
		d.Sample, d.Orient, d.Das, d.Experimenter, d.Temperature, d.Field,
	} {
		total += wire.StrSize(s)
	}

	return total
}

// TIRunDesc is the time-integral variant: the same identity and timing
// fields, with subtitle and three comment lines in place of the
// temperature and field strings.
type TIRunDesc struct {
	ExptNumber uint32
	RunNumber  uint32
	TimeBegin  uint32
	TimeEnd    uint32
	ElapsedSec uint32

	Title        string
	Lab          string
	Area         string
	Method       string
	Apparatus    string
	Insert       string
	Sample       string
	Orient       string
	Das          string
	Experimenter string
	Subtitle     string
	Comment1     string
	Comment2     string
	Comment3     string
}

func (d *TIRunDesc) strs() []*string {
	return []*string{
		&d.Title, &d.Lab, &d.Area, &d.Method, &d.Apparatus, &d.Insert,
		&d.Sample, &d.Orient, &d.Das, &d.Experimenter,
		&d.Subtitle, &d.Comment1, &d.Comment2, &d.Comment3,
	}
}

func (d *TIRunDesc) Decode(r *wire.Reader, _ uint32) error {
	var err error
	if d.ExptNumber, err = r.ReadU32(); err != nil {
		return err
	}
	if d.RunNumber, err = r.ReadU32(); err != nil {
		return err
	}
	if d.TimeBegin, err = r.ReadTime(); err != nil {
		return err
	}
	if d.TimeEnd, err = r.ReadTime(); err != nil {
		return err
	}
	if d.ElapsedSec, err = r.ReadU32(); err != nil {
		return err
	}
	for _, dst := range d.strs() {
		if *dst, err = r.ReadStr(); err != nil {
			return err
		}
	}

	return nil
}

func (d *TIRunDesc) Encode(w *wire.Writer) error {
	w.WriteU32(d.ExptNumber)
	w.WriteU32(d.RunNumber)
	w.WriteTime(d.TimeBegin)
	w.WriteTime(d.TimeEnd)
	w.WriteU32(d.ElapsedSec)
	for _, s := range d.strs() {
		if err := w.WriteStr(*s); err != nil {
			return err
		}
	}

	return nil
}

func (d *TIRunDesc) Size() uint32 {
	total := uint32(5 * 4)
	for _, s := range d.strs() {
		total += wire.StrSize(*s)
	}

	return total
}
