package section

import "github.com/arloliu/mud/wire"

// Comment is one entry of the threaded comment log. Reply links refer to
// other comments' IDs within the comment group.
type Comment struct {
	ID          uint32
	PrevReplyID uint32
	NextReplyID uint32
	Time        uint32

	Author  string
	Title   string
	Body    string
}

func (c *Comment) Decode(r *wire.Reader, _ uint32) error {
	var err error
	if c.ID, err = r.ReadU32(); err != nil {
		return err
	}
	if c.PrevReplyID, err = r.ReadU32(); err != nil {
		return err
	}
	if c.NextReplyID, err = r.ReadU32(); err != nil {
		return err
	}
	if c.Time, err = r.ReadTime(); err != nil {
		return err
	}
	for _, s := range []*string{&c.Author, &c.Title, &c.Body} {
		if *s, err = r.ReadStr(); err != nil {
			return err
		}
	}

	return nil
}

func (c *Comment) Encode(w *wire.Writer) error {
	w.WriteU32(c.ID)
	w.WriteU32(c.PrevReplyID)
	w.WriteU32(c.NextReplyID)
	w.WriteTime(c.Time)
	for _, s := range []string{c.Author, c.Title, c.Body} {
		if err := w.WriteStr(s); err != nil {
			return err
		}
	}

	return nil
}

func (c *Comment) Size() uint32 {
	return 4*4 + wire.StrSize(c.Author) + wire.StrSize(c.Title) + wire.StrSize(c.Body)
}
