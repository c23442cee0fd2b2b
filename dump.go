package mud

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/samber/lo"

	"github.com/arloliu/mud/section"
)

// sectionView is the JSON shape of one section in a dump. Group members
// nest; leaf payloads marshal their exported fields directly.
type sectionView struct {
	SecID      string        `json:"secID"`
	InstanceID uint32        `json:"instanceID"`
	Type       string        `json:"type"`
	Size       uint32        `json:"size"`
	Fields     any           `json:"fields,omitempty"`
	Members    []sectionView `json:"members,omitempty"`
}

func typeName(p section.Payload) string {
	switch p.(type) {
	case *section.Group:
		return "group"
	case *section.RunDesc:
		return "runDesc"
	case *section.TIRunDesc:
		return "tiRunDesc"
	case *section.HistHdr:
		return "histHdr"
	case *section.HistDat:
		return "histDat"
	case *section.HistSecondsPerBin:
		return "histSecondsPerBin"
	case *section.Scaler:
		return "scaler"
	case *section.IndVar:
		return "indVar"
	case *section.IndVarArr:
		return "indVarArr"
	case *section.Comment:
		return "comment"
	case *section.EOF:
		return "eof"
	default:
		return "opaque"
	}
}

func viewOf(s *section.Section) sectionView {
	v := sectionView{
		SecID:      fmt.Sprintf("0x%08X", s.SecID),
		InstanceID: s.InstanceID,
		Type:       typeName(s.Payload),
		Size:       s.Size,
	}
	if g := s.Group(); g != nil {
		v.Members = lo.Map(g.Members, func(m *section.Section, _ int) sectionView {
			return viewOf(m)
		})
	} else if _, ok := s.Payload.(*section.EOF); !ok {
		v.Fields = s.Payload
	}

	return v
}

// DumpJSON writes the decoded tree to w as indented JSON; the engine's
// human-readable show operation. Sizes reflect the current tree state.
func (f *File) DumpJSON(w io.Writer) error {
	if err := f.readable(); err != nil {
		return err
	}
	f.root.Refresh()

	out, err := json.MarshalIndent(viewOf(f.root), "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(out)

	return err
}
