package mud

import (
	"fmt"
	"time"

	"github.com/arloliu/mud/errs"
	"github.com/arloliu/mud/section"
)

func (f *File) comment(num uint32) (*section.Comment, error) {
	grp, err := f.findGroup(section.GrpCmtID)
	if err != nil {
		return nil, err
	}
	sec := grp.FindChild(section.ID{SecID: section.SecCmtID, InstanceID: num})
	if sec == nil {
		return nil, fmt.Errorf("%w: comment %d", errs.ErrNotFound, num)
	}

	return sec.Payload.(*section.Comment), nil
}

// GetComments returns the comment group type and the number of comments.
// Comments 1..3 of the TI run description are a separate concern.
func (f *File) GetComments() (uint32, uint32, error) {
	grp, err := f.findGroup(section.GrpCmtID)
	if err != nil {
		return 0, 0, err
	}

	return grp.InstanceID, countMembers(grp, section.SecCmtID), nil
}

// SetComments replaces any existing comment group with n zero-initialized
// comments, numbered 1..n with matching comment IDs.
func (f *File) SetComments(n uint32) error {
	grp, err := f.replaceGroup(section.GrpCmtID, section.GrpCmtID)
	if err != nil {
		return err
	}
	for i := uint32(1); i <= n; i++ {
		sec := section.New(section.SecCmtID, i)
		sec.Payload.(*section.Comment).ID = i
		if err := grp.AddToGroup(sec); err != nil {
			return err
		}
	}

	return nil
}

func (f *File) GetCommentPrev(num uint32) (uint32, error) {
	c, err := f.comment(num)
	if err != nil {
		return 0, err
	}

	return c.PrevReplyID, nil
}

func (f *File) SetCommentPrev(num, v uint32) error {
	if err := f.writable(); err != nil {
		return err
	}
	c, err := f.comment(num)
	if err != nil {
		return err
	}
	c.PrevReplyID = v

	return nil
}

func (f *File) GetCommentNext(num uint32) (uint32, error) {
	c, err := f.comment(num)
	if err != nil {
		return 0, err
	}

	return c.NextReplyID, nil
}

func (f *File) SetCommentNext(num, v uint32) error {
	if err := f.writable(); err != nil {
		return err
	}
	c, err := f.comment(num)
	if err != nil {
		return err
	}
	c.NextReplyID = v

	return nil
}

func (f *File) GetCommentTime(num uint32) (uint32, error) {
	c, err := f.comment(num)
	if err != nil {
		return 0, err
	}

	return c.Time, nil
}

func (f *File) SetCommentTime(num uint32, t time.Time) error {
	if err := f.writable(); err != nil {
		return err
	}
	v, err := epochSeconds(t)
	if err != nil {
		return err
	}
	c, err := f.comment(num)
	if err != nil {
		return err
	}
	c.Time = v

	return nil
}

func (f *File) GetCommentAuthor(num uint32) (string, error) {
	c, err := f.comment(num)
	if err != nil {
		return "", err
	}

	return c.Author, nil
}

func (f *File) SetCommentAuthor(num uint32, v string) error {
	if err := f.writable(); err != nil {
		return err
	}
	c, err := f.comment(num)
	if err != nil {
		return err
	}
	c.Author = v

	return nil
}

func (f *File) GetCommentTitle(num uint32) (string, error) {
	c, err := f.comment(num)
	if err != nil {
		return "", err
	}

	return c.Title, nil
}

func (f *File) SetCommentTitle(num uint32, v string) error {
	if err := f.writable(); err != nil {
		return err
	}
	c, err := f.comment(num)
	if err != nil {
		return err
	}
	c.Title = v

	return nil
}

func (f *File) GetCommentBody(num uint32) (string, error) {
	c, err := f.comment(num)
	if err != nil {
		return "", err
	}

	return c.Body, nil
}

func (f *File) SetCommentBody(num uint32, v string) error {
	if err := f.writable(); err != nil {
		return err
	}
	c, err := f.comment(num)
	if err != nil {
		return err
	}
	c.Body = v

	return nil
}
