package board

import "github.com/aquilax/postboard/post"

const (
	shortUserIDLen = 10
	shortTextIDLen = 8
)

// Form holds the values of the input fields.
type Form struct {
	Text            string
	ReplyUserID     string
	ReplyTextID     string
	UserName        string
	UserDescription string
	BlockUserIDs    string
}

// State is everything the page shows. It is only changed through Reduce.
type State struct {
	Snapshot Snapshot
	Form     Form
	// Loads counts applied snapshots.
	Loads int
}

type Event interface {
	isEvent()
}

// Loaded replaces the displayed snapshot. Overlapping loads are applied in
// the order they finish.
type Loaded struct{ Snapshot Snapshot }

// FormChanged replaces the input fields.
type FormChanged struct{ Form Form }

// PostSubmitted clears the post inputs after a successful submission.
type PostSubmitted struct{}

// ProfileSaved sets the identity inputs.
type ProfileSaved struct{ Profile Profile }

// BlockListSaved sets the block list input.
type BlockListSaved struct{ IDs string }

// ReplyTo fills the reply inputs with the short ids of a comment.
type ReplyTo struct{ Comment post.Comment }

func (Loaded) isEvent()         {}
func (FormChanged) isEvent()    {}
func (PostSubmitted) isEvent()  {}
func (ProfileSaved) isEvent()   {}
func (BlockListSaved) isEvent() {}
func (ReplyTo) isEvent()        {}

// Reduce returns the state after e.
func Reduce(s State, e Event) State {
	switch e := e.(type) {
	case Loaded:
		s.Snapshot = e.Snapshot
		s.Loads++
	case FormChanged:
		s.Form = e.Form
	case PostSubmitted:
		s.Form.Text = ""
		s.Form.ReplyUserID = ""
		s.Form.ReplyTextID = ""
	case ProfileSaved:
		s.Form.UserName = e.Profile.Name
		s.Form.UserDescription = e.Profile.Description
	case BlockListSaved:
		s.Form.BlockUserIDs = e.IDs
	case ReplyTo:
		s.Form.ReplyUserID = post.Short(e.Comment.UserID, shortUserIDLen)
		s.Form.ReplyTextID = post.Short(e.Comment.ID, shortTextIDLen)
	}
	return s
}
