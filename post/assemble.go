package post

import "time"

const (
	// DateLayout is the display form of post timestamps (MM/DD HH:mm:ss).
	DateLayout = "01/02 15:04:05"
	// UnknownUserName marks a reply target user that is not in the user list.
	UnknownUserName = "-"

	shortTextIDLen = 8
)

// Assemble joins the raw collections into comments in ascending creation
// order. c.Posts is expected newest first, as the text query returns it.
func Assemble(c Collections, loc *time.Location) CommentList {
	if loc == nil {
		loc = time.Local
	}
	names := make(map[UserID]string, len(c.Users))
	for _, u := range c.Users {
		if _, found := names[u.ID]; !found {
			names[u.ID] = u.Name
		}
	}
	likes := make(map[PostID]int)
	for _, l := range c.Likes {
		likes[l.ID] += l.LikeCount
	}
	images := make(map[PostID][]string)
	for _, img := range c.Images {
		images[img.BindTextID] = append(images[img.BindTextID], img.Base64)
	}

	result := make(CommentList, len(c.Posts))
	last := len(c.Posts) - 1
	for i, p := range c.Posts {
		cm := Comment{
			ID:        p.ID,
			UserID:    p.UserID,
			UserName:  names[p.UserID],
			Created:   p.CreatedAt,
			Updated:   p.UpdatedAt,
			CreatedAt: p.CreatedAt.In(loc).Format(DateLayout),
			UpdatedAt: p.UpdatedAt.In(loc).Format(DateLayout),
			Text:      p.Text,
			LikeCount: likes[p.ID],
			Images:    images[p.ID],
		}
		if cm.Images == nil {
			cm.Images = []string{}
		}
		if p.InReplyToUserID != nil {
			name, found := names[*p.InReplyToUserID]
			if !found {
				name = UnknownUserName
			}
			cm.ReplyToUserName = name
		}
		if p.InReplyToTextID != nil {
			cm.ReplyToTextID = Short(*p.InReplyToTextID, shortTextIDLen)
			cm.ParentID = *p.InReplyToTextID
		}
		result[last-i] = cm
	}
	return result
}

// Find returns the comment with the given id.
func (cl CommentList) Find(id PostID) (Comment, bool) {
	for _, c := range cl {
		if c.ID == id {
			return c, true
		}
	}
	return Comment{}, false
}
