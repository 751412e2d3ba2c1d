package post

import (
	"time"
)

type UserID = string
type PostID = string

// User is a board user as returned by the user collection.
type User struct {
	ID          UserID `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Post is a raw text record. The reply fields are nil when the API omits
// them.
type Post struct {
	ID              PostID    `json:"id"`
	UserID          UserID    `json:"_user_id"`
	CreatedAt       time.Time `json:"_created_at"`
	UpdatedAt       time.Time `json:"_updated_at"`
	Text            string    `json:"text"`
	InReplyToUserID *UserID   `json:"in_reply_to_user_id,omitempty"`
	InReplyToTextID *PostID   `json:"in_reply_to_text_id,omitempty"`
}

// Like is an aggregate like row for the post with the same ID.
type Like struct {
	ID        PostID `json:"id"`
	LikeCount int    `json:"like_count"`
}

type Image struct {
	BindTextID PostID `json:"bind_text_id"`
	Base64     string `json:"base64"`
}

// Collections holds one fetch of every remote collection. Posts are in the
// order the API returned them, newest first.
type Collections struct {
	Users  []User
	Posts  []Post
	Likes  []Like
	Images []Image
}

// Comment is the display-ready form of a Post.
type Comment struct {
	ID              PostID
	UserID          UserID
	UserName        string
	ReplyToUserName string
	ReplyToTextID   string
	ParentID        PostID
	Created         time.Time
	Updated         time.Time
	CreatedAt       string
	UpdatedAt       string
	Text            string
	LikeCount       int
	Images          []string
}

type CommentList []Comment

// Thread is a comment together with its replies.
type Thread struct {
	Comment
	Level    int
	Children []Thread
}

// Short returns the first n characters of id.
func Short(id string, n int) string {
	r := []rune(id)
	if len(r) <= n {
		return id
	}
	return string(r[:n])
}

// Edited reports whether the comment was updated after it was created.
func (c Comment) Edited() bool {
	return c.CreatedAt != c.UpdatedAt
}
