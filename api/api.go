package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/aquilax/postboard/post"
)

// Client is the remote board API.
type Client interface {
	Users(ctx context.Context) ([]post.User, error)
	Texts(ctx context.Context, q TextQuery) ([]post.Post, error)
	Likes(ctx context.Context) ([]post.Like, error)
	Images(ctx context.Context) ([]post.Image, error)
	CreateText(ctx context.Context, t NewText) (*post.Post, error)
	CreateUser(ctx context.Context, name, description string) (*post.User, error)
	PutLike(ctx context.Context, id post.PostID, count int) (*post.Like, error)
}

// TextQuery selects texts newest first. Texts by ExcludeUserIDs are left
// out.
type TextQuery struct {
	Limit          int
	Skip           int
	ExcludeUserIDs []post.UserID
}

// NewText is a text submission. Empty reply ids are not sent.
type NewText struct {
	Text            string      `json:"text"`
	InReplyToUserID post.UserID `json:"in_reply_to_user_id,omitempty"`
	InReplyToTextID post.PostID `json:"in_reply_to_text_id,omitempty"`
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.URL, e.Code, e.Body)
}

// IsTransient reports whether err is worth retrying: network failures,
// timeouts and 5xx/429 responses.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code >= http.StatusInternalServerError || se.Code == http.StatusTooManyRequests
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var ne net.Error
	return errors.As(err, &ne) || errors.Is(err, context.DeadlineExceeded)
}
