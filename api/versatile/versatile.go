// Package versatile talks to the versatile API over HTTP.
package versatile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aquilax/postboard/api"
	"github.com/aquilax/postboard/post"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://versatileapi.herokuapp.com"

	// static bearer strings expected by the API
	textAuthorization = "HelloWorld"
	likeAuthorization = "LOVE"

	maxErrorBody = 512
)

type Versatile struct {
	baseURL string
	hc      *http.Client
	log     *zap.Logger
}

func New(baseURL string, log *zap.Logger) *Versatile {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Versatile{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

// WithHTTPClient replaces the underlying http.Client.
func (v *Versatile) WithHTTPClient(hc *http.Client) *Versatile {
	v.hc = hc
	return v
}

func (v *Versatile) Users(ctx context.Context) ([]post.User, error) {
	var users []post.User
	err := v.do(ctx, http.MethodGet, "/api/user/all/", "", nil, &users)
	return users, err
}

func (v *Versatile) Texts(ctx context.Context, q api.TextQuery) ([]post.Post, error) {
	var posts []post.Post
	err := v.do(ctx, http.MethodGet, "/api/text/all/?"+TextQueryValues(q).Encode(), "", nil, &posts)
	return posts, err
}

func (v *Versatile) Likes(ctx context.Context) ([]post.Like, error) {
	var likes []post.Like
	err := v.do(ctx, http.MethodGet, "/api/like/all/", "", nil, &likes)
	return likes, err
}

func (v *Versatile) Images(ctx context.Context) ([]post.Image, error) {
	var images []post.Image
	err := v.do(ctx, http.MethodGet, "/api/image/all/", "", nil, &images)
	return images, err
}

func (v *Versatile) CreateText(ctx context.Context, t api.NewText) (*post.Post, error) {
	var p post.Post
	if err := v.do(ctx, http.MethodPost, "/api/text", textAuthorization, t, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (v *Versatile) CreateUser(ctx context.Context, name, description string) (*post.User, error) {
	var u post.User
	body := map[string]string{"name": name, "description": description}
	if err := v.do(ctx, http.MethodPost, "/api/user/create_user", textAuthorization, body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// PutLike replaces the like count of the post. The API has no increment,
// so concurrent writers overwrite each other.
func (v *Versatile) PutLike(ctx context.Context, id post.PostID, count int) (*post.Like, error) {
	var l post.Like
	body := map[string]int{"like_count": count}
	if err := v.do(ctx, http.MethodPut, "/api/like/"+url.PathEscape(id), likeAuthorization, body, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// TextQueryValues builds the query string of the text collection.
func TextQueryValues(q api.TextQuery) url.Values {
	val := url.Values{}
	val.Set("$orderby", "_created_at desc")
	val.Set("$limit", strconv.Itoa(q.Limit))
	if q.Skip > 0 {
		val.Set("$skip", strconv.Itoa(q.Skip))
	}
	if len(q.ExcludeUserIDs) > 0 {
		val.Set("$filter", ExcludeFilter(q.ExcludeUserIDs))
	}
	return val
}

// ExcludeFilter returns `_user_id ne 'a' and _user_id ne 'b'`.
func ExcludeFilter(ids []post.UserID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = "_user_id ne '" + strings.ReplaceAll(id, "'", "''") + "'"
	}
	return strings.Join(parts, " and ")
}

func (v *Versatile) do(ctx context.Context, method, path, authorization string, in, out interface{}) error {
	u := v.baseURL + path
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	start := time.Now()
	resp, err := v.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	v.log.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &api.StatusError{Method: method, URL: path, Code: resp.StatusCode, Body: string(b)}
	}
	// an empty success body leaves out untouched
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
