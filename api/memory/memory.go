// Package memory is an in-process implementation of the board API.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aquilax/postboard/api"
	"github.com/aquilax/postboard/post"
	"github.com/google/uuid"
)

type Memory struct {
	mu     sync.Mutex
	users  []post.User
	posts  []post.Post
	likes  []post.Like
	images []post.Image
	now    func() time.Time
}

func New() *Memory {
	return &Memory{now: time.Now}
}

func min(value int, values ...int) int {
	for _, v := range values {
		if v < value {
			value = v
		}
	}
	return value
}

func find(pl []post.Post, filter func(p post.Post) bool) []post.Post {
	var result []post.Post
	for _, p := range pl {
		if filter(p) {
			result = append(result, p)
		}
	}
	return result
}

func newID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// Seed adds records as they would come back from the remote collections.
func (m *Memory) Seed(c post.Collections) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = append(m.users, c.Users...)
	m.posts = append(m.posts, c.Posts...)
	m.likes = append(m.likes, c.Likes...)
	m.images = append(m.images, c.Images...)
	return m
}

// Posts returns a copy of every stored post in insertion order.
func (m *Memory) Posts() []post.Post {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]post.Post(nil), m.posts...)
}

func (m *Memory) Users(ctx context.Context) ([]post.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]post.User{}, m.users...), nil
}

func (m *Memory) Texts(ctx context.Context, q api.TextQuery) ([]post.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	excluded := make(map[post.UserID]bool, len(q.ExcludeUserIDs))
	for _, id := range q.ExcludeUserIDs {
		excluded[id] = true
	}
	found := find(m.posts, func(p post.Post) bool {
		return !excluded[p.UserID]
	})
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].CreatedAt.After(found[j].CreatedAt)
	})
	if q.Skip >= len(found) {
		return []post.Post{}, nil
	}
	end := len(found)
	if q.Limit > 0 {
		end = min(end, q.Skip+q.Limit)
	}
	return found[q.Skip:end], nil
}

func (m *Memory) Likes(ctx context.Context) ([]post.Like, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]post.Like{}, m.likes...), nil
}

func (m *Memory) Images(ctx context.Context) ([]post.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]post.Image{}, m.images...), nil
}

// CreateText stores the text under the most recently created user, the way
// the remote API attributes texts to the caller.
func (m *Memory) CreateText(ctx context.Context, t api.NewText) (*post.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	p := post.Post{
		ID:        newID(),
		CreatedAt: now,
		UpdatedAt: now,
		Text:      t.Text,
	}
	if len(m.users) > 0 {
		p.UserID = m.users[len(m.users)-1].ID
	}
	if t.InReplyToUserID != "" {
		id := t.InReplyToUserID
		p.InReplyToUserID = &id
	}
	if t.InReplyToTextID != "" {
		id := t.InReplyToTextID
		p.InReplyToTextID = &id
	}
	m.posts = append(m.posts, p)
	return &p, nil
}

func (m *Memory) CreateUser(ctx context.Context, name, description string) (*post.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := post.User{ID: newID(), Name: name, Description: description}
	m.users = append(m.users, u)
	return &u, nil
}

// PutLike replaces every like row of the post with a single row.
func (m *Memory) PutLike(ctx context.Context, id post.PostID, count int) (*post.Like, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(find(m.posts, func(p post.Post) bool { return p.ID == id })) == 0 {
		return nil, fmt.Errorf("text %s not found", id)
	}
	likes := m.likes[:0]
	for _, l := range m.likes {
		if l.ID != id {
			likes = append(likes, l)
		}
	}
	l := post.Like{ID: id, LikeCount: count}
	m.likes = append(likes, l)
	return &l, nil
}
