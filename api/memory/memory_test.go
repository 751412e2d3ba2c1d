package memory

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/aquilax/postboard/api"
	"github.com/aquilax/postboard/post"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImplementsClient(t *testing.T) {
	inter := reflect.TypeOf((*api.Client)(nil)).Elem()

	if !reflect.TypeOf(New()).Implements(inter) {
		t.Errorf("Memory does not implement the api.Client interface")
	}
}

func seeded() *Memory {
	base := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	return New().Seed(post.Collections{
		Users: []post.User{{ID: "U1", Name: "alice"}, {ID: "U2", Name: "bob"}},
		Posts: []post.Post{
			{ID: "P1", UserID: "U1", CreatedAt: base},
			{ID: "P3", UserID: "U1", CreatedAt: base.Add(2 * time.Minute)},
			{ID: "P2", UserID: "U2", CreatedAt: base.Add(time.Minute)},
		},
		Likes: []post.Like{{ID: "P1", LikeCount: 1}, {ID: "P1", LikeCount: 2}},
	})
}

func ids(pl []post.Post) []string {
	result := []string{}
	for _, p := range pl {
		result = append(result, p.ID)
	}
	return result
}

func TestMemory_Texts(t *testing.T) {
	ctx := context.Background()
	m := seeded()
	tests := []struct {
		name string
		q    api.TextQuery
		want []string
	}{
		{"newest first", api.TextQuery{Limit: 100}, []string{"P3", "P2", "P1"}},
		{"limit", api.TextQuery{Limit: 2}, []string{"P3", "P2"}},
		{"skip", api.TextQuery{Limit: 2, Skip: 2}, []string{"P1"}},
		{"skip past end", api.TextQuery{Limit: 2, Skip: 5}, []string{}},
		{"exclude", api.TextQuery{Limit: 100, ExcludeUserIDs: []string{"U1"}}, []string{"P2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Texts(ctx, tt.q)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestMemory_CreateText(t *testing.T) {
	ctx := context.Background()
	m := seeded()
	p, err := m.CreateText(ctx, api.NewText{Text: "hi", InReplyToTextID: "P1"})
	require.NoError(t, err)
	assert.Len(t, p.ID, 32)
	assert.Equal(t, "U2", p.UserID)
	require.NotNil(t, p.InReplyToTextID)
	assert.Equal(t, "P1", *p.InReplyToTextID)
	assert.Nil(t, p.InReplyToUserID)
	assert.Len(t, m.Posts(), 4)
}

func TestMemory_CreateUser(t *testing.T) {
	ctx := context.Background()
	m := New()
	a, err := m.CreateUser(ctx, "alice", "")
	require.NoError(t, err)
	b, err := m.CreateUser(ctx, "alice", "")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	users, err := m.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestMemory_PutLike(t *testing.T) {
	ctx := context.Background()
	m := seeded()
	_, err := m.PutLike(ctx, "P1", 7)
	require.NoError(t, err)
	likes, err := m.Likes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []post.Like{{ID: "P1", LikeCount: 7}}, likes)

	_, err = m.PutLike(ctx, "nope", 1)
	assert.Error(t, err)
}
