package main

import (
	"html/template"
	"strings"
	"testing"

	"github.com/aquilax/postboard/post"
	"github.com/stretchr/testify/assert"
)

func TestRenderText(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		contains []string
		excludes []string
	}{
		{
			name:     "markdown",
			in:       "**bold** and ~~gone~~",
			contains: []string{"<strong>bold</strong>", "<del>gone</del>"},
		},
		{
			name:     "raw html is shown as text",
			in:       "<script>alert(1)</script><b>x</b>",
			contains: []string{"&lt;b&gt;"},
			excludes: []string{"<script>", "<b>"},
		},
		{
			name:     "newlines are line breaks",
			in:       "one\ntwo",
			contains: []string{"<br"},
		},
		{
			name:     "punctuation is kept as typed",
			in:       `"quoted" a -- b 1/2`,
			contains: []string{"a -- b 1/2", "quoted"},
			excludes: []string{"&ldquo;", "\u201c", "&ndash;", "\u2013", "&frac12;", "\u00bd"},
		},
		{
			name:     "external links open a new tab",
			in:       "[site](https://example.com)",
			contains: []string{`href="https://example.com"`, `target="_blank"`},
		},
		{
			name:     "local links stay in the tab",
			in:       "[home](/)",
			contains: []string{`href="/"`},
			excludes: []string{`target="_blank"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderText(tt.in)
			for _, c := range tt.contains {
				assert.Contains(t, got, c)
			}
			for _, e := range tt.excludes {
				assert.NotContains(t, got, e)
			}
		})
	}
}

func TestHfReply(t *testing.T) {
	tests := []struct {
		name string
		c    post.Comment
		want string
	}{
		{"plain post", post.Comment{}, ""},
		{"user only", post.Comment{ReplyToUserName: "alice"}, "TO:alice"},
		{"unknown user", post.Comment{ReplyToUserName: post.UnknownUserName}, "TO:-"},
		{"text only", post.Comment{ReplyToTextID: "P1abcdef"}, "REPLY:P1abcdef"},
		{"both", post.Comment{ReplyToUserName: "alice", ReplyToTextID: "P1abcdef"}, "TO:alice REPLY:P1abcdef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hfReply(tt.c))
		})
	}
}

func TestHfDate(t *testing.T) {
	assert.Equal(t, "09/28 12:00:00", hfDate(post.Comment{CreatedAt: "09/28 12:00:00", UpdatedAt: "09/28 12:00:00"}))
	assert.Equal(t, "09/28 12:00:00|09/28 12:05:00", hfDate(post.Comment{CreatedAt: "09/28 12:00:00", UpdatedAt: "09/28 12:05:00"}))
}

func TestHfImage(t *testing.T) {
	assert.Equal(t, template.URL("data:image/png;base64,AAAA"), hfImage("data:image/png;base64,AAAA"))
	assert.Equal(t, template.URL("https://example.com/a.png"), hfImage("https://example.com/a.png"))
	assert.Equal(t, template.URL(""), hfImage("javascript:alert(1)"))
}

func TestThreadURL(t *testing.T) {
	c := post.Comment{ID: "P1", Text: "Hello World"}
	assert.Equal(t, "/thread/P1/hello-world.html#CP1", threadURL(c, 0))
	assert.Equal(t, "/thread/P1/hello-world.html?page=3#CP1", threadURL(c, 2))
	assert.Equal(t, "/thread/P2/thread.html#CP2", threadURL(post.Comment{ID: "P2"}, 0))
}

func TestHfAvatar(t *testing.T) {
	assert.Equal(t, hfGravatar(""), hfAvatar(""))
	a := hfAvatar("U1")
	assert.True(t, strings.HasPrefix(a, "http://www.gravatar.com/avatar/"))
	assert.Equal(t, a, hfAvatar("U1"))
	assert.NotEqual(t, a, hfAvatar("U2"))
}

func TestReplyURL(t *testing.T) {
	c := post.Comment{ID: "P1"}
	assert.Equal(t, "/?reply=P1#form", replyURL(c, 0))
	assert.Equal(t, "/?page=2&reply=P1#form", replyURL(c, 1))
}

func TestLocalURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/?page=2", "/?page=2"},
		{"/thread/P1/x.html?page=3#CP1", "/thread/P1/x.html?page=3"},
		{"https://example.com/", "/"},
		{"//example.com/", "/"},
		{"thread/P1", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, localURL(tt.in, "/"))
		})
	}
}
