package main

import (
	"time"

	"github.com/aquilax/postboard/post"
)

// demoCollections is the data of the --offline board.
func demoCollections(now time.Time) post.Collections {
	at := func(minutes int) time.Time {
		return now.Add(-time.Duration(minutes) * time.Minute)
	}
	reply := func(id string) *string {
		return &id
	}
	return post.Collections{
		Users: []post.User{
			{ID: "2acaea0d5e4f4c3b9d7e1a2b3c4d5e6f", Name: "alice", Description: "first poster"},
			{ID: "cce8bd62194b4a1f8e2d3c4b5a697887", Name: "bob", Description: ""},
		},
		Posts: []post.Post{
			{ID: "7f3a9c1e2b4d4e6f8a0b1c2d3e4f5a6b", UserID: "2acaea0d5e4f4c3b9d7e1a2b3c4d5e6f",
				Text: "Hello **board**!\nSecond line.", CreatedAt: at(30), UpdatedAt: at(30)},
			{ID: "91b2c3d4e5f60718293a4b5c6d7e8f90", UserID: "cce8bd62194b4a1f8e2d3c4b5a697887",
				Text: "Welcome, see https://example.com", CreatedAt: at(20), UpdatedAt: at(15),
				InReplyToUserID: reply("2acaea0d5e4f4c3b9d7e1a2b3c4d5e6f"), InReplyToTextID: reply("7f3a9c1e2b4d4e6f8a0b1c2d3e4f5a6b")},
			{ID: "a0b1c2d3e4f5061728394a5b6c7d8e9f", UserID: "2acaea0d5e4f4c3b9d7e1a2b3c4d5e6f",
				Text: "Thanks!", CreatedAt: at(10), UpdatedAt: at(10),
				InReplyToTextID: reply("91b2c3d4e5f60718293a4b5c6d7e8f90")},
			{ID: "b9c8d7e6f5a4039281706f5e4d3c2b1a", UserID: "cce8bd62194b4a1f8e2d3c4b5a697887",
				Text: "A separate thread", CreatedAt: at(5), UpdatedAt: at(5)},
		},
		Likes: []post.Like{
			{ID: "7f3a9c1e2b4d4e6f8a0b1c2d3e4f5a6b", LikeCount: 2},
		},
	}
}
