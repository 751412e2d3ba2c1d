package post

import "strings"

// ResolveUserID expands a short user id to the first user id it prefixes.
// It returns "" when shortID is empty or nothing matches.
func ResolveUserID(shortID string, users []User) UserID {
	return resolve(shortID, len(users), func(i int) string { return users[i].ID })
}

// ResolveCommentID expands a short comment id against comments, in order.
func ResolveCommentID(shortID string, comments []Comment) PostID {
	return resolve(shortID, len(comments), func(i int) string { return comments[i].ID })
}

func resolve(shortID string, n int, id func(i int) string) string {
	if shortID == "" {
		return ""
	}
	for i := 0; i < n; i++ {
		if full := id(i); strings.HasPrefix(full, shortID) {
			return full
		}
	}
	return ""
}
