package main

import (
	"sync"
	"time"
)

// SpamGuard rejects a second post from the same address within duration.
// A zero duration allows everything.
type SpamGuard struct {
	duration time.Duration
	posts    map[string]time.Time
	mutex    *sync.Mutex
}

func NewSpamGuard(duration time.Duration) *SpamGuard {
	return &SpamGuard{
		duration: duration,
		posts:    make(map[string]time.Time),
		mutex:    &sync.Mutex{},
	}
}

func (sg *SpamGuard) CanPost(id string) bool {
	if sg.duration <= 0 {
		return true
	}
	result := true
	now := time.Now()
	sg.mutex.Lock()
	expires, found := sg.posts[id]
	if found && expires.After(now) {
		// Blocked
		result = false
	} else {
		sg.posts[id] = now.Add(sg.duration)
	}
	sg.clean(now)
	sg.mutex.Unlock()
	return result
}

func (sg *SpamGuard) clean(now time.Time) {
	for key, expires := range sg.posts {
		if expires.Before(now) {
			delete(sg.posts, key)
		}
	}
}
