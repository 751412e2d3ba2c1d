package main

import (
	"testing"
	"time"
)

func TestNewSpamGuard(t *testing.T) {
	t.Run("spamguard blocks too frequent posts", func(t *testing.T) {
		var canPost bool
		sg := NewSpamGuard(time.Second)
		if canPost = sg.CanPost("test"); !canPost {
			t.Errorf("Expected to be allowed to make first post")
		}
		if canPost = sg.CanPost("test"); canPost {
			t.Errorf("Expected to be disallowed to make second post")
		}
		if canPost = sg.CanPost("other"); !canPost {
			t.Errorf("Expected other address to be allowed")
		}
		sg.clean(time.Now().Add(time.Hour))
		if canPost = sg.CanPost("test"); !canPost {
			t.Errorf("Expected to be allowed to make third post after time has passed")
		}
	})
	t.Run("zero duration allows everything", func(t *testing.T) {
		sg := NewSpamGuard(0)
		for i := 0; i < 3; i++ {
			if !sg.CanPost("test") {
				t.Errorf("Expected post %d to be allowed", i)
			}
		}
	})
}
