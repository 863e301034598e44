package bot

import (
	"sync"
	"time"
)

// chatLimiter caps how many messages a single chat may send per
// minute. Counters reset a minute after the chat's last burst started;
// stale chats are swept periodically.
type chatLimiter struct {
	mu           sync.Mutex
	chats        map[int64]*chatInfo
	stopCleanup  chan struct{}
	shutdownOnce sync.Once

	perMinute       int
	cleanupInterval time.Duration
}

type chatInfo struct {
	windowStart time.Time
	messages    int
}

func newChatLimiter(perMinute int) *chatLimiter {
	if perMinute <= 0 {
		perMinute = 30
	}
	cl := &chatLimiter{
		chats:           make(map[int64]*chatInfo),
		stopCleanup:     make(chan struct{}),
		perMinute:       perMinute,
		cleanupInterval: 5 * time.Minute,
	}
	go cl.startCleanup()
	return cl
}

// Allow reports whether the chat is under its per-minute budget.
func (cl *chatLimiter) Allow(chatID int64) bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	now := time.Now()
	chat, exists := cl.chats[chatID]

	if !exists || now.Sub(chat.windowStart) > time.Minute {
		cl.chats[chatID] = &chatInfo{windowStart: now, messages: 1}
		return true
	}

	chat.messages++
	return chat.messages <= cl.perMinute
}

func (cl *chatLimiter) startCleanup() {
	ticker := time.NewTicker(cl.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cl.cleanupStaleEntries()
		case <-cl.stopCleanup:
			return
		}
	}
}

func (cl *chatLimiter) cleanupStaleEntries() {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for id, chat := range cl.chats {
		if chat.windowStart.Before(cutoff) {
			delete(cl.chats, id)
		}
	}
}

// Stop shuts down the cleanup goroutine.
func (cl *chatLimiter) Stop() {
	cl.shutdownOnce.Do(func() {
		close(cl.stopCleanup)
	})
}
