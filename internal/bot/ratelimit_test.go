package bot

import "testing"

func TestChatLimiterAllow(t *testing.T) {
	cl := newChatLimiter(3)
	defer cl.Stop()

	const chat = int64(100)
	for i := 0; i < 3; i++ {
		if !cl.Allow(chat) {
			t.Fatalf("message %d should be allowed", i+1)
		}
	}
	if cl.Allow(chat) {
		t.Fatal("fourth message within a minute should be rejected")
	}

	// Other chats have independent budgets.
	if !cl.Allow(int64(200)) {
		t.Fatal("different chat should be allowed")
	}
}

func TestChatLimiterDefaultRate(t *testing.T) {
	cl := newChatLimiter(0)
	defer cl.Stop()

	if !cl.Allow(1) {
		t.Fatal("limiter with default rate should allow first message")
	}
}

func TestChatLimiterStopTwice(t *testing.T) {
	cl := newChatLimiter(5)
	cl.Stop()
	cl.Stop() // must not panic
}
