package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisWithClient(client, nil, time.Minute), mr
}

func TestGetSetJSONRoundtrip(t *testing.T) {
	r, _ := newTestRedis(t)
	ctx := context.Background()

	type view struct {
		Name  string `json:"name"`
		Score int    `json:"score"`
	}

	var out view
	hit, err := r.GetJSON(ctx, "mentorships:view:STUDENT_MENTORSHIP", &out)
	if err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if hit {
		t.Fatal("hit on empty cache")
	}

	want := view{Name: "Alice", Score: 80}
	if err := r.SetJSON(ctx, "mentorships:view:STUDENT_MENTORSHIP", want, 0); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}

	hit, err = r.GetJSON(ctx, "mentorships:view:STUDENT_MENTORSHIP", &out)
	if err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if !hit {
		t.Fatal("miss after SetJSON")
	}
	if out != want {
		t.Errorf("got %+v, want %+v", out, want)
	}
}

func TestSetJSONAppliesDefaultTTL(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()

	if err := r.SetJSON(ctx, "k", "v", 0); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}
	if mr.TTL("k") != time.Minute {
		t.Errorf("ttl = %s, want 1m", mr.TTL("k"))
	}
}

func TestInvalidateMentorshipViews(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()

	keys := []string{
		"mentorships:view:STUDENT_MENTORSHIP",
		"mentorships:view:INSTRUCTOR_MENTORSHIP",
		"matches:view:STUDENT_MENTORSHIP",
	}
	for _, k := range keys {
		if err := r.SetJSON(ctx, k, "cached", 0); err != nil {
			t.Fatalf("SetJSON(%s): %v", k, err)
		}
	}
	if err := r.SetJSON(ctx, "ratelimit:10.0.0.1:/api/v1/mentorships", "3", 0); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}

	if err := r.InvalidateMentorshipViews(ctx); err != nil {
		t.Fatalf("InvalidateMentorshipViews: %v", err)
	}

	for _, k := range keys {
		if mr.Exists(k) {
			t.Errorf("key %s survived invalidation", k)
		}
	}
	if !mr.Exists("ratelimit:10.0.0.1:/api/v1/mentorships") {
		t.Errorf("invalidation deleted an unrelated key")
	}
}

func TestIncrWindow(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		n, err := r.IncrWindow(ctx, "ratelimit:test", 10*time.Second)
		if err != nil {
			t.Fatalf("IncrWindow: %v", err)
		}
		if n != want {
			t.Errorf("count = %d, want %d", n, want)
		}
	}
	if mr.TTL("ratelimit:test") != 10*time.Second {
		t.Errorf("window ttl = %s, want 10s", mr.TTL("ratelimit:test"))
	}

	// Window rolls over: counter restarts at 1.
	mr.FastForward(11 * time.Second)
	n, err := r.IncrWindow(ctx, "ratelimit:test", 10*time.Second)
	if err != nil {
		t.Fatalf("IncrWindow: %v", err)
	}
	if n != 1 {
		t.Errorf("count after window = %d, want 1", n)
	}
}

func TestUnavailableRedisDegrades(t *testing.T) {
	r := NewRedisWithClient(nil, nil, time.Minute)
	ctx := context.Background()

	if err := r.SetJSON(ctx, "k", "v", 0); err != nil {
		t.Errorf("SetJSON on nil client: %v", err)
	}
	hit, err := r.GetJSON(ctx, "k", new(string))
	if err != nil || hit {
		t.Errorf("GetJSON on nil client: hit=%v err=%v", hit, err)
	}
	if err := r.InvalidateMentorshipViews(ctx); err != nil {
		t.Errorf("InvalidateMentorshipViews on nil client: %v", err)
	}
	if _, err := r.IncrWindow(ctx, "k", time.Second); err == nil {
		t.Errorf("IncrWindow on nil client should error so the limiter can fail open")
	}
}
