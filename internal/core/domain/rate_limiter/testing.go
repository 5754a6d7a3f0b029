package ratelimiter

import "context"

type FakeRateLimiter struct {
	IsAllowed bool
	Checked   []string
}

func NewFakeRateLimiter(isAllowed bool) *FakeRateLimiter {
	return &FakeRateLimiter{IsAllowed: isAllowed}
}

func (rl *FakeRateLimiter) CheckLimit(ctx context.Context, key string, limit Limit) Result {
	rl.Checked = append(rl.Checked, key)
	if rl.IsAllowed {
		return Allowed()
	}
	return NotAllowed()
}
