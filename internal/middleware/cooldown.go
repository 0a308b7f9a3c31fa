package middleware

import (
	"sync"
	"time"
)

// ==================== CooldownLimiter 冷却限流器 ====================

// CooldownLimiter 按 key 的冷却限流器
// 防止同一客户端频繁触发布局生成，消耗 OpenAI 额度
// 冷却已结束的条目在后续 Check 中被清理，key 数量不随历史客户端增长
type CooldownLimiter struct {
	locks sync.Map // key -> *lockEntry
	now   func() time.Time

	sweepMu   sync.Mutex
	lastSweep time.Time
}

// lockEntry 锁条目
type lockEntry struct {
	lastTime time.Time
	evicted  bool // 已从 locks 删除，持有者需重新获取
	mu       sync.Mutex
}

// NewCooldownLimiter 创建限流器
func NewCooldownLimiter() *CooldownLimiter {
	return &CooldownLimiter{now: time.Now}
}

// ==================== 限流检查 ====================

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 检查是否允许执行，允许时记录本次时间
func (r *CooldownLimiter) Check(key string, interval time.Duration) CheckResult {
	r.sweep(interval)

	for {
		actual, _ := r.locks.LoadOrStore(key, &lockEntry{})
		entry := actual.(*lockEntry)

		entry.mu.Lock()
		if entry.evicted {
			entry.mu.Unlock()
			continue
		}

		now := r.now()
		elapsed := now.Sub(entry.lastTime)

		if !entry.lastTime.IsZero() && elapsed < interval {
			entry.mu.Unlock()
			return CheckResult{
				Allowed:    false,
				RetryAfter: interval - elapsed,
			}
		}

		entry.lastTime = now
		entry.mu.Unlock()
		return CheckResult{Allowed: true}
	}
}

// sweep 每个 interval 最多执行一次，删除冷却已结束的条目
func (r *CooldownLimiter) sweep(interval time.Duration) {
	if interval <= 0 {
		return
	}

	now := r.now()
	r.sweepMu.Lock()
	if now.Sub(r.lastSweep) < interval {
		r.sweepMu.Unlock()
		return
	}
	r.lastSweep = now
	r.sweepMu.Unlock()

	r.locks.Range(func(key, value any) bool {
		entry := value.(*lockEntry)
		entry.mu.Lock()
		if now.Sub(entry.lastTime) >= interval {
			entry.evicted = true
			r.locks.Delete(key)
		}
		entry.mu.Unlock()
		return true
	})
}

// Len 当前跟踪的 key 数量
func (r *CooldownLimiter) Len() int {
	n := 0
	r.locks.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Reset 重置指定 key
func (r *CooldownLimiter) Reset(key string) {
	r.locks.Delete(key)
}

// ==================== Key 生成工具 ====================

// ClientKey 客户端维度的限流 Key
func ClientKey(clientIP string) string {
	return "client:" + clientIP
}
