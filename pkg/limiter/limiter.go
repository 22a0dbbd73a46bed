// Package limiter provides token-bucket rate limiting keyed by request path
// Package limiter 提供按请求路径分桶的令牌桶限流
package limiter

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// Face 限流器接口
type Face interface {
	Key(c *gin.Context) string
	GetBucket(key string) (*ratelimit.Bucket, bool)
	AddBuckets(rules ...BucketRule) Face
}

// BucketRule 单个令牌桶规则
type BucketRule struct {
	// Key 匹配的路径前缀
	Key string
	// FillInterval 放入令牌的间隔
	FillInterval time.Duration
	// Capacity 桶容量
	Capacity int64
	// Quantum 每次放入的令牌数
	Quantum int64
}

// MethodLimiter 按请求路径限流
type MethodLimiter struct {
	limiterBuckets map[string]*ratelimit.Bucket
}

func NewMethodLimiter() Face {
	return &MethodLimiter{
		limiterBuckets: map[string]*ratelimit.Bucket{},
	}
}

// Key 取路径中 ? 之前的部分作为限流键
func (l *MethodLimiter) Key(c *gin.Context) string {
	uri := c.Request.RequestURI
	if index := len(uri); index > 0 {
		for i, ch := range uri {
			if ch == '?' {
				return uri[:i]
			}
		}
	}
	return uri
}

// GetBucket 按最长前缀匹配规则键，子路径命中父级的桶
func (l *MethodLimiter) GetBucket(key string) (*ratelimit.Bucket, bool) {
	if bucket, ok := l.limiterBuckets[key]; ok {
		return bucket, true
	}

	matched := ""
	var bucket *ratelimit.Bucket
	for ruleKey, b := range l.limiterBuckets {
		if strings.HasPrefix(key, ruleKey) && len(ruleKey) > len(matched) {
			matched = ruleKey
			bucket = b
		}
	}
	return bucket, bucket != nil
}

func (l *MethodLimiter) AddBuckets(rules ...BucketRule) Face {
	for _, rule := range rules {
		if _, ok := l.limiterBuckets[rule.Key]; !ok {
			l.limiterBuckets[rule.Key] = ratelimit.NewBucketWithQuantum(rule.FillInterval, rule.Capacity, rule.Quantum)
		}
	}
	return l
}
