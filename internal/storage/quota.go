package storage

import "fmt"

// quota rejects writes larger than max bytes.
type quota struct {
	KV
	max int
}

// WithQuota wraps kv so that any single value larger than maxBytes is
// refused with ErrQuotaExceeded. maxBytes <= 0 disables the limit.
func WithQuota(kv KV, maxBytes int) KV {
	if maxBytes <= 0 {
		return kv
	}
	return &quota{KV: kv, max: maxBytes}
}

func (q *quota) Set(key string, value []byte) error {
	if len(value) > q.max {
		return fmt.Errorf("%w: %d bytes for %q, limit %d", ErrQuotaExceeded, len(value), key, q.max)
	}
	return q.KV.Set(key, value)
}
