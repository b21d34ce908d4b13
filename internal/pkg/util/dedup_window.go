package util

import (
	"container/list"
	"sync"
	"time"
)

// DedupWindow 固定容量的近期记录窗口。条目超过 TTL 或窗口装满最旧先出，
// 用于拦截短时间内的重复发布
type DedupWindow struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	order    *list.List
	index    map[string]*list.Element
	now      func() time.Time
}

type dedupEntry struct {
	key     string
	addedAt time.Time
}

func NewDedupWindow(capacity int, ttl time.Duration) *DedupWindow {
	if capacity <= 0 {
		capacity = 16
	}
	return &DedupWindow{
		capacity: capacity,
		ttl:      ttl,
		order:    list.New(),
		index:    make(map[string]*list.Element),
		now:      time.Now,
	}
}

// Seen 查询 key 是否仍在窗口内，过期条目顺带清理
func (w *DedupWindow) Seen(key string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.evictExpired()
	_, ok := w.index[key]
	return ok
}

// Add 记录 key，窗口满时淘汰最旧条目
func (w *DedupWindow) Add(key string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.evictExpired()

	if el, ok := w.index[key]; ok {
		el.Value.(*dedupEntry).addedAt = w.now()
		w.order.MoveToBack(el)
		return
	}
	for w.order.Len() >= w.capacity {
		w.evictFront()
	}
	el := w.order.PushBack(&dedupEntry{key: key, addedAt: w.now()})
	w.index[key] = el
}

func (w *DedupWindow) evictExpired() {
	if w.ttl <= 0 {
		return
	}
	cutoff := w.now().Add(-w.ttl)
	for w.order.Len() > 0 {
		front := w.order.Front().Value.(*dedupEntry)
		if front.addedAt.After(cutoff) {
			break
		}
		w.evictFront()
	}
}

func (w *DedupWindow) evictFront() {
	front := w.order.Front()
	if front == nil {
		return
	}
	delete(w.index, front.Value.(*dedupEntry).key)
	w.order.Remove(front)
}
