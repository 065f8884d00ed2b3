// Copyright 2014 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package lru

import (
	"container/list"
	"sync"
)

// Cache implements an LRU cache. It is safe for concurrent use.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	cache    map[K]*list.Element
	priority *list.List
	maxSize  int
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// New returns a cache holding at most size entries.
func New[K comparable, V any](size int) *Cache[K, V] {
	if size < 1 {
		size = 1
	}
	return &Cache[K, V]{
		maxSize:  size,
		priority: list.New(),
		cache:    make(map[K]*list.Element),
	}
}

// Put stores value under key, evicting the least recently used entry when
// the cache is full. An existing entry is replaced.
func (lru *Cache[K, V]) Put(key K, value V) {
	lru.mu.Lock()
	defer lru.mu.Unlock()
	if e, ok := lru.cache[key]; ok {
		e.Value = entry[K, V]{key: key, value: value}
		lru.priority.MoveToFront(e)
		return
	}
	if len(lru.cache) >= lru.maxSize {
		last := lru.priority.Remove(lru.priority.Back())
		delete(lru.cache, last.(entry[K, V]).key)
	}
	lru.cache[key] = lru.priority.PushFront(entry[K, V]{key: key, value: value})
}

func (lru *Cache[K, V]) Del(key K) {
	lru.mu.Lock()
	defer lru.mu.Unlock()
	e := lru.cache[key]
	if e == nil {
		return
	}
	delete(lru.cache, key)
	lru.priority.Remove(e)
}

func (lru *Cache[K, V]) Get(key K) (V, bool) {
	lru.mu.Lock()
	defer lru.mu.Unlock()
	if e, ok := lru.cache[key]; ok {
		lru.priority.MoveToFront(e)
		return e.Value.(entry[K, V]).value, true
	}
	var zero V
	return zero, false
}

func (lru *Cache[K, V]) Len() int {
	lru.mu.Lock()
	defer lru.mu.Unlock()
	return len(lru.cache)
}
