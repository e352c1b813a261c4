/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package store

import (
	"time"

	"github.com/meridian-watches/storefront-tracking-service/internal/system/cache"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/config"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/constants"
)

// DedupStore remembers which event ids have already been accepted for
// delivery within the TTL window. Reserve is the atomic form of the
// check-then-admit sequence: under concurrent submissions of the same id,
// exactly one caller gets true. Release returns the id after a terminal
// delivery failure so a legitimate caller retry is not falsely rejected.
type DedupStore interface {
	IsDuplicate(eventID string) bool
	Reserve(eventID string) bool
	Release(eventID string)
}

// NewDedupStore builds the backend selected by configuration. The in-memory
// store is per-process; the Redis store extends the at-most-one-accepted-send
// guarantee across instances.
func NewDedupStore(cfg *config.Config) DedupStore {
	ttl := time.Duration(cfg.Tracker.DedupTTLHours) * time.Hour
	if cfg.Tracker.DedupBackend == constants.DedupBackendRedis {
		return NewRedisDedupStore(cfg.Redis, ttl)
	}
	return NewInMemoryDedupStore(ttl)
}

// InMemoryDedupStore keeps reservations in a TTL map with a background sweep.
// Entries expire individually; the sweep only reclaims memory, so there is no
// per-entry timer to accumulate under high event volume.
type InMemoryDedupStore struct {
	entries *cache.Cache
}

const sweepInterval = 10 * time.Minute

func NewInMemoryDedupStore(ttl time.Duration) *InMemoryDedupStore {
	entries := cache.NewCache(ttl)
	entries.StartJanitor(sweepInterval)
	return &InMemoryDedupStore{entries: entries}
}

func (s *InMemoryDedupStore) IsDuplicate(eventID string) bool {
	_, found := s.entries.Get(eventID)
	return found
}

func (s *InMemoryDedupStore) Reserve(eventID string) bool {
	return s.entries.SetIfAbsent(eventID, struct{}{})
}

func (s *InMemoryDedupStore) Release(eventID string) {
	s.entries.Delete(eventID)
}
