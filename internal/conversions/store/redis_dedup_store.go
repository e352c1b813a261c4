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
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/meridian-watches/storefront-tracking-service/internal/system/config"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/log"
)

const dedupKeyPrefix = "sts_event:"

// RedisDedupStore backs the deduplication window with a shared keyed-expiry
// store, so the at-most-one-accepted-send guarantee holds across instances.
// Redis being unreachable never fails a tracking call: the store fails open
// and leaves deduplication to the attribution platform's own longer window.
type RedisDedupStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDedupStore(cfg config.RedisConfig, ttl time.Duration) *RedisDedupStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &RedisDedupStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *RedisDedupStore) IsDuplicate(eventID string) bool {
	ctx, cancel := opContext()
	defer cancel()

	_, err := s.client.Get(ctx, dedupKeyPrefix+eventID).Result()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		log.GetLogger().Warn("Dedup store read failed, treating event as new", log.Error(err))
		return false
	}
	return true
}

func (s *RedisDedupStore) Reserve(eventID string) bool {
	ctx, cancel := opContext()
	defer cancel()

	ok, err := s.client.SetNX(ctx, dedupKeyPrefix+eventID, "1", s.ttl).Result()
	if err != nil {
		log.GetLogger().Warn("Dedup store reserve failed, allowing send", log.Error(err))
		return true
	}
	return ok
}

func (s *RedisDedupStore) Release(eventID string) {
	ctx, cancel := opContext()
	defer cancel()

	if err := s.client.Del(ctx, dedupKeyPrefix+eventID).Err(); err != nil {
		log.GetLogger().Warn("Dedup store release failed", log.Error(err))
	}
}

func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 2*time.Second)
}
