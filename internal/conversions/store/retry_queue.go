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
	"sync"

	"github.com/meridian-watches/storefront-tracking-service/internal/conversions/model"
)

// RetryQueue holds events whose delivery exhausted its retries. It is owned
// by a single delivery engine instance; replays take a snapshot so events
// failing again are simply re-appended.
type RetryQueue struct {
	mu     sync.Mutex
	events []model.QueuedEvent
}

func NewRetryQueue() *RetryQueue {
	return &RetryQueue{}
}

// Enqueue appends a failed event for a later replay pass.
func (q *RetryQueue) Enqueue(event model.QueuedEvent) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.events = append(q.events, event)
}

// TakeAll empties the queue and returns the snapshot.
func (q *RetryQueue) TakeAll() []model.QueuedEvent {
	q.mu.Lock()
	defer q.mu.Unlock()

	snapshot := q.events
	q.events = nil
	return snapshot
}

// Len returns the current queue depth.
func (q *RetryQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.events)
}
