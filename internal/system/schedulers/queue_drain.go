/*
 * Copyright (c) 2025-2026, WSO2 LLC. (http://www.wso2.com).
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

package schedulers

import (
	"time"

	"github.com/meridian-watches/storefront-tracking-service/internal/conversions/service"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/log"
)

// StartQueueDrainScheduler starts the periodic replay of conversion events
// that exhausted their delivery retries.
func StartQueueDrainScheduler(tracker *service.Tracker, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		drainQueue(tracker)
	}
}

func drainQueue(tracker *service.Tracker) {
	if tracker.QueueDepth() == 0 {
		return
	}

	processed, remaining := tracker.Drain()
	log.GetLogger().Info("Scheduled queue drain finished",
		log.Int("processed", processed), log.Int("remaining", remaining))
}
