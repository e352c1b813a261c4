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

package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_Cache_SetAndGet(t *testing.T) {

	c := NewCache(time.Minute)
	c.Set("k", "v")

	value, found := c.Get("k")
	assert.True(t, found)
	assert.Equal(t, "v", value)

	_, found = c.Get("missing")
	assert.False(t, found)
}

func Test_Cache_SetIfAbsent(t *testing.T) {

	c := NewCache(time.Minute)

	assert.True(t, c.SetIfAbsent("k", 1))
	assert.False(t, c.SetIfAbsent("k", 2))

	value, _ := c.Get("k")
	assert.Equal(t, 1, value)
}

func Test_Cache_SetIfAbsentAfterExpiry(t *testing.T) {

	c := NewCache(30 * time.Millisecond)

	assert.True(t, c.SetIfAbsent("k", 1))
	time.Sleep(50 * time.Millisecond)

	// An expired entry does not block re-insertion.
	assert.True(t, c.SetIfAbsent("k", 2))
}

func Test_Cache_ExpiredEntriesInvisible(t *testing.T) {

	c := NewCache(30 * time.Millisecond)
	c.Set("k", "v")

	time.Sleep(50 * time.Millisecond)

	_, found := c.Get("k")
	assert.False(t, found)
	assert.Equal(t, 0, c.Len())
}

func Test_Cache_Delete(t *testing.T) {

	c := NewCache(time.Minute)
	c.Set("k", "v")
	c.Delete("k")

	_, found := c.Get("k")
	assert.False(t, found)
}
