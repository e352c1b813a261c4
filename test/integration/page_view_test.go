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

package integration

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-watches/storefront-tracking-service/internal/analytics/model"
	"github.com/meridian-watches/storefront-tracking-service/internal/analytics/store"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/constants"
)

// newPageView builds a record stamped after the given watermark so each test
// can scope its queries to its own data.
func newPageView(page, device, visitorID string) model.PageView {
	return model.PageView{
		ID:        uuid.New().String(),
		VisitorID: visitorID,
		SessionID: "session-" + visitorID,
		Page:      page,
		Referrer:  "https://google.com",
		UserAgent: "integration-test",
		Device:    device,
		Browser:   "Chrome",
		OS:        "Windows",
		IPAddress: "203.0.113.10",
		CreatedAt: time.Now().UTC(),
	}
}

func Test_PageViewStore_InsertAndCount(t *testing.T) {

	clearCollection(t, constants.PageViewCollection)

	since := time.Now().UTC().Add(-time.Second)

	require.NoError(t, store.InsertPageView(newPageView("/watches/daytona", "desktop", "visitor-a")))
	require.NoError(t, store.InsertPageView(newPageView("/watches/daytona", "mobile", "visitor-a")))
	require.NoError(t, store.InsertPageView(newPageView("/contact", "mobile", "visitor-b")))

	total, err := store.CountPageViews(since, "")
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	mobileOnly, err := store.CountPageViews(since, "mobile")
	require.NoError(t, err)
	assert.EqualValues(t, 2, mobileOnly)

	visitors, err := store.DistinctCount("visitor_id", since)
	require.NoError(t, err)
	assert.EqualValues(t, 2, visitors)
}

func Test_PageViewStore_TopPagesAndBreakdowns(t *testing.T) {

	clearCollection(t, constants.PageViewCollection)

	since := time.Now().UTC().Add(-time.Second)

	for i := 0; i < 3; i++ {
		visitor := fmt.Sprintf("tp-visitor-%d", i)
		require.NoError(t, store.InsertPageView(newPageView("/watches/nautilus", "desktop", visitor)))
	}
	require.NoError(t, store.InsertPageView(newPageView("/watches/royal-oak", "tablet", "tp-visitor-0")))

	topPages, err := store.TopPages(since, 10)
	require.NoError(t, err)
	require.Len(t, topPages, 2)
	assert.Equal(t, "/watches/nautilus", topPages[0].Page)
	assert.EqualValues(t, 3, topPages[0].Views)
	assert.EqualValues(t, 3, topPages[0].Visitors)

	devices, err := store.BreakdownByField("device", since, 0)
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.Equal(t, "desktop", devices[0].Bucket)
	assert.EqualValues(t, 3, devices[0].Count)
}

func Test_PageViewStore_ViewsByDay(t *testing.T) {

	clearCollection(t, constants.PageViewCollection)

	since := time.Now().UTC().Add(-time.Second)

	require.NoError(t, store.InsertPageView(newPageView("/home", "desktop", "vbd-visitor-a")))
	require.NoError(t, store.InsertPageView(newPageView("/home", "desktop", "vbd-visitor-a")))
	require.NoError(t, store.InsertPageView(newPageView("/home", "desktop", "vbd-visitor-b")))

	daily, err := store.ViewsByDay(since)
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), daily[0].Date)
	assert.EqualValues(t, 3, daily[0].Views)
	assert.EqualValues(t, 2, daily[0].Visitors)
}

func Test_PageViewStore_ListPagination(t *testing.T) {

	clearCollection(t, constants.PageViewCollection)

	since := time.Now().UTC().Add(-time.Second)

	for i := 0; i < 5; i++ {
		pageView := newPageView(fmt.Sprintf("/list/%d", i), "desktop", "list-visitor")
		require.NoError(t, store.InsertPageView(pageView))
		time.Sleep(2 * time.Millisecond)
	}

	firstPage, total, err := store.ListPageViews(since, "", 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, firstPage, 2)
	// Newest first.
	assert.Equal(t, "/list/4", firstPage[0].Page)
	assert.Equal(t, "/list/3", firstPage[1].Page)

	lastPage, _, err := store.ListPageViews(since, "", 3, 2)
	require.NoError(t, err)
	require.Len(t, lastPage, 1)
	assert.Equal(t, "/list/0", lastPage[0].Page)
}
