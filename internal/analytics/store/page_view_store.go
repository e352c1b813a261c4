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

package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/meridian-watches/storefront-tracking-service/internal/analytics/model"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/constants"
	dbclient "github.com/meridian-watches/storefront-tracking-service/internal/system/database/client"
	errors2 "github.com/meridian-watches/storefront-tracking-service/internal/system/errors"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/log"
)

const queryTimeout = 10 * time.Second

func pageViewCollection() (*mongo.Collection, error) {

	client := dbclient.GetMongoClient()
	if client == nil {
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: "MongoDB client is not connected",
		}, nil)
	}
	return client.Collection(constants.PageViewCollection), nil
}

// InsertPageView persists one page view record.
func InsertPageView(pageView model.PageView) error {

	collection, err := pageViewCollection()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	_, err = collection.InsertOne(ctx, pageView)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to insert page view for visitor: %s", pageView.VisitorID)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_PAGE_VIEW.Code,
			Message:     errors2.ADD_PAGE_VIEW.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// CountPageViews counts page views created at or after the given time, with
// an optional device filter.
func CountPageViews(since time.Time, device string) (int64, error) {

	collection, err := pageViewCollection()
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	filter := sinceFilter(since, device)
	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, wrapStatsError("Failed to count page views", err)
	}
	return total, nil
}

// DistinctCount returns the number of distinct values of a field among page
// views created at or after the given time.
func DistinctCount(field string, since time.Time) (int64, error) {

	collection, err := pageViewCollection()
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	values, err := collection.Distinct(ctx, field, sinceFilter(since, ""))
	if err != nil {
		return 0, wrapStatsError(fmt.Sprintf("Failed to count distinct %s values", field), err)
	}
	return int64(len(values)), nil
}

// ViewsByDay groups page views into daily buckets with per-day unique
// visitor counts, oldest first.
func ViewsByDay(since time.Time) ([]model.DailyViews, error) {

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "created_at", Value: bson.D{{Key: "$gte", Value: since}}}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$dateToString", Value: bson.D{
				{Key: "format", Value: "%Y-%m-%d"},
				{Key: "date", Value: "$created_at"},
			}}}},
			{Key: "views", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "uniqueVisitors", Value: bson.D{{Key: "$addToSet", Value: "$visitor_id"}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "views", Value: 1},
			{Key: "visitors", Value: bson.D{{Key: "$size", Value: "$uniqueVisitors"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	var results []model.DailyViews
	if err := aggregatePageViews(pipeline, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// TopPages ranks the most viewed pages in the window with their unique
// visitor counts.
func TopPages(since time.Time, limit int) ([]model.PageCount, error) {

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "created_at", Value: bson.D{{Key: "$gte", Value: since}}}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$page"},
			{Key: "views", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "uniqueVisitors", Value: bson.D{{Key: "$addToSet", Value: "$visitor_id"}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "views", Value: 1},
			{Key: "visitors", Value: bson.D{{Key: "$size", Value: "$uniqueVisitors"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "views", Value: -1}}}},
		bson.D{{Key: "$limit", Value: limit}},
	}

	var results []model.PageCount
	if err := aggregatePageViews(pipeline, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// BreakdownByField groups page views in the window by an arbitrary field,
// most frequent first. A limit of 0 returns all buckets.
func BreakdownByField(field string, since time.Time, limit int) ([]model.BucketCount, error) {

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "created_at", Value: bson.D{{Key: "$gte", Value: since}}}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}

	var results []model.BucketCount
	if err := aggregatePageViews(pipeline, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// ListPageViews returns a page of records, newest first, with an optional
// device filter.
func ListPageViews(since time.Time, device string, page, limit int) ([]model.PageView, int64, error) {

	collection, err := pageViewCollection()
	if err != nil {
		return nil, 0, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	filter := sinceFilter(since, device)

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, wrapListError(err)
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, wrapListError(err)
	}
	defer cursor.Close(ctx)

	pageViews := make([]model.PageView, 0, limit)
	if err := cursor.All(ctx, &pageViews); err != nil {
		return nil, 0, wrapListError(err)
	}
	return pageViews, total, nil
}

func aggregatePageViews(pipeline mongo.Pipeline, results interface{}) error {

	collection, err := pageViewCollection()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return wrapStatsError("Failed to aggregate page views", err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, results); err != nil {
		return wrapStatsError("Failed to decode page view aggregation", err)
	}
	return nil
}

func sinceFilter(since time.Time, device string) bson.M {
	filter := bson.M{"created_at": bson.M{"$gte": since}}
	if device != "" {
		filter["device"] = device
	}
	return filter
}

func wrapStatsError(description string, err error) error {
	log.GetLogger().Debug(description, log.Error(err))
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.GET_VISITOR_STATS.Code,
		Message:     errors2.GET_VISITOR_STATS.Message,
		Description: description,
	}, err)
}

func wrapListError(err error) error {
	errorMsg := "Failed to list page views"
	log.GetLogger().Debug(errorMsg, log.Error(err))
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.GET_PAGE_VIEWS.Code,
		Message:     errors2.GET_PAGE_VIEWS.Message,
		Description: errorMsg,
	}, err)
}
