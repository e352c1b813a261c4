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

	"github.com/meridian-watches/storefront-tracking-service/internal/linkclicks/model"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/constants"
	dbclient "github.com/meridian-watches/storefront-tracking-service/internal/system/database/client"
	errors2 "github.com/meridian-watches/storefront-tracking-service/internal/system/errors"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/log"
)

const queryTimeout = 10 * time.Second

func linkClickCollection() (*mongo.Collection, error) {

	client := dbclient.GetMongoClient()
	if client == nil {
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: "MongoDB client is not connected",
		}, nil)
	}
	return client.Collection(constants.LinkClickCollection), nil
}

// InsertLinkClick persists one click record.
func InsertLinkClick(click model.LinkClick) error {

	collection, err := linkClickCollection()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	_, err = collection.InsertOne(ctx, click)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to insert link click of type: %s", click.LinkType)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_LINK_CLICK.Code,
			Message:     errors2.ADD_LINK_CLICK.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// ListLinkClicks returns one page of records matching the filter, newest
// first, plus the total match count.
func ListLinkClicks(filter model.ListFilter, page, limit int) ([]model.LinkClick, int64, error) {

	collection, err := linkClickCollection()
	if err != nil {
		return nil, 0, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	query := buildFilter(filter)

	total, err := collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, wrapListError(err)
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, wrapListError(err)
	}
	defer cursor.Close(ctx)

	clicks := make([]model.LinkClick, 0, limit)
	if err := cursor.All(ctx, &clicks); err != nil {
		return nil, 0, wrapListError(err)
	}
	return clicks, total, nil
}

// CountLinkClicks counts records matching the filter.
func CountLinkClicks(filter model.ListFilter) (int64, error) {

	collection, err := linkClickCollection()
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	total, err := collection.CountDocuments(ctx, buildFilter(filter))
	if err != nil {
		return 0, wrapStatsError("Failed to count link clicks", err)
	}
	return total, nil
}

// ClicksByType groups matching clicks by link type, most frequent first.
func ClicksByType(filter model.ListFilter) ([]model.TypeCount, error) {

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: buildFilter(filter)}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$link_type"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}

	var results []model.TypeCount
	if err := aggregateLinkClicks(pipeline, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// ClicksByDate groups clicks since the given time into daily buckets,
// oldest first.
func ClicksByDate(since time.Time) ([]model.DateCount, error) {

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "created_at", Value: bson.D{{Key: "$gte", Value: since}}}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$dateToString", Value: bson.D{
				{Key: "format", Value: "%Y-%m-%d"},
				{Key: "date", Value: "$created_at"},
			}}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	var results []model.DateCount
	if err := aggregateLinkClicks(pipeline, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// TopProducts ranks the products whose contact links were clicked most.
func TopProducts(filter model.ListFilter, limit int) ([]model.ProductCount, error) {

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: buildFilter(filter)}},
		bson.D{{Key: "$match", Value: bson.D{{Key: "product_id", Value: bson.D{{Key: "$nin", Value: bson.A{nil, ""}}}}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$product_id"},
			{Key: "product_name", Value: bson.D{{Key: "$first", Value: "$product_name"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
		bson.D{{Key: "$limit", Value: limit}},
	}

	var results []model.ProductCount
	if err := aggregateLinkClicks(pipeline, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// DeleteAllLinkClicks removes every record and returns the deleted count.
func DeleteAllLinkClicks() (int64, error) {

	collection, err := linkClickCollection()
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	result, err := collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, wrapDeleteError("Failed to delete link clicks", err)
	}
	return result.DeletedCount, nil
}

// DeleteLinkClickByID removes one record. Returns false when no record
// matched the id.
func DeleteLinkClickByID(id string) (bool, error) {

	collection, err := linkClickCollection()
	if err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	result, err := collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, wrapDeleteError(fmt.Sprintf("Failed to delete link click with id: %s", id), err)
	}
	return result.DeletedCount > 0, nil
}

func aggregateLinkClicks(pipeline mongo.Pipeline, results interface{}) error {

	collection, err := linkClickCollection()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return wrapStatsError("Failed to aggregate link clicks", err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, results); err != nil {
		return wrapStatsError("Failed to decode link click aggregation", err)
	}
	return nil
}

func buildFilter(filter model.ListFilter) bson.M {

	query := bson.M{}
	if filter.LinkType != "" {
		query["link_type"] = filter.LinkType
	}
	if filter.ProductID != "" {
		query["product_id"] = filter.ProductID
	}
	if filter.StartDate != nil || filter.EndDate != nil {
		createdAt := bson.M{}
		if filter.StartDate != nil {
			createdAt["$gte"] = *filter.StartDate
		}
		if filter.EndDate != nil {
			createdAt["$lte"] = *filter.EndDate
		}
		query["created_at"] = createdAt
	}
	return query
}

func wrapListError(err error) error {
	errorMsg := "Failed to list link clicks"
	log.GetLogger().Debug(errorMsg, log.Error(err))
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.GET_LINK_CLICKS.Code,
		Message:     errors2.GET_LINK_CLICKS.Message,
		Description: errorMsg,
	}, err)
}

func wrapStatsError(description string, err error) error {
	log.GetLogger().Debug(description, log.Error(err))
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.GET_LINK_CLICK_STATS.Code,
		Message:     errors2.GET_LINK_CLICK_STATS.Message,
		Description: description,
	}, err)
}

func wrapDeleteError(description string, err error) error {
	log.GetLogger().Debug(description, log.Error(err))
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.DELETE_LINK_CLICKS.Code,
		Message:     errors2.DELETE_LINK_CLICKS.Message,
		Description: description,
	}, err)
}
