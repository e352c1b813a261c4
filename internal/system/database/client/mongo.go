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

package client

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoClient holds the driver client and the service database handle.
type MongoClient struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var (
	mongoInstance *MongoClient
	once          sync.Once
)

// Connect initializes the process-wide MongoDB connection. Subsequent calls
// return the already-established instance.
func Connect(uri, dbName string) (*MongoClient, error) {
	var connectErr error
	once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		clientOptions := options.Client().ApplyURI(uri)
		client, err := mongo.Connect(ctx, clientOptions)
		if err != nil {
			connectErr = err
			return
		}

		// Ping to ensure the connection is live
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			connectErr = err
			return
		}

		mongoInstance = &MongoClient{
			Client:   client,
			Database: client.Database(dbName),
		}
	})

	if connectErr != nil {
		return nil, connectErr
	}
	return mongoInstance, nil
}

// GetMongoClient returns the connected instance, or nil before Connect.
func GetMongoClient() *MongoClient {
	return mongoInstance
}

// Collection returns a handle for the named collection in the service database.
func (m *MongoClient) Collection(name string) *mongo.Collection {
	return m.Database.Collection(name)
}

// Disconnect closes the underlying connection pool.
func (m *MongoClient) Disconnect(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// Ping verifies connectivity to the primary.
func (m *MongoClient) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.Primary())
}
