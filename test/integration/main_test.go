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
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/meridian-watches/storefront-tracking-service/internal/system/config"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/database/client"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/log"
	"github.com/meridian-watches/storefront-tracking-service/test/setup"
)

// clearCollection empties a collection so each test starts from a known
// state; the suite shares one database across tests.
func clearCollection(t *testing.T, name string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := client.GetMongoClient().Collection(name).DeleteMany(ctx, bson.M{})
	require.NoError(t, err)
}

func TestMain(m *testing.M) {
	ctx := context.Background()

	conf := config.Config{
		Log: config.LogConfig{
			LogLevel: "DEBUG",
		},
	}
	conf.Auth.AdminUsername = "admin"
	conf.Auth.AdminPassword = "changeit"
	conf.Auth.JWTSecret = "integration-secret"
	config.OverrideSTSRuntime(conf)
	_ = log.Init("DEBUG")

	mongo, err := setup.SetupTestMongo(ctx)
	if err != nil {
		fmt.Println("Failed to start test DB:", err)
		os.Exit(1)
	}

	if _, err := client.Connect(mongo.URI, "storefront_tracking_test"); err != nil {
		fmt.Println("Failed to connect to test DB:", err)
		_ = mongo.Container.Terminate(ctx)
		os.Exit(1)
	}

	code := m.Run()

	_ = mongo.Container.Terminate(ctx)

	os.Exit(code)
}
