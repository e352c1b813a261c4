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

	"github.com/google/uuid"
	"github.com/meridian-watches/storefront-tracking-service/internal/conversions/model"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/constants"
	dbclient "github.com/meridian-watches/storefront-tracking-service/internal/system/database/client"
	errors2 "github.com/meridian-watches/storefront-tracking-service/internal/system/errors"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/log"
)

// AddConversionRecord persists the outcome of a delivery attempt for
// reporting. The pipeline does not depend on this document; callers invoke it
// fire-and-forget.
func AddConversionRecord(record model.ConversionRecord) error {

	client := dbclient.GetMongoClient()
	logger := log.GetLogger()
	if client == nil {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: "MongoDB client is not connected",
		}, nil)
	}

	if record.ID == "" {
		record.ID = uuid.New().String()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := client.Collection(constants.ConversionCollection).InsertOne(ctx, record)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to record conversion for event id: %s", record.EventID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.RECORD_CONVERSION.Code,
			Message:     errors2.RECORD_CONVERSION.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}
