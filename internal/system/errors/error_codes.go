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

package errors

const errorPrefix = "STS-"

var (
	// Server error codes

	TRACK_EVENT = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Error while delivering conversion event.",
	}

	ADD_PAGE_VIEW = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while persisting page view.",
	}

	GET_PAGE_VIEWS = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error while fetching page views.",
	}

	GET_VISITOR_STATS = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Error while computing visitor statistics.",
	}

	ADD_LINK_CLICK = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while persisting link click.",
	}

	GET_LINK_CLICKS = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "Error while fetching link clicks.",
	}

	GET_LINK_CLICK_STATS = ErrorMessage{
		Code:    errorPrefix + "15008",
		Message: "Error while computing link click statistics.",
	}

	DELETE_LINK_CLICKS = ErrorMessage{
		Code:    errorPrefix + "15009",
		Message: "Error while deleting link clicks.",
	}

	DB_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15010",
		Message: "Unable to initialize database client.",
	}

	MARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15011",
		Message: "Error while marshalling JSON.",
	}

	RECORD_CONVERSION = ErrorMessage{
		Code:    errorPrefix + "15012",
		Message: "Error while recording delivered conversion.",
	}

	// Client error codes

	INVALID_REQUEST_FORMAT = ErrorMessage{
		Code:    errorPrefix + "10001",
		Message: "Invalid request format.",
	}

	MISSING_REQUIRED_FIELDS = ErrorMessage{
		Code:    errorPrefix + "10002",
		Message: "Missing required fields.",
	}

	INVALID_EVENT_NAME = ErrorMessage{
		Code:    errorPrefix + "10003",
		Message: "Unknown event name.",
	}

	INVALID_LINK_TYPE = ErrorMessage{
		Code:    errorPrefix + "10004",
		Message: "Invalid link type.",
	}

	INVALID_BATCH = ErrorMessage{
		Code:    errorPrefix + "10005",
		Message: "Invalid event batch.",
	}

	TRACKING_NOT_CONFIGURED = ErrorMessage{
		Code:    errorPrefix + "10006",
		Message: "Conversion tracking is not configured.",
	}

	RESOURCE_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "10007",
		Message: "Resource not found.",
	}

	UN_AUTHORIZED = ErrorMessage{
		Code:        errorPrefix + "10401",
		Message:     "Unauthorized.",
		Description: "Authentication is required to access this resource.",
	}

	FORBIDDEN = ErrorMessage{
		Code:        errorPrefix + "10403",
		Message:     "Forbidden.",
		Description: "Admin access required.",
	}
)
