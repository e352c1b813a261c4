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

package authz

import "github.com/golang-jwt/jwt/v5"

// HasRole reports whether the token claims carry the given role.
func HasRole(claims jwt.MapClaims, role string) bool {

	if claims == nil {
		return false
	}
	value, ok := claims["role"].(string)
	return ok && value == role
}

// UserID returns the subject identifier from the claims, if any. The
// storefront issues tokens with the user id in the "id" claim and falls back
// to the standard subject.
func UserID(claims jwt.MapClaims) string {

	if claims == nil {
		return ""
	}
	if id, ok := claims["id"].(string); ok && id != "" {
		return id
	}
	if sub, ok := claims["sub"].(string); ok {
		return sub
	}
	return ""
}

// Email returns the email claim, if present.
func Email(claims jwt.MapClaims) string {

	if claims == nil {
		return ""
	}
	email, _ := claims["email"].(string)
	return email
}
