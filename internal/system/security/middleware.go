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

package security

import (
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/meridian-watches/storefront-tracking-service/internal/system/authn"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/authz"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/config"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/constants"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/errors"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/log"
)

// AuthnWithAdminCredentials performs authentication using admin credentials from the request.
func AuthnWithAdminCredentials(r *http.Request) error {

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Basic ") {
		return errors.NewClientError(errors.ErrorMessage{
			Code:        errors.UN_AUTHORIZED.Code,
			Message:     errors.UN_AUTHORIZED.Message,
			Description: "Missing or invalid Authorization header",
		}, http.StatusUnauthorized)
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Basic "))

	isValidAdmin, err := validateAdminCredentials(token)
	if err != nil || !isValidAdmin {
		return errors.NewClientError(errors.ErrorMessage{
			Code:        errors.UN_AUTHORIZED.Code,
			Message:     errors.UN_AUTHORIZED.Message,
			Description: "Missing or invalid Authorization header",
		}, http.StatusUnauthorized)
	}

	return nil
}

func validateAdminCredentials(token string) (bool, error) {

	authConfig := config.GetSTSRuntime().Config.Auth
	username := strings.TrimSpace(authConfig.AdminUsername)
	password := strings.TrimSpace(authConfig.AdminPassword)
	if username == "" || password == "" || token == "" {
		return false, nil
	}

	creds := username + ":" + password
	expected := base64.StdEncoding.EncodeToString([]byte(creds))

	if subtle.ConstantTimeCompare([]byte(token), []byte(expected)) == 1 {
		log.GetLogger().Debug("Admin credentials validated successfully.")
		return true, nil
	}

	return false, nil
}

// RequireAdmin authorizes the request either via Basic admin credentials or
// via a storefront JWT carrying the admin role.
func RequireAdmin(r *http.Request) error {

	if strings.HasPrefix(r.Header.Get("Authorization"), "Basic ") {
		return AuthnWithAdminCredentials(r)
	}

	token := authn.TokenFromRequest(r)
	if token == "" {
		return errors.NewClientError(errors.ErrorMessage{
			Code:        errors.UN_AUTHORIZED.Code,
			Message:     errors.UN_AUTHORIZED.Message,
			Description: "Missing credentials",
		}, http.StatusUnauthorized)
	}

	claims, err := authn.ValidateToken(token)
	if err != nil {
		return errors.NewClientError(errors.ErrorMessage{
			Code:        errors.UN_AUTHORIZED.Code,
			Message:     errors.UN_AUTHORIZED.Message,
			Description: "Invalid or expired token",
		}, http.StatusUnauthorized)
	}

	if !authz.HasRole(claims, constants.RoleAdmin) {
		return errors.NewClientError(errors.ErrorMessage{
			Code:        errors.FORBIDDEN.Code,
			Message:     errors.FORBIDDEN.Message,
			Description: errors.FORBIDDEN.Description,
		}, http.StatusForbidden)
	}

	return nil
}

// AuthenticatedClaims returns the JWT claims of the calling user when the
// request carries a valid token. Tracking endpoints are public; the claims
// only enrich the recorded data, so failures are not errors here.
func AuthenticatedClaims(r *http.Request) jwt.MapClaims {

	token := authn.TokenFromRequest(r)
	if token == "" {
		return nil
	}
	claims, err := authn.ValidateToken(token)
	if err != nil {
		return nil
	}
	return claims
}
