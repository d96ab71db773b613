// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

/*
Package auth issues and validates the HS256 bearer tokens that guard the
admin routes.

There are no user accounts. An operator holding ADMIN_TOKEN_SECRET mints a
token (gamerec -issue-admin-token) and sends it as

	Authorization: Bearer <token>

Only tokens carrying the "admin" role are accepted. Tokens signed with any
algorithm other than HMAC are rejected before the signature is checked.

Usage:

	manager, err := auth.NewJWTManager(cfg.Security.AdminTokenSecret, time.Hour)
	token, err := manager.GenerateToken("ops")
	claims, err := manager.ValidateToken(token)
*/
package auth
