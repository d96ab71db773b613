// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

/*
Package authz authorizes admin API requests with a Casbin RBAC enforcer.

Subjects are token roles. Objects are request paths matched with keyMatch2.
Actions are "read" or "write", derived from the HTTP method by ActionForMethod.

The built-in policy:

	p, operator, /api/v1/admin/catalog/reload, write
	p, admin, /api/v1/admin/*, *
	g, admin, operator

An operator may reload the catalog. An admin may do anything under
/api/v1/admin and inherits the operator grants. AUTHZ_POLICY_PATH replaces
the built-in policy with a Casbin CSV file; ReloadPolicy re-reads it.
*/
package authz
