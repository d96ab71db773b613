// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

// Package audit keeps a security audit trail of the admin API.
//
// Events cover rejected tokens (auth.failure), policy denials
// (authz.denied), manual catalog reloads (catalog.reload) and reads of
// admin-only data (admin.read).
//
// # Architecture
//
//	Logger.Log() -> Event Buffer (chan) -> Async Writer -> Store
//
// Log never blocks the request path. When the buffer is full the event is
// dropped and counted. Close drains whatever is still buffered.
//
// MemoryStore is a bounded store that evicts the oldest tenth of its
// events when full. Queries return newest first.
//
// # Export
//
// JSONExporter and CEFExporter render query results for download. CEF
// lines can be fed straight into a SIEM:
//
//	CEF:0|Gamerec|GameRecommendationService|1.0.0|authz.denied|...|5|rt=... suser=ci spriv=operator ...
//
// # Usage
//
//	store := audit.NewMemoryStore(10000)
//	auditLog := audit.NewLogger(store, nil, logging.WithComponent("audit"))
//	defer auditLog.Close()
//
//	auditLog.LogAuthzDenied(r, audit.Actor{Subject: "ci", Role: "operator"})
package audit
