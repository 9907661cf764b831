// Package client contains the storefront's server-facing building blocks.
//
// # Overview
//
//  1. A transport-agnostic API contract (see the Client interface) for the
//     auth and menu endpoints: Login, Logout, Verify, ChangePassword,
//     CreateUser, Menu and Ping.
//  2. An HTTP implementation (see HTTPClient) that keeps the session cookie
//     in a cookie jar and maps response codes to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Failures carry an *APIError whose Unwrap returns a sentinel, so callers
// can match with errors.Is: ErrUnavailable, ErrUnauthorized and the shared
// sentinels in package common.
package client
