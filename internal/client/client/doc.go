// Package client contains the client-side building blocks of the Genei CLI.
//
// # Overview
//
// The package provides:
//  1. The Client interface, the API contract the CLI services depend on:
//     register/login/refresh, the contact list, direct messages and research
//     paper document links.
//  2. HTTPClient, a REST implementation that injects the bearer access token,
//     transparently refreshes an expired one once, and maps HTTP statuses to
//     sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the SQLite
//     file in which the CLI keeps its session between runs.
//
// # Error Handling
//
// Non-2xx replies are returned as *APIError, which unwraps to one of
// ErrBadRequest, ErrUnauthorized, ErrForbidden, ErrNotFound, ErrAlreadyExists,
// ErrUnavailable or ErrUnexpectedReply. Transport failures wrap ErrUnavailable.
//
// All operations accept context.Context and honor cancellation and timeouts.
package client
