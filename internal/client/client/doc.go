// Package client talks to the remote user API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (Client) covering authenticate,
//     register, search-by-attribute, create, update and delete.
//  2. HTTPClient, a JSON-over-HTTP implementation. It reads credentials from
//     a CredentialSource on every call and attaches either a Basic or a
//     Bearer Authorization header depending on the endpoint, plus an
//     X-Request-ID for correlation with server logs.
//
// # Error Handling
//
// Non-2xx answers become *APIError values that unwrap to sentinels
// (ErrUnauthorized, ErrNotFound, ErrConflict, ErrUnavailable); transport
// failures wrap ErrUnavailable. Use MessageOr to surface the server's wording.
//
// No request is retried; every failure is reported to the caller.
package client
