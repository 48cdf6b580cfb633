// Package client talks to the courier-partner REST API and bootstraps the
// local database.
//
// # Overview
//
//  1. Client is the API contract used by the coordinator: registration, OTP
//     verification, login, password recovery and change, profile read and
//     update, document upload and listing, and logout.
//  2. HTTPClient implements it over net/http. Every request carries an
//     X-Request-ID; every request except register and login carries
//     "Authorization: Bearer <token>" when the TokenSource has one.
//  3. InitDatabase, RunMigrations and LoadOrCreateSalt prepare the SQLite
//     database used by the credential and profile repositories.
//
// # Error Handling
//
// Non-2xx responses become *APIError; its Message is empty when the error
// body could not be decoded. Transport failures wrap ErrUnavailable, a 2xx
// response with no body is ErrEmptyResponse, and an undecodable 2xx body wraps
// ErrMalformedResponse. Match them with errors.Is / errors.As.
package client
