// Package credentials persists the session credentials (auth token, logged-in
// email and partner id) in the local SQLite database.
//
// SQLiteRepository is the raw key/value table. Store layers typed access and
// at-rest sealing on top of it and is what the coordinator and the HTTP client
// use. Both accept a dbx.DBTX, so the same code runs against the database
// handle or inside a transaction.
package credentials
