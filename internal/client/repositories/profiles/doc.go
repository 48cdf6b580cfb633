// Package profiles is the local cache of the logged-in partner's profile.
//
// The partner_profiles table holds at most one row in practice; GetLoggedIn
// reads "the" row with LIMIT 1. SQLiteRepository runs over a dbx.DBTX so the
// coordinator can combine profile writes with credential writes in one
// transaction. Hub publishes committed rows to WatchProfile subscribers.
package profiles
