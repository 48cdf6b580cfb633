// Package cli is the command-line front end of the mitra client.
//
// It wires configuration, the local database, the API client and the sync
// coordinator into an App, exposes every coordinator operation as a cobra
// subcommand, and offers an interactive shell (runREPL) over the same
// actions. Missing inputs are prompted for; passwords are always read from
// the terminal without echo.
//
// Every action consumes the coordinator's Loading/Success/Failure stream and
// renders it; a Failure becomes the command's error.
package cli
