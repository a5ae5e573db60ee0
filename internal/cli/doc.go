// Package cli translates command-line arguments, environment variables, an
// optional .env file and an optional config file into an app.Config.
package cli
