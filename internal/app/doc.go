// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the lifecycle that loads a network
// description, wires it into a connection graph and exports the result,
// decoupled from any specific entrypoint like a CLI or server.
package app
