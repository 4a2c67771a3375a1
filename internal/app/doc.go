// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the run lifecycle that loads a pipeline
// definition, executes it, and reports the outcome, decoupled from any
// specific entrypoint like a CLI or server.
package app
