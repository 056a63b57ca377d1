// Package app contains the core application logic: it defines the App
// struct, its configuration, and the primary startup/shutdown lifecycle,
// decoupled from any specific entrypoint such as a server binary.
package app
