// Package application is the initialization entry point for the inspection
// server. It receives the tool settings and the resolved WordPress
// configuration explicitly and wires the API router and HTTP server around
// them.
package application
