// Package client contains Cobra CLI commands that talk to a running
// flexbuf server over its HTTP API.
package client
