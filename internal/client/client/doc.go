// Package client talks to a running solidarias server over gRPC. It is used
// by the healthcheck command to probe the standard health service.
package client
