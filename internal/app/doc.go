// Package app provides application initialization and lifecycle management.
// It loads configuration, initializes logging, opens the roster store, builds
// the dataset cache and service layer, wires the HTTP router, and handles
// graceful shutdown.
//
// # Initialization Flow
//
// The typical initialization sequence:
//
//	1. Load configuration from environment and files
//	2. Initialize the structured logger
//	3. Open the roster store and create the dataset cache
//	4. Initialize the dataset service
//	5. Set up HTTP handlers and middleware
//	6. Configure and start the HTTP server
//
// # Graceful Shutdown
//
// The package handles SIGINT and SIGTERM so active requests complete and
// the roster store and log file are closed before exit.
//
// All initialization errors are returned to the caller; the package does
// not call os.Exit() directly.
package app
