// Package logger configures the application's logging and APM.
//
// It uses zerolog for structured logs and optionally integrates with
// New Relic, forwarding logs and attaching trace ids to log lines.
package logger
