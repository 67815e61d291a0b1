// Package common provides the configuration and logging shared by the
// forcespec command-line tools.
//
// Key Components:
//
//   - Config: Settings of a single encode or decode run, filled from
//     command-line flags, environment variables and .env files.
//
//   - Logger: Custom logging implementation plugged into Dragonboat's logger
//     package, so every library package (streamable, rodforce, springforce,
//     lnode) logs with the same format and level.
package common
