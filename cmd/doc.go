// Package cmd implements the command-line interface of forcespec. It packs
// node force specifications described in JSON into the binary migration
// format and unpacks such batches again, which is mainly useful to inspect
// and debug the data moved between processes.
//
// The package is organized into several subpackages:
//
//   - encode: Pack a JSON node description into a binary batch
//   - decode: Unpack a binary batch (optionally re-indexed) into JSON
//   - util: Shared utilities for configuration and record conversion (internal use)
//
// See forcespec -help for a list of all commands.
package cmd
