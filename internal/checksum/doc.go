// Package checksum fingerprints generated DDL.
//
// The raw checksum changes with any byte of the output. The normalized
// checksum ignores letter case, comments and whitespace layout outside string
// literals, so it only changes when the schema itself changes.
package checksum
