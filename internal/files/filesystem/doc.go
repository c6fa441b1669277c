// Package filesystem abstracts the file operations appgen performs.
//
// Specifications are read and generated artifacts are written through
// FileSystemProvider, so the whole pipeline can run against MemoryFileSystem
// in tests and OSFileSystem in production.
package filesystem
