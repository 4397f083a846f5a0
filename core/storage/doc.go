// Package storage provides an S3-compatible object storage client used to
// archive snapshot files off the local machine.
//
// Archiving is optional and off the critical path: every backup is complete
// on local disk first, and the upload happens only when requested.
package storage
