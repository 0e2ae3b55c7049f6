// Package storage persists completed uploads under a configured upload root.
//
// It owns the two safety-critical steps of the transfer protocol's commit
// path: resolving a client-declared file name to a safe, collision-free
// destination inside the upload root, and writing the buffered bytes there
// atomically (temp file plus rename) so a crash mid-write never leaves a
// truncated file under the final name.
package storage
