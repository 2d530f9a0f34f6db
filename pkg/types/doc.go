// Package types holds the small interfaces shared across projsync packages.
//
// FS is the only filesystem seam: production code uses filesystem.NewOS and
// tests use filesystem.NewAferoFS over an in-memory afero filesystem.
package types
