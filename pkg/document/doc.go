// Package document loads, tracks and persists the configuration files a run
// touches.
//
// A Store is created per run. Each file is read at most once and written at
// most once, and only when a mutation actually changed its value. Missing
// files behave as empty documents. A file that cannot be parsed fails for the
// rest of the run while other documents carry on.
package document
