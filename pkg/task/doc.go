// Package task runs a named list of steps against one project directory.
//
// A run opens every document lazily through a fresh store, applies the
// steps strictly in order, writes each changed document once at the end and
// then asks the package manager to install everything that was requested in
// a single call. A document that cannot be read or parsed fails on its own:
// steps touching other documents keep going and the failure is reported in
// the Result.
package task
