// Package steps defines the mutations a task is made of. Each step reads a
// document through the store, computes the new value with the merge engine
// and writes it back; the store decides whether anything actually changed.
//
// Steps never touch the filesystem directly and never install anything
// themselves: package names are collected into the run's request and
// installed once when the task finishes.
package steps
