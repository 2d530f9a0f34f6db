// Package jsondoc models JSON configuration documents as ordered trees.
//
// Configuration files are written back in the order their keys were first
// seen so that a no-op run produces byte-identical output and user edits keep
// their place. Values are one of:
//
//	nil, bool, json.Number, string, []interface{}, *Object
//
// Numbers stay as json.Number so literals such as 1.0 survive a round trip.
package jsondoc
