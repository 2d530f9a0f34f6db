// Package paths resolves which directory projsync works on.
//
// The project root is chosen in this order:
//  1. the --project flag, when given
//  2. the PROJSYNC_PROJECT environment variable
//  3. the nearest directory at or above the working directory that holds a
//     package.json
//  4. the working directory itself (reported as a fallback)
package paths
