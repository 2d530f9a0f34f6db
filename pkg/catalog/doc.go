// Package catalog loads task definitions written as YAML data. Each
// catalog names the files it touches, the values to merge into them, the
// packages to install and the conditions that gate any of it; Build turns
// that data into steps for the task composer.
//
// Built-in catalogs are embedded in the binary. A project can add its own,
// or replace a built-in one, by dropping <name>.yaml files into
// .projsync/tasks.
//
// Step forms:
//
//	- json: .eslintrc            # JSON document
//	  path: rules                # optional, dotted; empty means the root
//	  strategy: merge            # merge (default), set, union
//	  value: {semi: error}
//
//	- lines: .eslintignore       # newline separated list
//	  add: [node_modules/]
//
//	- script: pretest            # package.json script
//	  command: npm run lint
//	  position: before           # optional; before/after compose, absent sets
//	  separator: " && "
//
//	- packages: [eslint]
//
//	- require: [name]
//
//	- when: has("package.json", "devDependencies.babel-core")
//	  steps: [...]
//
//	- dependsOn: tslint          # shorthand for a manifest dependency check
//	  steps: [...]
//
// String values may use text/template syntax against the task options, for
// example "eslint-config-{{ .eslint_preset }}".
package catalog
