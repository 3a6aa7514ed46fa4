// Package route maps symbolic route names to route descriptors.
//
// A descriptor names the module that backs a route, the handler type inside
// that module, an optional method to dispatch and a query map of extra
// parameters. Descriptors are assembled key by key from three layers, first
// non-empty value wins:
//
//  1. a route file found in one of the project roots,
//  2. the configured default route mapping,
//  3. the built-in default (module "default", type "Default").
//
// Route files live at <project>/ro/router/<name>.yaml (".yml" and ".toml"
// are tried next, in that order). For a nested name such
// as "reports/daily" the resolver first looks for a file named after the
// head segment ("reports.yaml"), then for the full name
// ("reports/daily.yaml"). Project roots are searched in order and the first
// file found is used; files from different roots are never merged.
//
// A route whose merged "enabled" key is false resolves to an empty
// descriptor, which callers treat exactly like a missing route.
//
// Route file format:
//
//	library: reports
//	class: Daily
//	method: build
//	enabled: true
//	query:
//	  format: csv
package route
