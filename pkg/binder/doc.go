// Package binder resolves handler method arguments from a layered parameter
// source.
//
// Every handler method declares its formal parameters once, at registration
// time, as a table of Param values (name, kind, default). Binding is a pure
// function over that table and the merged parameter tree; no reflection over
// Go function signatures is involved.
//
// # Name resolution
//
// For each declared parameter, in order:
//
//  1. The name is split on "__" into a path, so "db__pool_size" addresses
//     db -> pool_size in the parameter tree.
//  2. The path is looked up in the source, with call-site arguments taking
//     precedence over the ambient parameters.
//  3. When nothing is found every segment is retried with underscores
//     replaced by hyphens (db -> pool-size), so snake_case parameter names
//     match kebab-case configuration keys.
//  4. The declared default is used next, then the zero value of the kind.
//  5. The value is coerced to the declared kind. Coercion is lenient: "42"
//     binds to an Int parameter as 42, "yes" to a Bool as true. A parameter
//     with an unknown kind always binds to nil.
//
// # Usage
//
//	params := []binder.Param{
//		binder.Int("limit", 10),
//		binder.String("report__format", "csv"),
//		binder.Bool("dry_run"),
//	}
//	args := binder.Bind(params, map[string]any{"limit": "25"}, ambient)
//	args.Int("limit")          // 25
//	args.String("report__format") // value of report.format or "csv"
package binder
