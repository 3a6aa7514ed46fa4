// Package module keeps the process-wide catalog of handler modules and
// loads them at most once.
//
// A module is a unit of handler code identified by a name relative to a
// project root ("reports", "reports/daily"). Modules are registered at
// process start, usually from an init function:
//
//	func init() {
//		module.Register(".", "reports", module.Func(func(ctx context.Context, s *module.Scope) error {
//			return s.Define("Reports", reportsType)
//		}))
//	}
//
// Every registration is addressed by a canonical path
// (abs(<project>/payload/<name>)). Locate walks the project roots in order
// and returns the first registered path; built-in modules are consulted
// after every project root.
//
// # Loading
//
// Loader.Load runs a module's init function once and records the type
// names it defined that were not known before. Later loads of the same
// path return the recorded list without running anything. A failing or
// panicking init leaves no trace in the registry, so a later call may
// retry it. Concurrent first loads of one path are collapsed into a single
// init call.
package module
