// Package payload creates handler instances for routes and dispatches their
// methods.
//
// A handler type is declared once, at registration time, as a table of
// methods with their parameter descriptors:
//
//	type Reports struct{ rows int }
//
//	var ReportsType = payload.NewType[Reports]("Reports",
//		payload.Func("onCreate", func(r *Reports, p *payload.Payload, _ binder.Args) error {
//			p.SetParam("csv", "format")
//			return nil
//		}),
//		payload.Func("build", func(r *Reports, p *payload.Payload, a binder.Args) error {
//			r.rows = a.Int("limit")
//			return nil
//		}, binder.Int("limit", 100)),
//	)
//
// Modules define their types through module.Scope; Create resolves a route,
// loads the module and instantiates the selected type. Failures never
// escape as errors or panics: they are recorded in the Payload's Result and
// creation degrades to the no-op Base type.
//
// # Lifecycle
//
// A Payload starts Created, becomes Configured once onCreate has run, is
// Running while one of its methods executes, and ends either Mutated
// (superseded by a child created with Mutate) or Terminated. A Mutated
// payload resumes its previous status when the child calls Unmutate.
// Calling into a Mutated or Terminated payload fails with payload-inactive.
//
// # Hooks
//
// onCreate, onMutate, onBeforeRun, the entry point (onRun unless
// configured otherwise) and onAfterRun are all optional. Run invokes
// onBeforeRun, then the requested method only while the Result is ok, then
// onAfterRun unconditionally.
//
// # Arguments
//
// Method arguments are bound from, lowest to highest priority: the runtime
// params, the route query, the payload params and the call-site arguments.
// See package binder for the name lookup rules.
package payload
