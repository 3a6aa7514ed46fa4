// Package engine is the runtime context payloads are created in.
//
// An Engine owns the parameter tree, the logger, the route resolver, the
// module loader and the state store, and implements payload.Runtime on top
// of them:
//
//	var cfg engine.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//	e, err := engine.New(ctx, cfg, engine.WithParams(cliParams))
//	if err != nil {
//		return err
//	}
//	defer e.Close()
//
//	res := e.Run(ctx) // dispatches engine.payload
//
// # Parameters
//
// The parameter tree is the params file (ENGINE_CONFIG_FILE) with the
// command line parameters merged over it. A few keys steer the engine
// itself and are re-read on every use:
//
//	engine.payload             route run by Run (alias: payload)
//	engine.projects            project roots, "a;b" or a list
//	engine.entry-point         method Run dispatches by default
//	engine.default.route-name  route used for an empty name
//	engine.default.route       default route mapping
//	engine.payloads.<Type>     per-type parameter defaults
//
// Missing keys fall back to Config.
//
// The built-in "default" module defines the Default payload type. Its onRun
// lists the modules reachable through the project roots.
package engine
