// Package result provides the outcome value threaded through every payload
// operation in place of returned errors.
//
// A Result is either ok (no code) or carries a failure code plus a details
// map. Operations that can fail set a code and keep going; the next step is
// responsible for checking Ok before doing more work. Only the application
// boundary turns a failed Result into a Go error or a non-zero exit status.
//
// # Usage
//
//	r := result.New()
//	if name == "" {
//		r.Set(result.CodeRouteNotFound, map[string]any{"route": name})
//	}
//	if !r.Ok() {
//		return r.Err()
//	}
//
// # Codes
//
// The package declares the codes produced by the dispatch runtime. Handler
// authors are free to use their own codes; any non-empty code is a failure.
package result
