package result

import (
	"errors"
	"fmt"
	"maps"
	"sort"
	"strings"
)

// Result is the ok/code/details outcome of an operation.
// The zero value is ok.
type Result struct {
	code    string
	details map[string]any
}

// New returns an ok Result.
func New() Result {
	return Result{}
}

// Failed returns a Result in the failure state.
func Failed(code string, details map[string]any) Result {
	var r Result
	r.Set(code, details)
	return r
}

// FromError converts err into a failed Result under code.
// A nil error yields an ok Result.
func FromError(code string, err error) Result {
	if err == nil {
		return New()
	}
	var re *Error
	if errors.As(err, &re) {
		return Failed(re.Code, re.Details)
	}
	return Failed(code, map[string]any{"message": err.Error()})
}

// Ok reports whether the Result is in the success state.
func (r Result) Ok() bool {
	return r.code == ""
}

// Code returns the failure code or an empty string.
func (r Result) Code() string {
	return r.code
}

// Details returns a copy of the details map. Never nil.
func (r Result) Details() map[string]any {
	out := make(map[string]any, len(r.details))
	maps.Copy(out, r.details)
	return out
}

// Detail returns a single details entry.
func (r Result) Detail(key string) (any, bool) {
	v, ok := r.details[key]
	return v, ok
}

// Set moves the Result into the failure state identified by code.
// An empty code resets to ok.
func (r *Result) Set(code string, details map[string]any) *Result {
	r.code = code
	r.details = cloneMap(details)
	if code == "" {
		r.details = nil
	}
	return r
}

// SetOk resets the Result to the success state.
func (r *Result) SetOk() *Result {
	r.code = ""
	r.details = nil
	return r
}

// From replaces r with a copy of other.
func (r *Result) From(other Result) *Result {
	*r = other.Clone()
	return r
}

// Clone returns a deep copy.
func (r Result) Clone() Result {
	return Result{code: r.code, details: cloneMap(r.details)}
}

// Err returns nil for an ok Result and an *Error otherwise.
func (r Result) Err() error {
	if r.Ok() {
		return nil
	}
	return &Error{Code: r.code, Details: r.Details()}
}

// String renders the Result for logs and CLI output.
func (r Result) String() string {
	if r.Ok() {
		return "ok"
	}
	if len(r.details) == 0 {
		return r.code
	}
	keys := make([]string, 0, len(r.details))
	for k := range r.details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, r.details[k]))
	}
	return r.code + " (" + strings.Join(parts, ", ") + ")"
}

// Map returns the Result as a plain map, the shape printed as a final state.
func (r Result) Map() map[string]any {
	code := r.code
	if code == "" {
		code = "ok"
	}
	return map[string]any{"code": code, "details": r.Details()}
}

// Error is the error form of a failed Result.
type Error struct {
	Code    string
	Details map[string]any
}

func (e *Error) Error() string {
	return Failed(e.Code, e.Details).String()
}

func cloneMap(m map[string]any) map[string]any {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			out[k] = cloneMap(nested)
			continue
		}
		out[k] = v
	}
	return out
}
