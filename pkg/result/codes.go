package result

// Codes produced by the dispatch runtime.
const (
	CodeRouteNotFound      = "route-not-found"
	CodeLibraryNotFound    = "payload-library-not-found"
	CodeLibraryLoadError   = "payload-library-load-error"
	CodeLibraryNoClasses   = "payload-library-no-classes"
	CodeClassNotFound      = "payload-class-not-found"
	CodeClassNotPayload    = "payload-first-class-is-not-payload"
	CodeMethodDoesNotExist = "payload-method-does-not-exist"
	CodeMethodFailed       = "payload-method-failed"
	CodeCallerInvalid      = "payload-caller-invalid"
	CodeCLIOnly            = "payload-cli-only"
	CodeInactive           = "payload-inactive"
	CodeStateError         = "payload-state-error"
	CodePayloadNotFound    = "engine-payload-not-found"
)
