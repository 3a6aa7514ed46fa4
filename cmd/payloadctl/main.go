// Command payloadctl resolves routes and dispatches payloads from the
// command line.
//
//	payloadctl run jobs --engine.projects="app;../shared" --limit=5
//	payloadctl run --engine.payload=jobs
//	payloadctl modules
//	payloadctl route jobs
//
// Every --a.b=c argument becomes a runtime parameter. --env-file=<path>
// loads an env file before the configuration is read. Only built-in
// modules are linked into this binary; applications build their own
// command around engine.New with their module catalog.
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
