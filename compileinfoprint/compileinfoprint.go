// Package compileinfoprint is imported by the popgen commands for the side
// effect of logging their build provenance to os.Stderr on start-up.
package compileinfoprint

import "github.com/carbocation/popgen/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
