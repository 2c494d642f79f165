package paths

import (
	"flag"
)

// SetupFilePathFlag registers a string flag naming a sheet file or sheet
// tree. Its default is wherever Find locates fileName when the flag is
// registered, or empty if it is nowhere in the search path.
func SetupFilePathFlag(fileName, flagName string, flagPtr *string) {
	flag.StringVar(flagPtr, flagName, Find(fileName), "path to "+fileName+"; searched for in -sheet_dirs and the working directory by default")
}
