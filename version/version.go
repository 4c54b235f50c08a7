package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Populated via -ldflags at build time.
var (
	Version   string
	Commit    string
	BuildTime string
)

func PrintVersion(_ *cobra.Command, _ []string) {
	fmt.Printf("Version: %s\n"+
		"Commit: %s\n"+
		"Build Time: %s\n",
		Version,
		Commit,
		BuildTime,
	)
}
