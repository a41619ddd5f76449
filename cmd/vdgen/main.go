// Command vdgen converts Android vector drawables into Compose ImageVector
// Kotlin sources.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/roach88/vdgen/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	err := cmd.ExecuteContext(context.Background())
	if err != nil && !cli.Reported(err) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
