package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/labelwires/cmd/labelwires/commands"
	"github.com/arthur-debert/labelwires/pkg/style"
)

func main() {
	rootCmd := commands.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		r := style.NewRenderer(style.DetectFormat(os.Stderr))
		fmt.Fprintln(os.Stderr, r.RenderError(err))
		os.Exit(1)
	}
}
