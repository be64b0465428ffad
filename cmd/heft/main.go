package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "heft",
		Short: "Git repository size and object-graph analyzer",
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newProcessCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("heft 0.1.0-dev")
		},
	}
}
