package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/mdexhq/mdex/apps/mdexctl/cmd"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "mdexctl crashed: %v\n", r)
			if os.Getenv("MDEX_DEBUG") != "" {
				debug.PrintStack()
			}
			os.Exit(2)
		}
	}()

	cmd.Execute()
}
