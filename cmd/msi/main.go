package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/robDaglio/msi/internal/cli"
	"github.com/robDaglio/msi/pkg/msi"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(msi.ExitPanic)
		}
	}()

	if os.Getenv("MSI_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(msi.ExitCodeForError(err))
	}
}
