package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/appgen/internal/cli"
	"github.com/vvka-141/appgen/pkg/appgen"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(appgen.ExitPanic)
		}
	}()

	if os.Getenv("APPGEN_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(appgen.ExitCodeForError(err))
	}
}
