package main

import (
	"context"
	"fmt"
	"os"

	"todolist/internal/cli"
)

// Same entry point as cmd/todo, so `go run .` works from a checkout.
func main() {
	if err := cli.NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}
}
