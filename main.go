package main

import (
	"fmt"
	"os"

	"github.com/familyboard/familyboard/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "familyboard:", err)
		os.Exit(1)
	}
}
