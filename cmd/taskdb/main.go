package main

import (
	"os"

	"github.com/taskdb/taskdb/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
