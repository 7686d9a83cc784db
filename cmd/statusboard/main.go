// cmd/statusboard/main.go
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/tamzrod/statusboard/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		var exit *cli.ExitError
		if errors.As(err, &exit) {
			os.Exit(exit.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
