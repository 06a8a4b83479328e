// Package main はfolioコマンドのエントリーポイントを提供します。
package main

import (
	"fmt"
	"os"

	"github.com/stsysd/folio/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
