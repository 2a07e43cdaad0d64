package main

import (
	"fmt"
	"os"
)

// 版本号，构建时通过 -ldflags "-X main.version=..." 注入
var version = "dev"

func main() {
	app := newProbeApp(os.Stdout, os.Stderr)
	if err := app.cli().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}
