package main

import (
	"fmt"
	"os"

	"garden_designer/cmd/garden/commands"
)

// @title Garden Layout Designer API
// @version 1.0
// @description 花园布局生成服务
// @BasePath /
func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
