package main

import "github.com/sentinelflow/sentinelflow/internal/cli"

func main() {
	cli.Execute()
}
