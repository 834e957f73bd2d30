package main

import "github.com/swapnode/swapd/internal/cli"

func main() {
	cli.Execute()
}
