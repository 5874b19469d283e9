package main

import "github.com/stablekit/usdcli/cmd"

func main() {
	cmd.Execute()
}
