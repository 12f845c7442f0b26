package main

import "github.com/theirongolddev/fleetbill/cmd"

func main() {
	cmd.Execute()
}
