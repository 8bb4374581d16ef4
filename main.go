package main

import "yqhp/pay-engine/cmd"

func main() {
	cmd.Execute()
}
