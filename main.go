package main

import "elternaccounts/cmd"

func main() {
	cmd.Execute()
}
