package main

import "workspacectl/internal/cli"

func main() {
	cli.Execute()
}
