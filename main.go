package main

import "github.com/apdavison/hbp-validation-client/cmd"

func main() {
	cmd.Execute()
}
