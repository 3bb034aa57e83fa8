package main

import "readmellm/cmd"

func main() {
	cmd.Execute()
}
