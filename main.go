package main

import "fansly-utils/cmd"

func main() {
	cmd.Execute()
}
