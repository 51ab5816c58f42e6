package main

import "github.com/frahmantamala/conference-management/cmd"

func main() {
	cmd.Execute()
}
