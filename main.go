package main

import "github.com/ValentinKolb/forcespec/cmd"

func main() {
	cmd.Execute()
}
