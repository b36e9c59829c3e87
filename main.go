package main

import "github.com/FACorreiaa/green-city-pages/cmd"

func main() {
	cmd.Execute()
}
