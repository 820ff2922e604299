package main

import "github.com/MarciaOrozco/nutrito-backend/cmd"

func main() {
	cmd.Execute()
}
