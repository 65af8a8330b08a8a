package main

import "github.com/FACorreiaa/go-lmsportal/cmd/lmsctl/cmd"

func main() {
	cmd.Execute()
}
