// cmd/genrich/main.go
package main

import (
	"genrich/internal/appshell"
	"genrich/internal/runapp"
)

func main() { appshell.Main(runapp.RunContext) }
