// cmd/genrich-sort/main.go
package main

import (
	"genrich/internal/appshell"
	"genrich/internal/stageapp"
)

func main() { appshell.Main(stageapp.Main("sort")) }
