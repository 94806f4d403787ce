// cmd/librarium/main.go
package main

import "librarium/cmd/librarium/cmd"

func main() {
	cmd.Execute()
}
