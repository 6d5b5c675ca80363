// Copyright © 2026 The LISPE authors

package main

import "github.com/luthersystems/lispe/cmd"

func main() {
	cmd.Execute()
}
