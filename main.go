// Copyright © 2024 The gmlfmt authors

package main

import "github.com/luthersystems/gmlfmt/cmd"

func main() {
	cmd.Execute()
}
