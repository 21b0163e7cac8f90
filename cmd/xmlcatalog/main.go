// Copyright © 2018 One Concern

package main

import (
	"github.com/oneconcern/domx/cmd/xmlcatalog/cmd"
)

func main() {
	cmd.Execute()
}
