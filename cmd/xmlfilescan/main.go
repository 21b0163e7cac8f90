// Copyright © 2018 One Concern

package main

import (
	"github.com/oneconcern/domx/cmd/xmlfilescan/cmd"
)

func main() {
	cmd.Execute()
}
