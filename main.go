package main

import "github.com/frahmantamala/distribution-admin/cmd"

func main() {
	cmd.Execute()
}
