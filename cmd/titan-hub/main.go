package main

import "github.com/oshokin/titan-hub/cmd/titan-hub/cmd"

func main() {
	cmd.Execute()
}
