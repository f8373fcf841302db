// Command storefront runs the storefront API server and its command-line
// client.
package main

import "github.com/Sentinel-Gate/storefront/cmd/storefront/cmd"

func main() {
	cmd.Execute()
}
