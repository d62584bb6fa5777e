// Command mrm-admin administers the MRM Governance Service.
package main

import "github.com/quantgov/mrm/cmd/cli"

func main() {
	cli.Execute()
}
