//	@title			docbridge API
//	@version		1.0
//	@description	docbridge is an HTTP gateway exposing document and administrative operations over MongoDB-compatible backends

//	@license.name	MIT

//	@BasePath	/api/v0

//	@tag.name			items
//	@tag.description	Document operations on the selected collection

//	@tag.name			clusters
//	@tag.description	Cluster registry operations

//	@tag.name			admin
//	@tag.description	Database and collection administration

//	@tag.name			health
//	@tag.description	Operational endpoints for monitoring

package main

import (
	"os"

	"github.com/docbridge/docbridge/cli"
)

func main() {
	cmd := cli.RootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
