// Command broker-cli is the command line client for the service broker.
package main

import (
	"os"

	"github.com/spring-cloud-samples/bookstore-service-broker/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
