package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/funvibe/pyschema/pkg/cli"
)

func main() {
	if err := cli.Execute(os.Args); err != nil {
		logrus.Fatal(err)
	}
}
