// Copyright (c) Facebook, Inc. and its affiliates.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package main

import (
	"fmt"
	"os"

	"github.com/cookapi/jobclient/cmds/cookcli/cli"
)

// Command line client for the Cook scheduler.
//
// Usage examples:
// Submit the jobs described in a YAML file and wait for them
//   ./cookcli --url http://cook:12321 --yaml --wait submit jobs.yaml
//
// Get the status of a job
//   ./cookcli query 2413bf75-1587-4a69-82e2-63cc4b0d656d
//
// List the failed jobs of the last day
//   ./cookcli list --states failed --start 2017-10-01T00:00:00Z
//
// Run a one-off command
//   ./cookcli run -- ls -l /tmp

func main() {
	if err := cli.CLIMain(os.Args[0], os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
