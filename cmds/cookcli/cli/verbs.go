// Copyright (c) Facebook, Inc. and its affiliates.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"time"

	"github.com/cookapi/jobclient/pkg/client"
	"github.com/cookapi/jobclient/pkg/config"
	"github.com/cookapi/jobclient/pkg/job"
	"github.com/cookapi/jobclient/pkg/logging"
	"github.com/cookapi/jobclient/pkg/types"

	"github.com/davecgh/go-spew/spew"
	"github.com/kballard/go-shellquote"
)

var log = logging.GetLogger("cookcli")

type verbFunc func(ctx context.Context, c *client.Client, args []string, stdin io.Reader, stdout, stderr io.Writer) (interface{}, error)

var verbs = map[string]verbFunc{
	"submit": submit,
	"query":  query,
	"delete": deleteJobs,
	"retry":  retry,
	"list":   list,
	"wait":   wait,
	"run":    runCommand,
}

// SubmitResponse is printed once jobs are accepted by the scheduler.
type SubmitResponse struct {
	Jobs []types.JobID `json:"jobs"`
}

// DeleteResponse is printed once jobs are killed.
type DeleteResponse struct {
	Deleted []types.JobID `json:"deleted"`
}

// RetryResponse is printed once jobs have their retries updated.
type RetryResponse struct {
	Jobs    []types.JobID `json:"jobs"`
	Retries int           `json:"retries"`
}

func run(ctx context.Context, verb string, args []string, c *client.Client, stdin io.Reader, stdout, stderr io.Writer) error {
	resp, err := verbs[verb](ctx, c, args, stdin, stdout, stderr)
	if resp != nil {
		if perr := printJSON(stdout, resp); perr != nil && err == nil {
			err = perr
		}
	}
	return err
}

func printJSON(w io.Writer, v interface{}) error {
	buffer := &bytes.Buffer{}
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", " ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("cannot encode response: %v", err)
	}
	_, err := w.Write(buffer.Bytes())
	return err
}

func submit(ctx context.Context, c *client.Client, args []string, stdin io.Reader, stdout, stderr io.Writer) (interface{}, error) {
	var jobs []*job.Description
	if len(args) == 0 {
		fmt.Fprintf(stderr, "Reading from stdin...\n")
		data, err := ioutil.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read job descriptions: %w", err)
		}
		format := config.FormatJSON
		if *flagYAML {
			format = config.FormatYAML
		}
		if jobs, err = config.ParseJobDescriptions(data, format); err != nil {
			return nil, fmt.Errorf("failed to parse job descriptions: %w", err)
		}
	}
	for _, path := range args {
		data, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read job descriptions: %w", err)
		}
		format := config.FormatFromPath(path)
		if *flagYAML {
			format = config.FormatYAML
		}
		parsed, err := config.ParseJobDescriptions(data, format)
		if err != nil {
			return nil, fmt.Errorf("failed to parse job descriptions from %s: %w", path, err)
		}
		jobs = append(jobs, parsed...)
	}
	return submitAndWait(ctx, c, jobs, stdout, stderr)
}

func runCommand(ctx context.Context, c *client.Client, args []string, _ io.Reader, stdout, stderr io.Writer) (interface{}, error) {
	if len(args) == 0 {
		return nil, errors.New("missing command to run")
	}
	d := &job.Description{
		Name:    flagName,
		Command: job.String(shellquote.Join(args...)),
	}
	if flagSet.Changed("cpus") {
		d.CPUs = flagCPUs
	}
	if flagSet.Changed("mem") {
		d.Mem = flagMem
	}
	return submitAndWait(ctx, c, []*job.Description{d}, stdout, stderr)
}

func submitAndWait(ctx context.Context, c *client.Client, jobs []*job.Description, stdout, stderr io.Writer) (interface{}, error) {
	log.Debugf("Submitting jobs:\n%s", spew.Sdump(jobs))
	ids, err := c.Submit(ctx, jobs)
	if err != nil {
		return nil, err
	}
	resp := SubmitResponse{Jobs: ids}
	if !*flagWait {
		return resp, nil
	}
	// print immediately if wait is used
	if err := printJSON(stdout, resp); err != nil {
		return nil, err
	}
	fmt.Fprintf(stderr, "\nWaiting for jobs to complete...\n")
	return waitAll(ctx, c, ids)
}

// waitAll waits for the jobs and fails unless every one of them succeeded.
// Jobs that finished are returned in any case.
func waitAll(ctx context.Context, c *client.Client, ids []types.JobID) (interface{}, error) {
	infos, err := c.WaitAll(ctx, ids)
	if err != nil {
		if len(infos) == 0 {
			return nil, err
		}
		return infos, err
	}
	return infos, checkSucceeded(infos)
}

func checkSucceeded(infos []*job.Info) error {
	var failed []types.JobID
	for _, info := range infos {
		if !info.Succeeded() {
			failed = append(failed, info.UUID)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d job(s) did not succeed: %v", len(failed), failed)
	}
	return nil
}

func query(ctx context.Context, c *client.Client, args []string, _ io.Reader, _, _ io.Writer) (interface{}, error) {
	ids, err := parseJobIDs(args)
	if err != nil {
		return nil, err
	}
	infos, err := c.Query(ctx, ids)
	if err != nil {
		return nil, err
	}
	return infos, nil
}

func deleteJobs(ctx context.Context, c *client.Client, args []string, _ io.Reader, _, _ io.Writer) (interface{}, error) {
	ids, err := parseJobIDs(args)
	if err != nil {
		return nil, err
	}
	if err := c.Delete(ctx, ids); err != nil {
		return nil, err
	}
	return DeleteResponse{Deleted: ids}, nil
}

func retry(ctx context.Context, c *client.Client, args []string, _ io.Reader, _, _ io.Writer) (interface{}, error) {
	ids, err := parseJobIDs(args)
	if err != nil {
		return nil, err
	}
	if err := c.Retry(ctx, ids, *flagRetries); err != nil {
		return nil, err
	}
	return RetryResponse{Jobs: ids, Retries: *flagRetries}, nil
}

func list(ctx context.Context, c *client.Client, args []string, _ io.Reader, _, _ io.Writer) (interface{}, error) {
	opts := client.ListOptions{
		User:  *flagOwner,
		Limit: *flagLimit,
	}
	for _, s := range *flagStates {
		st, err := job.ParseListState(s)
		if err != nil {
			return nil, err
		}
		opts.States = append(opts.States, st)
	}
	var err error
	if opts.Start, err = parseTime("start", *flagStart); err != nil {
		return nil, err
	}
	if opts.Stop, err = parseTime("stop", *flagStop); err != nil {
		return nil, err
	}
	infos, err := c.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	return infos, nil
}

func wait(ctx context.Context, c *client.Client, args []string, _ io.Reader, _, stderr io.Writer) (interface{}, error) {
	ids, err := parseJobIDs(args)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(stderr, "Waiting for %d job(s) to complete...\n", len(ids))
	return waitAll(ctx, c, ids)
}

func parseJobIDs(args []string) ([]types.JobID, error) {
	if len(args) == 0 {
		return nil, errors.New("missing job ID")
	}
	ids := types.JobIDs(args...)
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

func parseTime(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s time '%s': %v", name, value, err)
	}
	return t, nil
}
