// Copyright (c) Facebook, Inc. and its affiliates.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cookapi/jobclient/pkg/auth"
	"github.com/cookapi/jobclient/pkg/client"
	"github.com/cookapi/jobclient/pkg/config"
	"github.com/cookapi/jobclient/pkg/logging"

	"github.com/insomniacslk/xjson"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
	"golang.org/x/crypto/ssh/terminal"
)

const (
	defaultURL     = "http://localhost:12321"
	defaultRunName = "cookcli-run"
)

var (
	flagSet          *flag.FlagSet
	flagURL          *string
	flagConfig       *string
	flagAuth         *string
	flagUser         *string
	flagPassword     *string
	flagKrb5Conf     *string
	flagCCache       *string
	flagSPN          *string
	flagBatchSize    *int
	flagPollInterval *time.Duration
	flagTimeout      *time.Duration
	flagYAML         *bool
	flagWait         *bool
	flagDebug        *bool

	// Flags for the "retry" command.
	flagRetries *int

	// Flags for the "list" command.
	flagOwner  *string
	flagStates *[]string
	flagStart  *string
	flagStop   *string
	flagLimit  *int

	// Flags for the "run" command.
	flagName *string
	flagCPUs *float64
	flagMem  *float64
)

func initFlags(cmd string) {
	flagSet = flag.NewFlagSet(cmd, flag.ContinueOnError)
	flagURL = flagSet.String("url", defaultURL, "Cook scheduler base URL, scheme://host:port[/basepath]")
	flagConfig = flagSet.StringP("config", "c", "", "Client configuration file, JSON or YAML. Flags override its values")
	flagAuth = flagSet.String("auth", "", fmt.Sprintf("Authentication scheme, %s (default) or %s", auth.SchemeBasic, auth.SchemeKerberos))
	flagUser = flagSet.StringP("user", "u", "", "User name for HTTP basic authentication, defaults to $USER")
	flagPassword = flagSet.String("password", "", "Password for HTTP basic authentication, prompted for on a terminal if missing")
	flagKrb5Conf = flagSet.String("krb5-conf", "", "Path of krb5.conf for Kerberos authentication")
	flagCCache = flagSet.String("ccache", "", "Path of the Kerberos credential cache")
	flagSPN = flagSet.String("spn", "", "Service principal of the scheduler, defaults to HTTP/<host>")
	flagBatchSize = flagSet.Int("batch-size", client.DefaultBatchSize, "Maximum number of jobs per query or delete request")
	flagPollInterval = flagSet.Duration("poll-interval", client.DefaultPollInterval, "Time between two status polls while waiting for jobs")
	flagTimeout = flagSet.Duration("timeout", client.DefaultRequestTimeout, "Timeout of every HTTP request")
	flagYAML = flagSet.BoolP("yaml", "Y", false, "Parse job descriptions as YAML instead of JSON")
	flagWait = flagSet.BoolP("wait", "w", false, "After submitting jobs, wait for them to finish, and exit 0 only if all of them succeeded")
	flagDebug = flagSet.Bool("debug", false, "Enable debug logging")

	flagRetries = flagSet.Int("retries", 1, "Number of retries for the retry command")

	flagOwner = flagSet.String("owner", "", "User whose jobs are listed, defaults to the current user")
	flagStates = flagSet.StringSlice("states", []string{}, "List of job states for the list command. A job must be in any of the specified states to match.")
	flagStart = flagSet.String("start", "", "Only list jobs submitted after this RFC3339 time")
	flagStop = flagSet.String("stop", "", "Only list jobs submitted before this RFC3339 time")
	flagLimit = flagSet.Int("limit", 0, "Maximum number of listed jobs, 0 means no limit")

	flagName = flagSet.String("name", defaultRunName, "Name of the job created by the run command")
	flagCPUs = flagSet.Float64("cpus", 0, "CPUs of the job created by the run command")
	flagMem = flagSet.Float64("mem", 0, "Memory in MB of the job created by the run command")

	flagSet.Usage = func() {
		fmt.Fprintf(flagSet.Output(),
			`Usage:

  cookcli [flags] command

Commands:
  submit [file...]
        submit the jobs described in the specified files, or passed via
        stdin. A file holds a job, a list of jobs or {"jobs": [...]}.
        when used with --wait flag, stdout will have two JSON outputs
        for the submitted job IDs and the finished jobs separated with newline
  query uuid...
        get the status of one or more jobs
  delete uuid...
        kill one or more jobs
  retry [--retries=N] uuid...
        set the number of retries of one or more jobs
  list [--owner=user] [--states=running,...] [--start=time] [--stop=time] [--limit=N]
        list jobs by user, state and submission time
  wait uuid...
        wait for one or more jobs to finish
  run [--name=name] [--cpus=N] [--mem=N] -- command [args...]
        submit a job running the given command

Flags:
`)
		flagSet.PrintDefaults()
	}
}

// readPassword prompts for a password if stdin is a terminal. It returns an
// empty password otherwise.
var readPassword = func(prompt io.Writer, user string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !terminal.IsTerminal(fd) {
		return "", nil
	}
	fmt.Fprintf(prompt, "Password for %s: ", user)
	password, err := terminal.ReadPassword(fd)
	fmt.Fprintln(prompt)
	if err != nil {
		return "", fmt.Errorf("cannot read password: %w", err)
	}
	return string(password), nil
}

// CLIMain parses the command line and runs the requested command against the
// scheduler.
func CLIMain(cmd string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	initFlags(cmd)
	flagSet.SetOutput(stderr)
	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}
	if *flagDebug {
		logging.SetLevel(logrus.DebugLevel)
	}
	verb := strings.ToLower(flagSet.Arg(0))
	if verb == "" {
		return fmt.Errorf("missing verb, see --help")
	}
	if _, ok := verbs[verb]; !ok {
		return fmt.Errorf("invalid verb: '%s'", verb)
	}
	url, opts, err := clientOptions(stderr)
	if err != nil {
		return err
	}
	c, err := client.New(url, opts...)
	if err != nil {
		return err
	}
	return run(context.Background(), verb, flagSet.Args()[1:], c, stdin, stdout, stderr)
}

// clientOptions merges the configuration file, if any, with the command
// line flags. Flags win over the file.
func clientOptions(stderr io.Writer) (string, []client.Option, error) {
	cfg := &config.ClientConfig{}
	if *flagConfig != "" {
		var err error
		if cfg, err = config.LoadClientConfig(*flagConfig); err != nil {
			return "", nil, err
		}
	}
	url := cfg.URLString()
	if url == "" || flagSet.Changed("url") {
		url = *flagURL
	}

	if *flagAuth != "" {
		cfg.Auth.Scheme = auth.Scheme(*flagAuth)
	}
	if cfg.Auth.Scheme == "" {
		cfg.Auth.Scheme = auth.SchemeBasic
	}
	if *flagUser != "" {
		cfg.Auth.User = *flagUser
	}
	if *flagPassword != "" {
		cfg.Auth.Password = *flagPassword
	}
	if *flagKrb5Conf != "" {
		cfg.Auth.Krb5Conf = *flagKrb5Conf
	}
	if *flagCCache != "" {
		cfg.Auth.CCache = *flagCCache
	}
	if *flagSPN != "" {
		cfg.Auth.SPN = *flagSPN
	}
	if cfg.Auth.Scheme == auth.SchemeBasic {
		if cfg.Auth.User == "" {
			cfg.Auth.User = os.Getenv("USER")
		}
		if cfg.Auth.Password == "" {
			password, err := readPassword(stderr, cfg.Auth.User)
			if err != nil {
				return "", nil, err
			}
			cfg.Auth.Password = password
		}
	}

	if cfg.BatchSize == 0 || flagSet.Changed("batch-size") {
		cfg.BatchSize = *flagBatchSize
	}
	if cfg.PollInterval == 0 || flagSet.Changed("poll-interval") {
		cfg.PollInterval = xjson.Duration(*flagPollInterval)
	}
	if cfg.RequestTimeout == 0 || flagSet.Changed("timeout") {
		cfg.RequestTimeout = xjson.Duration(*flagTimeout)
	}

	opts, err := cfg.Options()
	if err != nil {
		return "", nil, err
	}
	opts = append(opts, client.OptionLogger{Entry: logging.GetLogger("cookcli")})
	return url, opts, nil
}
