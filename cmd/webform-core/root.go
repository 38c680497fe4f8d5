package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/foofus-project/webform-core/internal/attempt"
	"github.com/foofus-project/webform-core/internal/option"
	"github.com/foofus-project/webform-core/internal/transport"
	"github.com/foofus-project/webform-core/internal/wflog"
)

// cliFlags mirrors Medusa's -h/-u/-p/-U/-P/-m argument surface, adapted
// to cobra flags: repeatable --option is the module's "-m KEY:VALUE",
// --user/--pass (or the file variants) stand in for the host
// framework's credential lists.
type cliFlags struct {
	host      string
	port      int
	ssl       bool
	socks5    string
	verbose   bool
	repairURI bool

	users         []string
	passwords     []string
	usersFile     string
	passwordsFile string

	options []string
}

func newRootCmd() *cobra.Command {
	flags := &cliFlags{}

	cmd := &cobra.Command{
		Use:   "webform-core",
		Short: "Standalone runner for the web-form brute-forcing core",
		Long: "webform-core drives the web-form module's attempt state machine\n" +
			"against a real HTTP(S) login endpoint, standing in for the\n" +
			"Medusa host framework this core is designed to run under.\n\n" +
			option.Usage(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAttempt(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.host, "host", "", "target hostname or IP (required)")
	cmd.Flags().IntVar(&flags.port, "port", 0, "target port; defaults to 443 with --ssl, 80 otherwise")
	cmd.Flags().BoolVar(&flags.ssl, "ssl", false, "connect over TLS instead of plain TCP")
	cmd.Flags().StringVar(&flags.socks5, "socks5", "", "optional SOCKS5 proxy address (host:port) to dial through")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "log at debug level")
	cmd.Flags().BoolVar(&flags.repairURI, "repair-uri-redirects", false, "split scheme/authority from path on a full-URI Location header instead of the literal source behavior")

	cmd.Flags().StringArrayVarP(&flags.users, "user", "u", nil, "username to test (repeatable)")
	cmd.Flags().StringArrayVarP(&flags.passwords, "pass", "p", nil, "password to test (repeatable)")
	cmd.Flags().StringVar(&flags.usersFile, "users-file", "", "file of usernames, one per line")
	cmd.Flags().StringVar(&flags.passwordsFile, "passwords-file", "", "file of passwords, one per line")

	cmd.Flags().StringArrayVarP(&flags.options, "option", "m", nil, "module option KEY:VALUE (repeatable, see above)")

	cmd.MarkFlagRequired("host")

	return cmd
}

func runAttempt(ctx context.Context, flags *cliFlags) error {
	log := logrus.StandardLogger()
	if flags.verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	logger := wflog.Default()

	users, err := collectList(flags.users, flags.usersFile)
	if err != nil {
		return fmt.Errorf("reading users: %w", err)
	}
	passwords, err := collectList(flags.passwords, flags.passwordsFile)
	if err != nil {
		return fmt.Errorf("reading passwords: %w", err)
	}
	if len(users) == 0 || len(passwords) == 0 {
		return fmt.Errorf("at least one --user/--users-file and one --pass/--passwords-file value is required")
	}

	port := flags.port
	if port == 0 {
		if flags.ssl {
			port = 443
		} else {
			port = 80
		}
	}

	optCfg := option.Parse(flags.options, logger)
	hostHeader := flags.host + ":" + strconv.Itoa(port)
	cfg := attempt.NewConfig(optCfg, hostHeader)
	cfg.RepairURIRedirects = flags.repairURI

	creds := &transport.ListCredentialSource{Users: users, Password: passwords}
	info := transport.HostInfo{Hostname: flags.host, Port: port, UseTLS: flags.ssl}
	adapter := transport.NewDialAdapter(info, creds, logger)
	adapter.SOCKS5ProxyAddr = flags.socks5

	machine := attempt.NewMachine(cfg, adapter, logger)
	if err := machine.Run(ctx); err != nil {
		return err
	}

	success, fail, unknown := machine.Summary()
	fmt.Printf("attempts complete: %d success, %d fail, %d unknown\n", success, fail, unknown)
	for _, v := range creds.Verdicts {
		if v.Verdict == transport.VerdictSuccess {
			fmt.Printf("  SUCCESS password=%q\n", v.Password)
		}
	}
	return nil
}

// collectList merges inline values with a newline-delimited file, in
// that order, the way Medusa's -u/-U and -p/-P pairs both feed the same
// credential list.
func collectList(inline []string, file string) ([]string, error) {
	values := append([]string{}, inline...)
	if file == "" {
		return values, nil
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		values = append(values, line)
	}
	return values, scanner.Err()
}
