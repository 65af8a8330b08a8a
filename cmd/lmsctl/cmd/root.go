// Package cmd implements lmsctl, a terminal client for the LMS backend that
// shares the portal's session model.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-lmsportal/internal/app/middleware"
	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
	"github.com/FACorreiaa/go-lmsportal/internal/app/session"
	"github.com/FACorreiaa/go-lmsportal/internal/pkg/apiclient"
	"github.com/FACorreiaa/go-lmsportal/pkg/logger"
)

const defaultAPIURL = "http://localhost:8000"

type options struct {
	apiURL    string
	configDir string
	logLevel  string
	timeout   time.Duration
}

// env is what every command needs: a manager over the on-disk token and a
// client that authenticates with it.
type env struct {
	store   *session.FileStore
	manager *session.Manager
	api     *apiclient.Client
	logger  *zap.Logger
}

func (o *options) env() (*env, error) {
	store, err := session.NewFileStore(o.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create credential store: %w", err)
	}

	log := zap.NewNop()
	if o.logLevel != "" {
		if err := logger.Init(logger.ParseLevel(o.logLevel), logger.FormatConsole); err != nil {
			return nil, err
		}
		log = logger.Log
	}

	api := apiclient.New(o.apiURL, log, apiclient.WithTimeout(o.timeout), apiclient.WithTokens(store))
	return &env{
		store:   store,
		manager: session.NewManager(store, api, log),
		api:     api,
		logger:  log,
	}, nil
}

// require applies the same guard the portal routes use.
func (e *env) require(role models.Role) (*models.Session, error) {
	sess := e.manager.Current()
	switch middleware.Evaluate(sess, middleware.Policy{RequiredRole: role}) {
	case middleware.RedirectLogin:
		return nil, fmt.Errorf("not logged in (run lmsctl login)")
	case middleware.RedirectHome:
		return nil, fmt.Errorf("this command requires the %s role, you are %s", role, sess.Role)
	}
	return sess, nil
}

// NewRootCmd builds the lmsctl command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "lmsctl",
		Short: "LMS CLI - manage users, courses and departments",
		Long: `lmsctl is the command-line client for the LMS backend. It logs in with the
same credentials as the web portal and keeps the access token in ~/.lms/token.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", envOrDefault("LMS_API_URL", defaultAPIURL), "LMS backend base URL (also set via LMS_API_URL)")
	rootCmd.PersistentFlags().StringVar(&opts.configDir, "config-dir", os.Getenv("LMS_CONFIG_DIR"), "Directory holding the token file (default ~/.lms)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Enable logging at this level (debug, info, warn)")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 15*time.Second, "Backend request timeout")

	rootCmd.AddCommand(newLoginCmd(opts))
	rootCmd.AddCommand(newLogoutCmd(opts))
	rootCmd.AddCommand(newStatusCmd(opts))
	rootCmd.AddCommand(newUsersCmd(opts))
	rootCmd.AddCommand(newCoursesCmd(opts))
	rootCmd.AddCommand(newDepartmentsCmd(opts))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
