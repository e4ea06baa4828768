package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cloudjanitor/vpc-reaper/internal/app"
	apperrors "github.com/cloudjanitor/vpc-reaper/internal/errors"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
	output    string
	dryRun    bool
	force     bool
)

var rootCmd = &cobra.Command{
	Use:   "vpc-reaper <vpc-id>",
	Short: "Deletes a VPC and every resource inside it, in dependency order.",
	Long: `vpc-reaper tears down an AWS VPC that the console refuses to delete
because of leftover dependencies. It walks a fixed plan from workloads down
to the network fabric, retries resources that report themselves in use after
clearing the usual blockers (endpoint services, gateway load balancer
endpoints, cross-referencing security group rules), and prints a summary of
what was deleted and what still stands in the way.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		scopeID := args[0]

		if !dryRun && !force {
			if !confirm(scopeID) {
				fmt.Fprintln(os.Stderr, "Aborted.")
				return nil
			}
		}

		application, bootstrapErr := app.BuildApplicationFromViper(cmd.Context(), viper.GetViper(), app.Options{
			ScopeID: scopeID,
			DryRun:  dryRun,
		})
		if bootstrapErr != nil {
			fmt.Fprintf(os.Stderr, "ERROR: initialization failed: %v\n", bootstrapErr)
			if appErr := (*apperrors.AppError)(nil); errors.As(bootstrapErr, &appErr) {
				if appErr.IsUserFacing {
					fmt.Fprintf(os.Stderr, "Error Details: %s\n", appErr.Message)
					if appErr.SuggestedAction != "" {
						fmt.Fprintf(os.Stderr, "Suggestion: %s\n", appErr.SuggestedAction)
					}
				}
			}
			return bootstrapErr
		}

		runErr := application.Run(cmd.Context())
		if runErr != nil {
			// The reporter already explained an incomplete teardown.
			if !apperrors.Is(runErr, apperrors.CodeTeardownIncomplete) {
				userMsg, suggestion, _ := apperrors.GetUserFacingMessage(runErr)
				fmt.Fprintf(os.Stderr, "ERROR: %s\n", userMsg)
				if suggestion != "" {
					fmt.Fprintf(os.Stderr, "Suggestion: %s\n", suggestion)
				}
			}
			return runErr
		}
		return nil
	},
}

func confirm(scopeID string) bool {
	fmt.Fprintf(os.Stderr, "About to delete VPC %s and EVERY resource inside it. This cannot be undone.\n", scopeID)
	fmt.Fprint(os.Stderr, "Type 'yes' to continue: ")
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "yes" || answer == "y"
}

func Execute() int {
	rootCtx, stop := signalContext()
	defer stop()

	if err := rootCmd.ExecuteContext(rootCtx); err != nil {
		return 1
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file path (default is .vpc-reaper.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Override log format (text, json)")
	// The bound flag's default is what viper falls back to when neither the
	// flag, the environment, nor a config file sets the key, so it must be a
	// valid format rather than the empty string.
	rootCmd.Flags().StringVarP(&output, "output", "o", "text", "Report format (text, json)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "List what would be deleted without deleting anything")
	rootCmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")

	viper.BindPFlag("settings.log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("settings.log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("settings.output", rootCmd.Flags().Lookup("output"))

	viper.SetEnvPrefix("REAPER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

func initializeConfig(cmd *cobra.Command) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigName(".vpc-reaper")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return apperrors.Wrap(err, apperrors.CodeConfigReadError, "failed to read config file")
		}
	} else {
		fmt.Fprintln(os.Stderr, "Using configuration file:", viper.ConfigFileUsed())
	}

	return nil
}
