package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/labelkit/labelkit/pkg/hub"
)

var authConnector string

// authCmd groups hub identity commands.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage hub identity",
	Long: `Sign up and sign in against the hosted hub identity service.

Connector settings are read from an env file with HUB_URL and HUB_KEY.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var authSignupCmd = &cobra.Command{
	Use:   "signup <email>",
	Short: "Register a new hub account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := hubClient()
		if err != nil {
			return err
		}
		secret, err := client.SignUp(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "login secret: %s\n", secret)
		return nil
	},
}

var authSigninCmd = &cobra.Command{
	Use:   "signin <email> <secret>",
	Short: "Sign in to the hub",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := hubClient()
		if err != nil {
			return err
		}
		userID, err := client.SignIn(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "user id: %s\n", userID)
		return nil
	},
}

func hubClient() (*hub.Client, error) {
	connector, err := hub.LoadConnector(authConnector)
	if err != nil {
		return nil, err
	}
	return hub.New(connector), nil
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authSignupCmd, authSigninCmd)

	authCmd.PersistentFlags().StringVar(&authConnector, "connector", "connector.env", "connector env file with HUB_URL and HUB_KEY")
}
