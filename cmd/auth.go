package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/glossa-cli/glossa/auth"
	"github.com/glossa-cli/glossa/color"
	"github.com/glossa-cli/glossa/icon"
	"github.com/glossa-cli/glossa/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authSetCmd, authDeleteCmd)

	authSetCmd.Flags().StringP("key", "k", "", "API key; prompted for when omitted")
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the transcription service API key",
	Long: fmt.Sprintf(`Manage the API key sent to the transcription service as a bearer token.
The key is kept in the system keyring. %s takes precedence when set.`, auth.EnvAPIKey),
}

var authSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store the API key in the system keyring",
	Run: func(cmd *cobra.Command, args []string) {
		token := lo.Must(cmd.Flags().GetString("key"))

		if token == "" {
			prompt := &survey.Password{Message: "API key"}
			handleErr(survey.AskOne(prompt, &token, survey.WithValidator(survey.Required)))
		}

		token = strings.TrimSpace(token)
		if token == "" {
			handleErr(errors.New("empty API key"))
		}

		handleErr(auth.SetAPIKey(token))
		fmt.Printf("%s API key saved\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

var authDeleteCmd = &cobra.Command{
	Use:     "delete",
	Aliases: []string{"remove"},
	Short:   "Remove the API key from the system keyring",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(auth.DeleteAPIKey())
		fmt.Printf("%s API key removed\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}
