package cmd

import (
	"fmt"
	"os"
	"os/user"
	"strings"
	"text/template"

	"github.com/glossa-cli/glossa/asset"
	"github.com/glossa-cli/glossa/color"
	"github.com/glossa-cli/glossa/constant"
	"github.com/glossa-cli/glossa/filesystem"
	"github.com/glossa-cli/glossa/icon"
	"github.com/glossa-cli/glossa/style"
	"github.com/glossa-cli/glossa/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scriptCmd)
	scriptCmd.AddCommand(scriptNewCmd, scriptRunCmd)

	scriptNewCmd.Flags().StringP("author", "a", "", "Script author; defaults to the current user")
	scriptNewCmd.Flags().BoolP("force", "f", false, "Overwrite an existing script")

	scriptRunCmd.SetOut(os.Stdout)
}

var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Manage Lua scripts that build clip sequences",
}

var scriptNewCmd = &cobra.Command{
	Use:     "new [name]",
	Short:   "Create a sequence script from the template",
	Args:    cobra.ExactArgs(1),
	Example: "  " + constant.App + " script new reverse",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			name   = util.SanitizeFilename(strings.TrimSuffix(args[0], ".lua"))
			path   = scriptPath(name)
			author = lo.Must(cmd.Flags().GetString("author"))
			force  = lo.Must(cmd.Flags().GetBool("force"))
		)

		if author == "" {
			if u, err := user.Current(); err == nil {
				author = u.Username
			}
		}

		if exists := lo.Must(filesystem.API().Exists(path)); exists && !force {
			handleErr(fmt.Errorf("%s already exists, use --force to overwrite", path))
		}

		tmpl := template.Must(template.New("script").Funcs(template.FuncMap{
			"repeat": strings.Repeat,
			"plus":   func(a, b int) int { return a + b },
		}).Parse(constant.SequenceScriptTemplate))

		var b strings.Builder
		handleErr(tmpl.Execute(&b, struct {
			Name, Author, SequenceFn string
		}{name, author, constant.SequenceFn}))

		handleErr(filesystem.API().WriteFile(path, []byte(b.String()), 0644))
		fmt.Printf("%s created %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), path)
	},
}

var scriptRunCmd = &cobra.Command{
	Use:   "run [script] [text]",
	Short: "Run a sequence script on text and print the clips",
	Long: `Load a sequence script with the configured mapping and print the clip
references it builds for the given text. Useful while writing scripts.`,
	Args:    cobra.MinimumNArgs(2),
	Example: "  " + constant.App + " script run reverse \"hello there\"",
	Run: func(cmd *cobra.Command, args []string) {
		mapping, err := loadMapping()
		handleErr(err)

		builder, err := asset.LoadLuaBuilder(scriptPath(args[0]), mapping)
		handleErr(err)
		defer builder.Close()

		refs, err := builder.Build(strings.Join(args[1:], " "))
		handleErr(err)

		for i, ref := range refs {
			cmd.Printf("%s %s\n", style.Faint(fmt.Sprintf("%3d", i+1)), ref)
		}
	},
}
