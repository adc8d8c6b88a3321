package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/glossa-cli/glossa/color"
	"github.com/glossa-cli/glossa/icon"
	"github.com/glossa-cli/glossa/key"
	"github.com/glossa-cli/glossa/style"
	"github.com/glossa-cli/glossa/transcript"
	"github.com/glossa-cli/glossa/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(transcribeCmd)
	transcribeCmd.Flags().StringP("output", "o", "", "Write the transcript to this file (.json, .yaml) instead of stdout")
	transcribeCmd.Flags().Bool("no-sequences", false, "Do not build clip sequences for the segments")
	transcribeCmd.Flags().StringP("mapping", "m", "", "Character to clip mapping file")
	transcribeCmd.Flags().StringP("script", "s", "", "Lua script building clip sequences")
	lo.Must0(viper.BindPFlag(key.AssetsMapping, transcribeCmd.Flags().Lookup("mapping")))
	lo.Must0(viper.BindPFlag(key.AssetsScript, transcribeCmd.Flags().Lookup("script")))

	transcribeCmd.SetOut(os.Stdout)
}

var transcribeCmd = &cobra.Command{
	Use:   "transcribe [video]",
	Short: "Transcribe a video into a transcript file",
	Long: `Send a video to the transcription service and print the resulting transcript.
Segments get clip sequences from the mapping or script unless --no-sequences is set.
The output can be edited and passed back with play --transcript.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			media   = args[0]
			output  = lo.Must(cmd.Flags().GetString("output"))
			noSeqs  = lo.Must(cmd.Flags().GetBool("no-sequences"))
			service = newTranscriptionService("")
		)

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		erase := util.PrintErasable(fmt.Sprintf("%s Transcribing %s...", icon.Get(icon.Progress), filepath.Base(media)))
		t, err := service.Transcribe(ctx, media)
		erase()
		handleErr(err)

		if !noSeqs {
			mapping, err := loadMapping()
			handleErr(err)

			builder, err := newBuilder(mapping)
			handleErr(err)
			handleErr(transcript.Fill(t, builder))
		}

		if output == "" {
			data, err := transcript.Encode(t, transcript.JSON)
			handleErr(err)
			cmd.Println(string(data))
			return
		}

		handleErr(transcript.WriteFile(output, t))
		fmt.Printf(
			"%s wrote %s to %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			util.Quantify(len(t.Segments), "segment", "segments"),
			output,
		)
	},
}
