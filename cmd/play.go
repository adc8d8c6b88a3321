package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/glossa-cli/glossa/asset"
	"github.com/glossa-cli/glossa/constant"
	"github.com/glossa-cli/glossa/controller"
	"github.com/glossa-cli/glossa/filesystem"
	"github.com/glossa-cli/glossa/key"
	"github.com/glossa-cli/glossa/log"
	"github.com/glossa-cli/glossa/player"
	"github.com/glossa-cli/glossa/sequence"
	"github.com/glossa-cli/glossa/tui"
	"github.com/glossa-cli/glossa/viewer"
	"github.com/glossa-cli/glossa/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// playFlags maps flags to the config keys they override.
var playFlags = map[string]string{
	"slow-rate": key.PlayerSlowRate,
	"headless":  key.AssetsHeadless,
	"mapping":   key.AssetsMapping,
	"script":    key.AssetsScript,
	"strict":    key.TranscriptionStrict,
	"captions":  key.PlayerTermCaptions,
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("transcript", "t", "", "Use this transcript file (JSON or YAML) instead of transcribing")
	cmd.Flags().BoolP("watch", "w", false, "Reload the transcript file when it changes (requires --transcript)")
	cmd.Flags().BoolP("tui", "T", false, "Show a terminal dashboard")

	cmd.Flags().Float64("slow-rate", 0.5, "Playback speed while clips are shown")
	cmd.Flags().Bool("headless", false, "Log clips instead of opening a clip window")
	cmd.Flags().StringP("mapping", "m", "", "Character to clip mapping file")
	cmd.Flags().StringP("script", "s", "", "Lua script building clip sequences")
	cmd.Flags().Bool("strict", false, "Drop segments whose start is not before their end")
	cmd.Flags().BoolP("captions", "c", false, "Print captions to the terminal")

	_ = cmd.MarkFlagFilename("transcript", "json", "yaml", "yml")
	_ = cmd.MarkFlagFilename("mapping", "json")
	_ = cmd.MarkFlagFilename("script", "lua")
}

// bindPlayFlags binds the flags of the command being run. Both the root and
// play commands carry them, and viper keeps one binding per key.
func bindPlayFlags(flags *pflag.FlagSet) {
	for name, k := range playFlags {
		lo.Must0(viper.BindPFlag(k, flags.Lookup(name)))
	}
}

func init() {
	rootCmd.AddCommand(playCmd)
	addPlayFlags(playCmd)
}

var playCmd = &cobra.Command{
	Use:     "play [video]",
	Short:   "Play a video with synchronized animation clips",
	Args:    cobra.ExactArgs(1),
	Example: "  " + constant.App + " play talk.mp4 --transcript talk.json --watch",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(runPlay(cmd, args[0]))
	},
}

func runPlay(cmd *cobra.Command, media string) error {
	bindPlayFlags(cmd.Flags())

	var (
		transcriptPath = lo.Must(cmd.Flags().GetString("transcript"))
		watch          = lo.Must(cmd.Flags().GetBool("watch"))
		withTUI        = lo.Must(cmd.Flags().GetBool("tui"))
	)

	if watch && transcriptPath == "" {
		return errors.New("--watch requires --transcript")
	}

	if exists, err := filesystem.API().Exists(media); err != nil || !exists {
		return fmt.Errorf("media %s not found", media)
	}

	CheckDependencies()

	mapping, err := loadMapping()
	if err != nil {
		return err
	}

	builder, err := newBuilder(mapping)
	if err != nil {
		return err
	}
	if closer, ok := builder.(*asset.LuaBuilder); ok {
		defer closer.Close()
	}

	presenter := newPresenter()
	if window, ok := presenter.(*player.ClipWindow); ok {
		defer func() { _ = window.Close() }()
	}

	video := player.NewMPV(player.Options{
		Title:  filepath.Base(media),
		Paused: true,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var (
		captions  []controller.CaptionSink
		reporter  viewer.Reporter = viewer.LogReporter{}
		dashboard *tui.Dashboard
	)
	if withTUI {
		dashboard = tui.New(&tui.Options{
			OnQuit:        cancel,
			OnTogglePause: video.TogglePause,
			OnReplay:      func() error { return video.Seek(0) },
		})
		captions = append(captions, dashboard)
		reporter = dashboard
	} else if viper.GetBool(key.PlayerTermCaptions) {
		captions = append(captions, &viewer.ConsoleCaptions{Out: cmd.OutOrStdout()})
	}

	watchPath := ""
	if watch {
		watchPath = transcriptPath
	}

	session := viewer.New(viewer.Options{
		Video:    video,
		Loader:   asset.NewClipLoader(presenter, mapping, asset.NewDurationCache(where.Durations()), seconds(viper.GetFloat64(key.AssetsDefaultDuration))),
		Runner:   newRunner(),
		Service:  newTranscriptionService(transcriptPath),
		Builder:  builder,
		Captions: captions,
		Reporter: reporter,
		Strict:   viper.GetBool(key.TranscriptionStrict),
		Chapters: viper.GetBool(key.PlayerChapters),
		OSD:      viper.GetBool(key.PlayerOSDCaptions),
		Watch:    watchPath,
	})
	defer func() {
		if err := session.Close(); err != nil {
			log.Warnf("close session: %v", err)
		}
	}()

	if dashboard == nil {
		if err := session.Open(ctx, media); err != nil {
			return err
		}
		return session.Run(ctx)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer dashboard.Quit()
		if err := session.Open(ctx, media); err != nil {
			return err
		}
		return session.Run(ctx)
	})
	g.Go(func() error {
		defer cancel()
		return dashboard.Run()
	})

	return g.Wait()
}

func newRunner() *sequence.Runner {
	restore := sequence.RestoreIfCurrent
	if !viper.GetBool(key.PlayerGuardRestore) {
		restore = sequence.RestoreAlways
	}
	return sequence.NewRunner(viper.GetFloat64(key.PlayerSlowRate), restore)
}

func newPresenter() asset.Presenter {
	if viper.GetBool(key.AssetsHeadless) {
		return asset.LogPresenter{}
	}
	return player.NewClipWindow(constant.App+" clips", viper.GetString(key.AssetsBackground))
}
