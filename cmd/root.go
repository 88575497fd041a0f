package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/ppartarr/songfiler/config"
	"github.com/ppartarr/songfiler/entity/index"
	"github.com/ppartarr/songfiler/util"
	"github.com/ppartarr/songfiler/util/anchor"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfg     *config.Config
	logFile *os.File
	cmdRoot = &cobra.Command{
		Use:               "songfiler",
		Short:             "Download songs, tag them with lyrics and cover art, file them into a library",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if logFile != nil {
				util.ErrSuppress(logFile.Close())
			}
		},
	}
	indexData = index.New()
	tui       = anchor.New(anchor.Red)
)

// runHook tags every log entry with the identifier of the run
type runHook string

func (hook runHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (hook runHook) Fire(entry *logrus.Entry) error {
	entry.Data["run"] = string(hook)
	return nil
}

func init() {
	cmdRoot.PersistentFlags().StringP("config", "c", "", "Configuration file (default "+config.DefaultPath()+")")
	cmdRoot.PersistentFlags().String("log", "", "Write diagnostic logs to file")
	cmdRoot.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

func setup(cmd *cobra.Command, _ []string) error {
	var (
		configPath = util.ErrWrap("")(cmd.Flags().GetString("config"))
		logPath    = util.ErrWrap("")(cmd.Flags().GetString("log"))
		debug      = util.ErrWrap(false)(cmd.Flags().GetBool("debug"))
	)

	logrus.SetOutput(io.Discard)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	logrus.SetLevel(logrus.InfoLevel)
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if logPath != "" {
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		logrus.SetOutput(file)
	} else if debug {
		logrus.SetOutput(os.Stderr)
	}
	logrus.AddHook(runHook(uuid.NewString()))

	var err error
	if cfg, err = config.Load(configPath); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logrus.WithField("command", cmd.Name()).Debug("configuration loaded")
	return nil
}

func Execute() {
	if err := cmdRoot.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
