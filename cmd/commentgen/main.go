package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"commentgen/internal/config"
	"commentgen/internal/llm"
	"commentgen/internal/logging"
	"commentgen/internal/session"
)

var (
	// Global flags
	cfgPath   string
	debugMode bool

	// Loaded in PersistentPreRunE, shared by all commands.
	settings *config.Settings
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "commentgen",
	Short: "commentgen - 학생 종합의견 생성 도우미",
	Long: `commentgen turns per-student survey responses into draft narrative
comments (종합의견) written in the teacher's own style.

Workflow:
  1. commentgen import <survey.csv|.xlsx>   load the class survey
  2. commentgen style add "..."             register style sample comments
  3. commentgen generate                    interactive per-student drafting
  4. commentgen export                      write confirmed comments to a file

Provider credentials and prompt tuning live in settings; see
'commentgen settings --help'.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgPath == "" {
			cfgPath = config.DefaultPath()
		}
		var err error
		settings, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		if debugMode {
			settings.DebugMode = true
		}
		// Initialize appends .commentgen/logs to the workspace, so hand it
		// the parent of the config directory.
		return logging.Initialize(filepath.Dir(filepath.Dir(cfgPath)), settings.DebugMode)
	},
}

// sessionPath returns the SQLite file holding the working session, next to
// the config file.
func sessionPath() string {
	return filepath.Join(filepath.Dir(cfgPath), "session.db")
}

// openSession resumes the persisted session. The returned cleanup closes the
// backing store.
func openSession() (*session.Session, func(), error) {
	store, err := session.NewStore(sessionPath())
	if err != nil {
		return nil, nil, err
	}

	client, err := llm.New(settings)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	sess := session.New(settings, store, client)
	if err := sess.Resume(); err != nil {
		store.Close()
		return nil, nil, err
	}
	return sess, func() { store.Close() }, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.commentgen/config.json)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging under the config directory")

	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(styleCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
