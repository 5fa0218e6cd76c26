package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"commentgen/internal/export"
)

var (
	exportFormat string
	exportOut    string
)

// exportCmd writes the confirmed comments to a file
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export confirmed comments to CSV or XLSX",
	Long: `Write one row per confirmed student, in roster order, with the
comment and its character count. Students without a confirmed comment are
left out.

The default output name carries today's date, e.g. 종합의견_20260830.csv.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	sess, cleanup, err := openSession()
	if err != nil {
		return err
	}
	defer cleanup()

	students := sess.Roster().Students()
	if len(students) == 0 {
		return errors.New("no roster loaded; run 'commentgen import' first")
	}
	finals := sess.Ledger().Finals()
	if sess.Ledger().FinalCount() == 0 {
		return errors.New("no confirmed comments yet; confirm drafts in 'commentgen generate' first")
	}

	now := time.Now()
	path := exportOut
	switch exportFormat {
	case "csv":
		if path == "" {
			path = export.CSVFilename(now)
		}
	case "xlsx":
		if path == "" {
			path = export.XLSXFilename(now)
		}
	default:
		return fmt.Errorf("unknown format: %s (csv, xlsx)", exportFormat)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if exportFormat == "csv" {
		err = export.WriteCSV(f, students, finals)
	} else {
		err = export.WriteXLSX(f, students, finals)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d students, %d confirmed)\n",
		path, len(students), sess.Ledger().FinalCount())
	return nil
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "output format (csv, xlsx)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path (default 종합의견_<date>.<format>)")
}
