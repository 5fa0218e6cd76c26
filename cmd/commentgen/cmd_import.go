package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// importCmd loads a survey file and registers its rows as the class roster
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a survey response file (.csv or .xlsx)",
	Long: `Import a survey response file and register one student per data row.

The first row names the columns. Columns whose name starts with Q followed
by a digit (Q1, Q2, ...) are treated as survey criteria; everything else is
identity data such as 학번 and 이름. Re-importing replaces the roster.

Legacy CSV exports in EUC-KR are supported via
'commentgen settings set --encoding euc-kr'.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	sess, cleanup, err := openSession()
	if err != nil {
		return err
	}
	defer cleanup()

	n, err := sess.ImportDataset(args[0])
	if err != nil {
		return err
	}
	if err := sess.Save(); err != nil {
		return err
	}

	schema := sess.Roster().Schema()
	fmt.Printf("Imported %d students from %s\n", n, args[0])
	fmt.Printf("Criteria columns: %d, identity columns: %d\n",
		len(schema.Criteria), len(schema.Identity))
	fmt.Println("Next: add style samples with 'commentgen style add', then run 'commentgen generate'.")
	return nil
}
