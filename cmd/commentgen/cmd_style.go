package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
)

// styleCmd manages the sample comments that teach the model the writing style
var styleCmd = &cobra.Command{
	Use:   "style",
	Short: "Manage style sample comments",
	Long: `Manage the sample comments used to mirror your writing style.

At least one non-blank sample is required before generation. Samples are
numbered; use the number with 'set' and 'remove'.

Available subcommands:
  list           - Show all samples
  add [text]     - Add a sample (empty slot when no text given)
  set <n> <text> - Replace sample n
  remove <n>     - Remove sample n (required samples cannot be removed)`,
}

var styleListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all style samples",
	RunE:  runStyleList,
}

var styleAddCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Add a style sample",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStyleAdd,
}

var styleSetCmd = &cobra.Command{
	Use:   "set <n> <text>",
	Short: "Replace a style sample",
	Args:  cobra.ExactArgs(2),
	RunE:  runStyleSet,
}

var styleRemoveCmd = &cobra.Command{
	Use:   "remove <n>",
	Short: "Remove a style sample",
	Args:  cobra.ExactArgs(1),
	RunE:  runStyleRemove,
}

func runStyleList(cmd *cobra.Command, args []string) error {
	sess, cleanup, err := openSession()
	if err != nil {
		return err
	}
	defer cleanup()

	for _, sample := range sess.Styles().Samples() {
		text := sample.Text
		if strings.TrimSpace(text) == "" {
			text = "(비어 있음)"
		}
		marker := " "
		if sample.Required {
			marker = "*"
		}
		fmt.Printf("%s %d. %s (%d자)\n", marker, sample.ID, text, utf8.RuneCountInString(sample.Text))
	}
	if !sess.Styles().Ready() {
		fmt.Println("\nAt least one non-blank sample is required before generation.")
	}
	return nil
}

func runStyleAdd(cmd *cobra.Command, args []string) error {
	sess, cleanup, err := openSession()
	if err != nil {
		return err
	}
	defer cleanup()

	sample := sess.Styles().Add()
	if len(args) == 1 {
		sess.Styles().Update(sample.ID, args[0])
	}
	if err := sess.Save(); err != nil {
		return err
	}
	fmt.Printf("Added sample %d.\n", sample.ID)
	return nil
}

func runStyleSet(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("sample number must be an integer: %s", args[0])
	}

	sess, cleanup, err := openSession()
	if err != nil {
		return err
	}
	defer cleanup()

	sess.Styles().Update(id, args[1])
	if err := sess.Save(); err != nil {
		return err
	}
	fmt.Printf("Updated sample %d.\n", id)
	return nil
}

func runStyleRemove(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("sample number must be an integer: %s", args[0])
	}

	sess, cleanup, err := openSession()
	if err != nil {
		return err
	}
	defer cleanup()

	before := sess.Styles().Len()
	sess.Styles().Remove(id)
	if sess.Styles().Len() == before {
		fmt.Println("Nothing removed: unknown number, a required sample, or the last remaining slot.")
		return nil
	}
	if err := sess.Save(); err != nil {
		return err
	}
	fmt.Printf("Removed sample %d.\n", id)
	return nil
}

func init() {
	styleCmd.AddCommand(styleListCmd)
	styleCmd.AddCommand(styleAddCmd)
	styleCmd.AddCommand(styleSetCmd)
	styleCmd.AddCommand(styleRemoveCmd)
}
