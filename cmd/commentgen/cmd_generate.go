package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"commentgen/internal/llm"
	"commentgen/internal/roster"
	"commentgen/internal/selection"
	"commentgen/internal/session"
)

// generateCmd runs the interactive per-student drafting loop
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Draft comments student by student (interactive)",
	Long: `Walk the roster student by student: pick the survey criteria to use,
optionally tag observed traits, generate a draft, edit or regenerate it, and
confirm it as the student's final comment.

Type 'help' inside the loop for the available commands.`,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	sess, cleanup, err := openSession()
	if err != nil {
		return err
	}
	defer cleanup()

	if sess.Roster().Len() == 0 {
		return errors.New("no roster loaded; run 'commentgen import' first")
	}
	if err := sess.BeginGeneration(); err != nil {
		return err
	}

	loop := &generateLoop{sess: sess, out: cmd.OutOrStdout()}
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	loop.printStudents()
	fmt.Fprintln(loop.out, "\nCommands: help, students, select <n>, criteria, toggle <n>, traits, trait <n>, gen, history, final <n>, amend <n> <text>, show, edit <text>, ok, clear, done")

	for {
		fmt.Fprint(loop.out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "done" || line == "quit" || line == "exit" {
			break
		}
		if err := loop.handle(line); err != nil {
			fmt.Fprintln(loop.out, "Error:", err)
		}
	}

	if err := sess.Save(); err != nil {
		return err
	}
	fmt.Fprintf(loop.out, "Session saved. %d of %d students have a confirmed comment.\n",
		sess.Ledger().FinalCount(), sess.Roster().Len())
	return nil
}

type generateLoop struct {
	sess *session.Session
	out  io.Writer
}

func (g *generateLoop) handle(line string) error {
	fields := strings.SplitN(line, " ", 2)
	verb := fields[0]
	arg := ""
	if len(fields) == 2 {
		arg = strings.TrimSpace(fields[1])
	}

	switch verb {
	case "help":
		g.printHelp()
	case "students":
		g.printStudents()
	case "select":
		return g.selectStudent(arg)
	case "criteria":
		return g.printCriteria()
	case "toggle":
		return g.toggleCriterion(arg)
	case "traits":
		g.printTraits()
	case "trait":
		return g.toggleTrait(arg)
	case "gen":
		return g.generate()
	case "history":
		return g.printHistory()
	case "final":
		return g.finalizeEntry(arg)
	case "amend":
		return g.amendEntry(arg)
	case "show":
		g.printDraft()
	case "edit":
		g.sess.SetDraft(arg)
		g.printDraft()
	case "ok":
		if err := g.sess.ConfirmDraft(); err != nil {
			return err
		}
		fmt.Fprintln(g.out, "Confirmed.")
	case "clear":
		g.sess.ClearStudentView()
		fmt.Fprintln(g.out, "Cleared draft and trait picks.")
	default:
		fmt.Fprintf(g.out, "Unknown command: %s (try 'help')\n", verb)
	}
	return nil
}

func (g *generateLoop) printHelp() {
	fmt.Fprintln(g.out, `  students        list students and confirmation status
  select <n>      switch to student n
  criteria        show the student's survey answers and selection
  toggle <n>      include/exclude criterion n for this student
  traits          show the observable trait tags
  trait <n>       tag/untag trait n for this draft
  gen             generate a draft from the selection
  history         list this student's prior generations
  final <n>       mark generation n as this student's final comment
  amend <n> <text> rewrite generation n in place
  show            print the current draft
  edit <text>     replace the draft text
  ok              confirm the draft as this student's final comment
  clear           reset the draft and trait picks
  done            save and leave`)
}

func (g *generateLoop) printStudents() {
	current, _ := g.sess.Current()
	for i, st := range g.sess.Roster().Students() {
		marker := " "
		if st.ID == current.ID {
			marker = ">"
		}
		status := " "
		if _, ok := g.sess.Ledger().Final(st.ID); ok {
			status = "✓"
		}
		fmt.Fprintf(g.out, "%s %s %2d. %s %s\n", marker, status, i+1, st.Field("학번"), st.Field("이름"))
	}
}

func (g *generateLoop) selectStudent(arg string) error {
	students := g.sess.Roster().Students()
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(students) {
		return fmt.Errorf("student number must be 1-%d", len(students))
	}
	if err := g.sess.SelectStudent(students[n-1].ID); err != nil {
		return err
	}
	return g.printCriteria()
}

func (g *generateLoop) currentStudent() (roster.Student, error) {
	st, ok := g.sess.Current()
	if !ok {
		return roster.Student{}, errors.New("no student selected; use 'select <n>'")
	}
	return st, nil
}

func (g *generateLoop) printCriteria() error {
	st, err := g.currentStudent()
	if err != nil {
		return err
	}
	schema := g.sess.Roster().Schema()
	flags := g.sess.Selection().Visit(st.ID, schema.Criteria)

	fmt.Fprintf(g.out, "%s %s\n", st.Field("학번"), st.Field("이름"))
	for i, key := range schema.Criteria {
		mark := "[ ]"
		if flags[key] {
			mark = "[x]"
		}
		fmt.Fprintf(g.out, "  %s %2d. %s: %s\n", mark, i+1, key, st.Field(key))
	}
	return nil
}

func (g *generateLoop) toggleCriterion(arg string) error {
	st, err := g.currentStudent()
	if err != nil {
		return err
	}
	criteria := g.sess.Roster().Schema().Criteria
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(criteria) {
		return fmt.Errorf("criterion number must be 1-%d", len(criteria))
	}
	g.sess.Selection().Visit(st.ID, criteria)
	g.sess.Selection().ToggleCriterion(st.ID, criteria[n-1])
	return g.printCriteria()
}

func (g *generateLoop) printTraits() {
	picked := make(map[string]bool)
	for _, tr := range g.sess.Selection().SelectedTraits() {
		picked[tr] = true
	}
	for i, tr := range selection.Traits {
		mark := "[ ]"
		if picked[tr] {
			mark = "[x]"
		}
		fmt.Fprintf(g.out, "  %s %2d. %s\n", mark, i+1, tr)
	}
}

func (g *generateLoop) toggleTrait(arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(selection.Traits) {
		return fmt.Errorf("trait number must be 1-%d", len(selection.Traits))
	}
	g.sess.Selection().ToggleTrait(selection.Traits[n-1])
	g.printTraits()
	return nil
}

func (g *generateLoop) generate() error {
	fmt.Fprintln(g.out, "Generating...")
	if _, err := g.sess.Generate(context.Background()); err != nil {
		var cfgErr *llm.ConfigError
		if errors.As(err, &cfgErr) {
			return fmt.Errorf("%w; run 'commentgen settings set'", err)
		}
		return err
	}
	g.printDraft()
	return nil
}

func (g *generateLoop) printHistory() error {
	entries, err := g.sess.History()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(g.out, "(no generations yet)")
		return nil
	}

	st, _ := g.sess.Current()
	final, _ := g.sess.Ledger().Final(st.ID)
	for i, e := range entries {
		marker := " "
		if e.Text == final {
			marker = "★"
		}
		fmt.Fprintf(g.out, "%s %2d. [%s] %s (%d자)\n",
			marker, i+1, e.CreatedAt.Format("15:04:05"), e.Text, utf8.RuneCountInString(e.Text))
	}
	return nil
}

func (g *generateLoop) finalizeEntry(arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("generation number must be an integer: %s", arg)
	}
	if err := g.sess.FinalizeEntry(n - 1); err != nil {
		return err
	}
	fmt.Fprintf(g.out, "Generation %d confirmed as final.\n", n)
	return nil
}

func (g *generateLoop) amendEntry(arg string) error {
	parts := strings.SplitN(arg, " ", 2)
	if len(parts) != 2 {
		return errors.New("usage: amend <n> <text>")
	}
	n, err := strconv.Atoi(parts[0])
	if err != nil {
		return fmt.Errorf("generation number must be an integer: %s", parts[0])
	}
	if err := g.sess.AmendEntry(n-1, strings.TrimSpace(parts[1])); err != nil {
		return err
	}
	fmt.Fprintf(g.out, "Generation %d rewritten.\n", n)
	return nil
}

func (g *generateLoop) printDraft() {
	draft := g.sess.Draft()
	if strings.TrimSpace(draft) == "" {
		fmt.Fprintln(g.out, "(no draft yet)")
		return
	}
	fmt.Fprintf(g.out, "%s\n(%d자)\n", draft, utf8.RuneCountInString(draft))
}
