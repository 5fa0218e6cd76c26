package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"commentgen/internal/config"
	"commentgen/internal/dataset"
	"commentgen/internal/history"
	"commentgen/internal/llm"
	"commentgen/internal/logging"
	"commentgen/internal/prompt"
	"commentgen/internal/roster"
	"commentgen/internal/selection"
	"commentgen/internal/style"
)

// Step is the coarse position in the workflow, persisted so a resumed
// session reopens where the user left off.
type Step string

const (
	StepImport   Step = "import"
	StepStyle    Step = "style"
	StepGenerate Step = "generate"
)

// ErrBusy is returned when a generation is requested while another is still
// in flight.
var ErrBusy = errors.New("generation already in progress")

// ErrNoStudent is returned by operations that need a selected student.
var ErrNoStudent = errors.New("no student selected")

// Session is the working state of one comment-writing run: the imported
// roster, style samples, per-student selections, generation history, and the
// provider client. All methods are safe for concurrent use.
type Session struct {
	mu       sync.Mutex
	busy     bool
	settings *config.Settings
	store    *Store
	client   llm.Client

	step      Step
	filename  string
	roster    *roster.Registry
	styles    *style.Store
	selection *selection.State
	ledger    *history.Ledger

	currentID string
	draft     string
}

// New creates a session backed by the given store and provider client.
func New(settings *config.Settings, store *Store, client llm.Client) *Session {
	return &Session{
		settings:  settings,
		store:     store,
		client:    client,
		step:      StepImport,
		roster:    roster.NewRegistry(),
		styles:    style.NewStore(),
		selection: selection.NewState(),
		ledger:    history.NewLedger(),
	}
}

// ImportDataset loads a survey file, registers its rows as students, and
// advances the workflow. On failure the previous roster is kept.
func (s *Session) ImportDataset(path string) (int, error) {
	enc := dataset.Encoding(s.settings.ImportEncoding)
	rows, schema, err := dataset.Load(path, enc)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.roster.Register(rows, schema)
	s.filename = path
	s.step = StepStyle
	s.currentID = ""
	s.draft = ""
	logging.SessionDebug("imported %s: %d students, %d criteria",
		path, s.roster.Len(), len(schema.Criteria))
	return s.roster.Len(), nil
}

// Styles exposes the style sample store.
func (s *Session) Styles() *style.Store { return s.styles }

// Roster exposes the student registry.
func (s *Session) Roster() *roster.Registry { return s.roster }

// Selection exposes the per-student criterion flags and trait picks.
func (s *Session) Selection() *selection.State { return s.selection }

// Ledger exposes the generation history.
func (s *Session) Ledger() *history.Ledger { return s.ledger }

// Step returns the current workflow step.
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// BeginGeneration moves the workflow to the generation step. It fails when
// no usable style sample exists yet.
func (s *Session) BeginGeneration() error {
	if !s.styles.Ready() {
		return errors.New("at least one style sample is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = StepGenerate
	return nil
}

// SelectStudent makes the student with the given id current. Trait picks and
// the draft are transient per-student state and are cleared on switch;
// criterion flags and history are kept.
func (s *Session) SelectStudent(id string) error {
	if _, ok := s.roster.Lookup(id); !ok {
		return fmt.Errorf("unknown student: %s", id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentID == id {
		return nil
	}
	s.currentID = id
	s.draft = ""
	s.selection.ClearTraits()
	return nil
}

// Current returns the selected student.
func (s *Session) Current() (roster.Student, bool) {
	s.mu.Lock()
	id := s.currentID
	s.mu.Unlock()
	if id == "" {
		return roster.Student{}, false
	}
	return s.roster.Lookup(id)
}

// Draft returns the working comment text for the selected student.
func (s *Session) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// SetDraft replaces the working comment text, e.g. after a manual edit.
func (s *Session) SetDraft(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = text
}

// BuildPrompt assembles the provider prompt for the selected student from
// the current style samples, criterion selections, and trait picks.
func (s *Session) BuildPrompt() (string, error) {
	s.mu.Lock()
	id := s.currentID
	s.mu.Unlock()
	return s.buildPromptFor(id)
}

// buildPromptFor builds the prompt for a specific student id. Generate
// passes the id it captured at request time, so a student switch while a
// call is in flight cannot swap in another student's criteria.
func (s *Session) buildPromptFor(id string) (string, error) {
	if id == "" {
		return "", ErrNoStudent
	}
	student, ok := s.roster.Lookup(id)
	if !ok {
		return "", ErrNoStudent
	}

	var criteria []prompt.Criterion
	for _, key := range s.selection.Selected(id, s.roster.Schema()) {
		criteria = append(criteria, prompt.Criterion{Key: key, Value: student.Field(key)})
	}

	pc := s.settings.GetPromptConfig()
	return prompt.Build(s.styles.Texts(), criteria, s.selection.SelectedTraits(),
		prompt.Options{MinChars: pc.MinChars, MaxChars: pc.MaxChars})
}

// Generate builds the prompt for the selected student and calls the
// provider. Only one generation runs at a time; concurrent calls get
// ErrBusy. The result is appended to the student's history. The draft is
// updated only when that student is still selected when the call returns.
func (s *Session) Generate(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return "", ErrBusy
	}
	s.busy = true
	requestedID := s.currentID
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	p, err := s.buildPromptFor(requestedID)
	if err != nil {
		return "", err
	}

	text, err := s.client.Generate(ctx, p)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.Append(requestedID, text)
	if s.currentID == requestedID {
		s.draft = text
	}
	return text, nil
}

// History returns the selected student's prior generations in order.
func (s *Session) History() ([]history.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentID == "" {
		return nil, ErrNoStudent
	}
	return s.ledger.Entries(s.currentID), nil
}

// AmendEntry rewrites one of the selected student's history entries in
// place. Amending the most recent entry also refreshes the draft, which
// mirrors the latest generation.
func (s *Session) AmendEntry(index int, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentID == "" {
		return ErrNoStudent
	}
	entries := s.ledger.Entries(s.currentID)
	if !s.ledger.Edit(s.currentID, index, text) {
		return fmt.Errorf("no history entry %d", index+1)
	}
	if index == len(entries)-1 {
		s.draft = text
	}
	return nil
}

// FinalizeEntry marks the text of one history entry as the selected
// student's final comment.
func (s *Session) FinalizeEntry(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentID == "" {
		return ErrNoStudent
	}
	entries := s.ledger.Entries(s.currentID)
	if index < 0 || index >= len(entries) {
		return fmt.Errorf("no history entry %d", index+1)
	}
	s.ledger.MarkFinal(s.currentID, entries[index].Text)
	return nil
}

// ConfirmDraft records the current draft as the selected student's final
// comment.
func (s *Session) ConfirmDraft() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentID == "" {
		return ErrNoStudent
	}
	if strings.TrimSpace(s.draft) == "" {
		return errors.New("draft is empty")
	}
	s.ledger.MarkFinal(s.currentID, s.draft)
	return nil
}

// ClearStudentView resets the selected student's transient state: the draft
// and trait picks. Criterion flags, history, and finals survive.
func (s *Session) ClearStudentView() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = ""
	s.selection.ClearTraits()
}

// persistedRoster pairs students with their schema for round-tripping.
type persistedRoster struct {
	Students []roster.Student `json:"students"`
	Schema   *dataset.Schema  `json:"schema"`
}

// Save writes the full session state to the store.
func (s *Session) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Put(keyStep, string(s.step)); err != nil {
		return err
	}
	if err := s.store.Put(keyFilename, s.filename); err != nil {
		return err
	}
	if err := s.store.Put(keyCurrentID, s.currentID); err != nil {
		return err
	}
	if err := s.store.Put(keyDraft, s.draft); err != nil {
		return err
	}
	if err := s.store.PutJSON(keyRoster, persistedRoster{
		Students: s.roster.Students(),
		Schema:   s.roster.Schema(),
	}); err != nil {
		return err
	}
	if err := s.store.PutJSON(keyStyles, s.styles.Samples()); err != nil {
		return err
	}
	if err := s.store.PutJSON(keyFlags, s.selection.AllFlags()); err != nil {
		return err
	}
	if err := s.store.PutJSON(keyTraits, s.selection.SelectedTraits()); err != nil {
		return err
	}
	if err := s.store.PutJSON(keyHistory, s.ledger.AllEntries()); err != nil {
		return err
	}
	return s.store.PutJSON(keyFinals, s.ledger.Finals())
}

// Resume restores session state from the store. Missing or corrupt keys
// leave the corresponding defaults in place.
func (s *Session) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if step, ok, err := s.store.Get(keyStep); err != nil {
		return err
	} else if ok {
		s.step = Step(step)
	}
	if name, ok, err := s.store.Get(keyFilename); err != nil {
		return err
	} else if ok {
		s.filename = name
	}

	var pr persistedRoster
	if ok, err := s.store.GetJSON(keyRoster, &pr); err != nil {
		return err
	} else if ok {
		s.roster.Restore(pr.Students, pr.Schema)
	}

	var samples []style.Sample
	if ok, err := s.store.GetJSON(keyStyles, &samples); err != nil {
		return err
	} else if ok {
		s.styles.Restore(samples)
	}

	var flags map[string]map[string]bool
	if ok, err := s.store.GetJSON(keyFlags, &flags); err != nil {
		return err
	} else if ok {
		s.selection.RestoreFlags(flags)
	}

	var traits []string
	if ok, err := s.store.GetJSON(keyTraits, &traits); err != nil {
		return err
	} else if ok {
		for _, tr := range traits {
			s.selection.ToggleTrait(tr)
		}
	}

	var entries map[string][]history.Entry
	var finals map[string]string
	entriesOK, err := s.store.GetJSON(keyHistory, &entries)
	if err != nil {
		return err
	}
	finalsOK, err := s.store.GetJSON(keyFinals, &finals)
	if err != nil {
		return err
	}
	if entriesOK || finalsOK {
		s.ledger.Restore(entries, finals)
	}

	if id, ok, err := s.store.Get(keyCurrentID); err != nil {
		return err
	} else if ok && id != "" {
		if _, found := s.roster.Lookup(id); found {
			s.currentID = id
		}
	}
	if draft, ok, err := s.store.Get(keyDraft); err != nil {
		return err
	} else if ok {
		s.draft = draft
	}
	return nil
}
