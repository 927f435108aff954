// Package workshop is the interactive terminal flow for a discovery session.
// It walks the operator through unanswered questions in priority order,
// reviews pending low-confidence extractions, and shows validation findings.
// All semantics live in the session manager; this package only presents.
package workshop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/lzkit/lzkit/internal/catalog"
	"github.com/lzkit/lzkit/internal/session"
	"github.com/lzkit/lzkit/internal/validate"
)

// Config holds workshop configuration.
type Config struct {
	Sessions *session.Manager
	Catalog  *catalog.Registry
	Logger   *slog.Logger
}

// Workshop drives one interactive question-and-answer pass.
type Workshop struct {
	sessions *session.Manager
	catalog  *catalog.Registry
	logger   *slog.Logger
	rl       *readline.Instance
}

// errQuit unwinds the loop when the operator asks to stop.
var errQuit = errors.New("quit")

// New creates a workshop instance.
func New(cfg *Config) (*Workshop, error) {
	if cfg.Sessions == nil || cfg.Catalog == nil {
		return nil, fmt.Errorf("session manager and catalog are required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Workshop{
		sessions: cfg.Sessions,
		catalog:  cfg.Catalog,
		logger:   logger,
	}, nil
}

// Run reviews pending extractions, then asks the remaining questions in
// priority order. The operator can skip questions or stop at any point;
// everything answered so far stays recorded.
func (w *Workshop) Run(ctx context.Context) error {
	cyan := color.New(color.FgCyan).SprintFunc()
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            cyan("lzkit> "),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()
	w.rl = rl

	state := w.sessions.State()
	fmt.Printf("\nDiscovery session %s (%.1f%% complete)\n", state.SessionID, state.Completion)
	fmt.Println("Commands during questions: skip, status, gaps, quit, help")

	if err := w.reviewPending(ctx); err != nil {
		if errors.Is(err, errQuit) {
			return nil
		}
		return err
	}

	for _, priority := range catalog.Priorities() {
		missing := w.sessions.Missing(priority)
		if len(missing) == 0 {
			continue
		}
		color.New(color.Bold).Printf("\n── %s priority (%d questions) ──\n", strings.ToUpper(string(priority)), len(missing))
		for _, q := range missing {
			if err := w.askQuestion(ctx, q); err != nil {
				if errors.Is(err, errQuit) {
					w.printSummary()
					return nil
				}
				return err
			}
		}
	}

	w.printSummary()
	return nil
}

// reviewPending walks the cached low-confidence extractions: accept, reject,
// or replace each with a typed answer.
func (w *Workshop) reviewPending(ctx context.Context) error {
	pending := w.sessions.Pending()
	if len(pending) == 0 {
		return nil
	}

	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Printf("\n%s %d extracted answers need review:\n", yellow("●"), len(pending))

	for _, cand := range pending {
		q, err := w.catalog.Get(cand.QuestionID)
		if err != nil {
			continue
		}
		fmt.Printf("\n%s\n", q.Text)
		fmt.Printf("  extracted: %q (confidence %.0f%%, from %s)\n",
			cand.Text, cand.Confidence*100, cand.DocumentReference)

		line, err := w.prompt("  [a]ccept / [r]eject / or type a better answer: ")
		if err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "a", "accept":
			if _, err := w.sessions.AcceptPending(ctx, cand.QuestionID); err != nil {
				fmt.Printf("  %s\n", color.RedString("error: %v", err))
			} else {
				fmt.Printf("  %s\n", color.GreenString("accepted"))
			}
		case "r", "reject", "":
			if err := w.sessions.RejectPending(cand.QuestionID); err == nil {
				fmt.Printf("  %s\n", color.YellowString("discarded"))
			}
		default:
			// Typed text replaces the candidate outright.
			_, findings, err := w.sessions.RecordUserAnswer(ctx, q, line)
			if err != nil {
				fmt.Printf("  %s\n", color.RedString("error: %v", err))
				continue
			}
			w.printFindings(findings)
		}
	}
	return nil
}

// askQuestion prompts for one answer and records it. In-line commands are
// handled here so the operator never leaves the flow.
func (w *Workshop) askQuestion(ctx context.Context, q catalog.Question) error {
	fmt.Printf("\n%s\n", color.New(color.Bold).Sprint(q.Text))
	if q.HelpText != "" {
		fmt.Printf("  %s\n", color.New(color.Faint).Sprint(q.HelpText))
	}
	if len(q.Examples) > 0 {
		fmt.Printf("  examples: %s\n", strings.Join(q.Examples, " | "))
	}
	if prior, ok := w.sessions.Answer(q.ID); ok {
		fmt.Printf("  current answer: %q (%s)\n", prior.Text, prior.Source)
	}

	for {
		line, err := w.prompt("answer> ")
		if err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			continue
		case "skip", "s":
			return nil
		case "quit", "exit", "q":
			return errQuit
		case "status":
			w.printSummary()
			continue
		case "gaps":
			w.printGaps()
			continue
		case "help", "?":
			fmt.Println("  type an answer, or: skip, status, gaps, quit")
			continue
		}

		_, findings, err := w.sessions.RecordUserAnswer(ctx, q, line)
		if err != nil {
			fmt.Printf("  %s\n", color.RedString("error: %v", err))
			continue
		}
		w.printFindings(findings)
		return nil
	}
}

// prompt reads one line, translating interrupt/EOF into quit.
func (w *Workshop) prompt(p string) (string, error) {
	w.rl.SetPrompt(p)
	line, err := w.rl.Readline()
	if err == readline.ErrInterrupt || err == io.EOF {
		return "", errQuit
	}
	if err != nil {
		return "", err
	}
	return line, nil
}

func (w *Workshop) printFindings(findings []validate.Finding) {
	for _, f := range findings {
		var tag string
		switch f.Severity {
		case validate.SeverityError:
			tag = color.RedString("ERROR")
		case validate.SeverityWarning:
			tag = color.YellowString("WARN")
		case validate.SeverityInfo:
			tag = color.CyanString("INFO")
		case validate.SeveritySuccess:
			tag = color.GreenString("OK")
		}
		fmt.Printf("  [%s] %s\n", tag, f.Message)
		if f.Recommendation != "" {
			fmt.Printf("         %s\n", color.New(color.Faint).Sprint(f.Recommendation))
		}
	}
}

func (w *Workshop) printSummary() {
	sum := w.sessions.Summary()
	fmt.Printf("\nSession %s: %d/%d answered (%.1f%%)\n",
		sum.SessionID, sum.Answered, sum.TotalQuestions, sum.Completion)
	fmt.Printf("  critical: %d/%d  documents: %d  user: %d  extracted: %d\n",
		sum.Critical.Answered, sum.Critical.Total,
		sum.DocumentsAnalyzed, sum.FromUser, sum.FromDocuments+sum.FromSearch)
	for _, cc := range sum.ByCategory {
		fmt.Printf("  %-28s %d/%d (%.0f%%)\n", cc.Category, cc.Answered, cc.Total, cc.Percentage)
	}
}

func (w *Workshop) printGaps() {
	missing := w.sessions.MissingCritical()
	if len(missing) == 0 {
		fmt.Println("  no critical gaps")
		return
	}
	fmt.Printf("  %d critical questions unanswered:\n", len(missing))
	for _, q := range missing {
		fmt.Printf("   - [%s] %s\n", q.ID, q.Text)
	}
}
