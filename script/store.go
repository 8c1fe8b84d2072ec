// Package script records externally observed API calls as an ordered,
// human-readable and replayable script.
package script

import (
	"fmt"
	"io"
	"strings"
)

const (
	defaultVarIdent = "var_"
	defaultRetIdent = "ret_"
)

// Store is an append-only log of script statements. It performs no locking.
type Store struct {
	log      []string
	enabled  bool
	varIdent string
	retIdent string
}

// NewStore returns an empty, enabled store.
func NewStore() *Store {
	return &Store{enabled: true, varIdent: defaultVarIdent, retIdent: defaultRetIdent}
}

// Enabled reports whether observed accessors should record statements.
func (s *Store) Enabled() bool { return s.enabled }

// SetEnabled toggles recording. Entries already recorded are kept.
func (s *Store) SetEnabled(enabled bool) { s.enabled = enabled }

// VarIdent is the alias prefix for objects passed in as arguments.
func (s *Store) VarIdent() string { return s.varIdent }

// RetIdent is the alias prefix for objects handed back by getters.
func (s *Store) RetIdent() string { return s.retIdent }

// AppendLog appends entry unconditionally. Trailing newlines are trimmed so
// every entry is exactly one statement.
func (s *Store) AppendLog(entry string) {
	s.log = append(s.log, strings.TrimRight(entry, "\n"))
}

// History returns a copy of the recorded statements in call order.
func (s *Store) History() []string {
	out := make([]string, len(s.log))
	copy(out, s.log)
	return out
}

// Len returns the number of recorded statements.
func (s *Store) Len() int { return len(s.log) }

// ResetHistory clears the log and restores the default alias prefixes.
func (s *Store) ResetHistory() {
	s.log = nil
	s.varIdent = defaultVarIdent
	s.retIdent = defaultRetIdent
}

// WriteTo writes the script, one statement per line.
func (s *Store) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, line := range s.log {
		n, err := fmt.Fprintln(w, line)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
