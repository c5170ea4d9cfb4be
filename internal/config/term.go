package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/schedulum-app/schedulum/internal/calendar"
)

// Date is a civil date in YYYY-MM-DD form, stored at UTC midnight.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	t, err := time.Parse("2006-01-02", value.Value)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", value.Value, err)
	}
	d.Time = t
	return nil
}

type windowConfig struct {
	After  Date `yaml:"after"`
	Before Date `yaml:"before"`
}

// termFile mirrors the YAML layout of the academic term file. The
// reference days, the selection cutoff and the vacation windows are all
// injected here; nothing is derived from the wall clock.
type termFile struct {
	Today    Date `yaml:"today"`
	Tomorrow Date `yaml:"tomorrow"`

	Cutoff struct {
		Year  int        `yaml:"year"`
		Month time.Month `yaml:"month"`
	} `yaml:"cutoff"`

	Vacations struct {
		StartRule []windowConfig `yaml:"start_rule"`
		EndRule   []windowConfig `yaml:"end_rule"`
	} `yaml:"vacations"`
}

// LoadTerm reads and validates the academic term file at path.
func LoadTerm(path string) (calendar.Term, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return calendar.Term{}, fmt.Errorf("read term config: %w", err)
	}
	return ParseTerm(data)
}

// ParseTerm builds a calendar.Term from raw YAML.
func ParseTerm(data []byte) (calendar.Term, error) {
	var tf termFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return calendar.Term{}, fmt.Errorf("parse term config: %w", err)
	}
	return tf.toTerm()
}

func (tf termFile) toTerm() (calendar.Term, error) {
	if tf.Today.IsZero() || tf.Tomorrow.IsZero() {
		return calendar.Term{}, errors.New("term config: today and tomorrow are required")
	}
	if tf.Cutoff.Year == 0 || tf.Cutoff.Month < time.January || tf.Cutoff.Month > time.December {
		return calendar.Term{}, errors.New("term config: cutoff year and month are required")
	}

	term := calendar.Term{
		Today:       tf.Today.Time,
		Tomorrow:    tf.Tomorrow.Time,
		CutoffYear:  tf.Cutoff.Year,
		CutoffMonth: tf.Cutoff.Month,
	}
	for _, w := range tf.Vacations.StartRule {
		win, err := w.toWindow()
		if err != nil {
			return calendar.Term{}, err
		}
		term.StartWindows = append(term.StartWindows, win)
	}
	for _, w := range tf.Vacations.EndRule {
		win, err := w.toWindow()
		if err != nil {
			return calendar.Term{}, err
		}
		term.EndWindows = append(term.EndWindows, win)
	}
	return term, nil
}

func (w windowConfig) toWindow() (calendar.Window, error) {
	if w.After.IsZero() || w.Before.IsZero() {
		return calendar.Window{}, errors.New("term config: vacation windows need both after and before")
	}
	if !w.After.Time.Before(w.Before.Time) {
		return calendar.Window{}, fmt.Errorf("term config: window bound %s must precede %s",
			w.After.Format("2006-01-02"), w.Before.Format("2006-01-02"))
	}
	return calendar.Window{After: w.After.Time, Before: w.Before.Time}, nil
}
