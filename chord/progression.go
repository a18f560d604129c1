package chord

import "strings"

const ProgressionDelim = ","

// Progression is an ordered list of chords in performance order.
type Progression struct {
	Chords []*Chord
}

// ParseProgression parses comma separated chord tokens and stops at the
// first malformed one.
func ParseProgression(s string) (*Progression, error) {
	p := &Progression{}
	for i, token := range splitProgression(s) {
		c, err := Parse(token)
		if err != nil {
			return nil, &ProgressionError{Index: i, Err: err}
		}
		p.Add(c)
	}
	return p, nil
}

// ParseProgressionPartial keeps every chord that parses and reports the
// rest, so callers can choose to skip bad tokens.
func ParseProgressionPartial(s string) (*Progression, []error) {
	p := &Progression{}
	var errs []error
	for i, token := range splitProgression(s) {
		c, err := Parse(token)
		if err != nil {
			errs = append(errs, &ProgressionError{Index: i, Err: err})
			continue
		}
		p.Add(c)
	}
	return p, errs
}

func splitProgression(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	chunks := strings.Split(s, ProgressionDelim)
	for i := range chunks {
		chunks[i] = strings.TrimSpace(chunks[i])
	}
	return chunks
}

func (p *Progression) Add(c *Chord) {
	p.Chords = append(p.Chords, c)
}

func (p *Progression) Len() int {
	return len(p.Chords)
}

func (p *Progression) Transpose(semitones int) {
	for _, c := range p.Chords {
		c.Transpose(semitones)
	}
}

// Duration is the sum of every chord's span.
func (p *Progression) Duration() float64 {
	var total float64
	for _, c := range p.Chords {
		total += c.DurationSpan()
	}
	return total
}

func (p *Progression) Names() []string {
	names := make([]string, 0, len(p.Chords))
	for _, c := range p.Chords {
		names = append(names, c.Name())
	}
	return names
}

func (p *Progression) String() string {
	return "[Chord Prog]: " + strings.Join(p.Names(), ", ")
}
