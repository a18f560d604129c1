package engine

import (
	"math"
	"sort"

	"github.com/jsphweid/chordmidi/chord"
	"github.com/jsphweid/chordmidi/constants"
	"github.com/jsphweid/chordmidi/model"
	"github.com/jsphweid/chordmidi/note"
	"github.com/jsphweid/chordmidi/util"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const maxChannels = 16

var (
	ErrInvalidTrackIndex = errors.New("invalid track index")
	ErrUnknownCategory   = errors.New("unknown instrument category")
	ErrCategoryExhausted = errors.New("instrument category exhausted")
	ErrChannelsExhausted = errors.New("all 16 channels in use")
	ErrNoteOutOfRange    = errors.New("note number outside [0,127]")
	ErrNilSource         = errors.New("nil note source")
)

// NoteSource is anything that can hand over its notes, such as a
// sequence.Sequence or a chord.Harmony.
type NoteSource interface {
	Notes() []note.Note
}

// Container receives the finished tracks in one terminal call.
type Container interface {
	Write(ticksPerQuarter uint16, tracks []model.Track) error
}

type Option func(*Engine)

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

type track struct {
	model.Track
	// ticks of rest owed to the next note-on
	silence uint32
}

// owe adds ticks to the pending silence, saturating at math.MaxUint32.
func (t *track) owe(ticks uint32) {
	if t.silence > math.MaxUint32-ticks {
		t.silence = math.MaxUint32
		return
	}
	t.silence += ticks
}

// silent notes take up time without sounding. A note-on with velocity 0 is
// a note-off on the wire, so those are written as rests.
func silent(n note.Note) bool {
	return n.Rest || n.Velocity == 0
}

func (t *track) add(ev model.Event) {
	ev.Channel = t.Channel
	t.Events = append(t.Events, ev)
}

// Engine turns notes, harmonies, sequences and progressions into per-track
// event lists. It is not safe for concurrent use.
type Engine struct {
	cfg        Config
	tracks     []*track
	categories map[string]*Category
	log        *zap.Logger
}

// New creates an engine whose track 0 holds the track name, meter and tempo.
func New(cfg Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:        cfg.withDefaults(),
		categories: newCategories(),
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	settings := e.appendTrack(constants.SettingsTrackName)
	settings.add(model.Event{Kind: model.MetaMeter, Num: e.cfg.TimeSigNum, Denom: e.cfg.TimeSigDen})
	settings.add(model.Event{Kind: model.MetaTempo, BPM: e.cfg.TempoBPM})
	return e
}

func (e *Engine) appendTrack(name string) *track {
	t := &track{Track: model.Track{Name: name, Channel: uint8(len(e.tracks))}}
	t.add(model.Event{Kind: model.MetaTrackName, Text: name})
	e.tracks = append(e.tracks, t)
	return t
}

func (e *Engine) Config() Config {
	return e.cfg
}

func (e *Engine) DurationToTicks(duration float64) uint32 {
	return e.cfg.DurationToTicks(duration)
}

func (e *Engine) TrackCount() int {
	return len(e.tracks)
}

// AddInstrument appends a track on the next channel and selects the next
// free program of category on it.
func (e *Engine) AddInstrument(category string) (int, error) {
	c, ok := e.categories[category]
	if !ok {
		return -1, errors.Wrapf(ErrUnknownCategory, "add instrument %q", category)
	}
	if c.Exhausted() {
		return -1, errors.Wrapf(ErrCategoryExhausted, "add instrument %q: %d of %d programs used", category, c.Allocated, c.Capacity())
	}
	if len(e.tracks) >= maxChannels {
		return -1, errors.Wrapf(ErrChannelsExhausted, "add instrument %q", category)
	}

	program := c.MinProgram + uint8(c.Allocated) - 1
	t := e.appendTrack(category)
	t.add(model.Event{Kind: model.ProgramChange, Program: program})
	c.Allocated++

	idx := len(e.tracks) - 1
	e.log.Info("instrument allocated",
		zap.String("category", category),
		zap.Int("track", idx),
		zap.Uint8("program", program))
	return idx, nil
}

// Categories returns a snapshot of the allocation table in General MIDI order.
func (e *Engine) Categories() []Category {
	res := make([]Category, 0, len(categoryTable))
	for _, c := range categoryTable {
		res = append(res, *e.categories[c.Name])
	}
	return res
}

func (e *Engine) track(op string, idx int) (*track, error) {
	if idx < 0 || idx >= len(e.tracks) {
		return nil, errors.Wrapf(ErrInvalidTrackIndex, "%s: track %d of %d", op, idx, len(e.tracks))
	}
	return e.tracks[idx], nil
}

func checkNotes(op string, notes []note.Note) error {
	for _, n := range notes {
		if !n.Rest && (n.Number < 0 || n.Number > 127) {
			return errors.Wrapf(ErrNoteOutOfRange, "%s: %v", op, n)
		}
	}
	return nil
}

// PendingSilence reports the rest ticks the next note-on on idx will carry.
func (e *Engine) PendingSilence(idx int) (uint32, error) {
	t, err := e.track("PendingSilence", idx)
	if err != nil {
		return 0, err
	}
	return t.silence, nil
}

// WriteNote defers a rest into the track's pending silence, or emits a
// note-on carrying that silence followed by its note-off.
func (e *Engine) WriteNote(idx int, n note.Note) error {
	t, err := e.track("WriteNote", idx)
	if err != nil {
		return err
	}
	if err := checkNotes("WriteNote", []note.Note{n}); err != nil {
		return err
	}
	e.writeNote(t, n)
	return nil
}

func (e *Engine) writeNote(t *track, n note.Note) {
	ticks := e.cfg.DurationToTicks(n.Duration)
	if silent(n) {
		t.owe(ticks)
		return
	}
	t.add(model.Event{Kind: model.NoteOn, Delta: t.silence, Key: uint8(n.Number), Velocity: n.Velocity})
	t.add(model.Event{Kind: model.NoteOff, Delta: ticks, Key: uint8(n.Number), Velocity: n.Velocity})
	t.silence = 0
	e.log.Debug("note", zap.String("track", t.Name), zap.Int("key", n.Number), zap.Uint32("ticks", ticks))
}

// WriteSequence emits a melodic line note after note.
func (e *Engine) WriteSequence(idx int, seq NoteSource) error {
	t, err := e.track("WriteSequence", idx)
	if err != nil {
		return err
	}
	if seq == nil {
		return errors.Wrap(ErrNilSource, "WriteSequence")
	}
	notes := seq.Notes()
	if err := checkNotes("WriteSequence", notes); err != nil {
		return err
	}
	for _, n := range notes {
		e.writeNote(t, n)
	}
	return nil
}

// WriteHarmony starts every sounding note at the same tick and releases them
// shortest first. Silent notes inside the harmony emit nothing; if one
// outlasts the sounding notes the excess is owed to the next event.
func (e *Engine) WriteHarmony(idx int, h NoteSource) error {
	t, err := e.track("WriteHarmony", idx)
	if err != nil {
		return err
	}
	if h == nil {
		return errors.Wrap(ErrNilSource, "WriteHarmony")
	}
	notes := h.Notes()
	if err := checkNotes("WriteHarmony", notes); err != nil {
		return err
	}
	e.writeHarmony(t, notes)
	return nil
}

type timedNote struct {
	note.Note
	ticks uint32
}

func (e *Engine) writeHarmony(t *track, notes []note.Note) {
	var sounding []timedNote
	var restTicks uint32
	for _, n := range notes {
		ticks := e.cfg.DurationToTicks(n.Duration)
		if silent(n) {
			restTicks = util.Max(restTicks, ticks)
			continue
		}
		sounding = append(sounding, timedNote{Note: n, ticks: ticks})
	}

	if len(sounding) == 0 {
		t.owe(restTicks)
		return
	}

	for i, n := range sounding {
		var delta uint32
		if i == 0 {
			delta = t.silence
		}
		t.add(model.Event{Kind: model.NoteOn, Delta: delta, Key: uint8(n.Number), Velocity: n.Velocity})
	}
	t.silence = 0

	// sorting on ticks keeps every delta non-negative
	sort.SliceStable(sounding, func(i, j int) bool {
		return sounding[i].ticks < sounding[j].ticks
	})
	var elapsed uint32
	for _, n := range sounding {
		t.add(model.Event{Kind: model.NoteOff, Delta: n.ticks - elapsed, Key: uint8(n.Number), Velocity: n.Velocity})
		elapsed = n.ticks
	}
	if restTicks > elapsed {
		t.silence = restTicks - elapsed
	}
	e.log.Debug("harmony",
		zap.String("track", t.Name),
		zap.String("key", chord.CreateChordKey(notes)),
		zap.Uint32("ticks", elapsed))
}

func (e *Engine) WriteChord(idx int, c *chord.Chord) error {
	if c == nil {
		if _, err := e.track("WriteChord", idx); err != nil {
			return err
		}
		return errors.Wrap(ErrNilSource, "WriteChord")
	}
	return e.WriteHarmony(idx, c)
}

// WriteProgression emits the chords back to back in order.
func (e *Engine) WriteProgression(idx int, p *chord.Progression) error {
	t, err := e.track("WriteProgression", idx)
	if err != nil {
		return err
	}
	if p == nil {
		return errors.Wrap(ErrNilSource, "WriteProgression")
	}
	for i, c := range p.Chords {
		if c == nil {
			return errors.Wrapf(ErrNilSource, "WriteProgression: chord %d", i)
		}
		if err := checkNotes("WriteProgression", c.Notes()); err != nil {
			return errors.WithMessagef(err, "chord %s", c.Name())
		}
	}
	for _, c := range p.Chords {
		e.writeHarmony(t, c.Notes())
	}
	return nil
}

// Track returns a copy of one track; End holds its pending silence.
func (e *Engine) Track(idx int) (model.Track, error) {
	t, err := e.track("Track", idx)
	if err != nil {
		return model.Track{}, err
	}
	return snapshot(t), nil
}

func (e *Engine) Tracks() []model.Track {
	res := make([]model.Track, 0, len(e.tracks))
	for _, t := range e.tracks {
		res = append(res, snapshot(t))
	}
	return res
}

func snapshot(t *track) model.Track {
	c := t.Track
	c.Events = append([]model.Event(nil), t.Events...)
	c.End = t.silence
	return c
}

// Save hands every track to c. A failure leaves nothing considered written.
func (e *Engine) Save(c Container) error {
	tracks := e.Tracks()
	if err := c.Write(e.cfg.TicksPerQuarter, tracks); err != nil {
		return errors.Wrap(err, "save")
	}
	for _, tr := range tracks {
		e.log.Debug("track written", zap.String("track", tr.Name), zap.Int("events", len(tr.Events)), zap.Uint64("ticks", tr.Ticks()))
	}
	e.log.Info("document written", zap.Int("tracks", len(e.tracks)))
	return nil
}
