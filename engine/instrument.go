package engine

// Category is a General MIDI instrument family. Programs are 1-based as in
// the GM table; the wire value is one less.
type Category struct {
	Name       string
	MinProgram uint8
	MaxProgram uint8
	Allocated  int
}

func (c Category) Capacity() int {
	return int(c.MaxProgram) - int(c.MinProgram) + 1
}

func (c Category) Exhausted() bool {
	return c.Allocated >= c.Capacity()
}

var categoryTable = []Category{
	{Name: "Piano", MinProgram: 1, MaxProgram: 8},
	{Name: "Chromatic Percussion", MinProgram: 9, MaxProgram: 16},
	{Name: "Organ", MinProgram: 17, MaxProgram: 24},
	{Name: "Guitar", MinProgram: 25, MaxProgram: 32},
	{Name: "Bass", MinProgram: 33, MaxProgram: 40},
	{Name: "Strings", MinProgram: 41, MaxProgram: 48},
	{Name: "Ensemble", MinProgram: 49, MaxProgram: 56},
	{Name: "Brass", MinProgram: 57, MaxProgram: 64},
	{Name: "Reed", MinProgram: 65, MaxProgram: 72},
	{Name: "Pipe", MinProgram: 73, MaxProgram: 80},
	{Name: "Synth Lead", MinProgram: 81, MaxProgram: 88},
	{Name: "Synth Pad", MinProgram: 89, MaxProgram: 96},
	{Name: "Synth Effects", MinProgram: 97, MaxProgram: 104},
	{Name: "Ethnic", MinProgram: 105, MaxProgram: 112},
	{Name: "Percussive", MinProgram: 113, MaxProgram: 120},
	{Name: "Sound Effects", MinProgram: 121, MaxProgram: 128},
}

// CategoryNames lists the instrument families in General MIDI order.
func CategoryNames() []string {
	names := make([]string, 0, len(categoryTable))
	for _, c := range categoryTable {
		names = append(names, c.Name)
	}
	return names
}

func newCategories() map[string]*Category {
	m := make(map[string]*Category, len(categoryTable))
	for _, c := range categoryTable {
		c := c
		m[c.Name] = &c
	}
	return m
}
