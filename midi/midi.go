package midi

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidiFile(filepath string) (*smf.SMF, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "Error reading midi file")
	}
	return Read(bytes.NewReader(dat))
}

func Read(r io.Reader) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if rec := recover(); rec != nil {
			s = nil
			e = fmt.Errorf("Error parsing midi file... %v", rec)
		}
	}()

	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, errors.Wrap(err, "Error parsing midi file")
	}
	return res, nil
}
