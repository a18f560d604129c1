package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jsphweid/chordmidi/midi"
	"github.com/jsphweid/chordmidi/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createRenderReqBody(body model.RenderRequestBody) io.Reader {
	data, err := json.Marshal(body)
	if err != nil {
		panic(err.Error())
	}
	return bytes.NewReader(data)
}

func serve(req *http.Request) *http.Response {
	w := httptest.NewRecorder()
	NewRouter().ServeHTTP(w, req)
	return w.Result()
}

func TestRenderReturnsMidi(t *testing.T) {
	body := createRenderReqBody(model.RenderRequestBody{Progression: "C,Am7,F", Instrument: "Guitar", Tempo: 90})
	resp := serve(httptest.NewRequest(http.MethodPost, "/render", body))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "audio/midi", resp.Header.Get("Content-Type"))

	s, err := midi.Read(resp.Body)
	require.NoError(t, err)
	sum, err := midi.Summarize(s)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(2, sum.Tracks)
	// tempo is stored as whole microseconds per quarter note
	assert.InDelta(90.0, sum.TempoBPM, 1e-3)
}

func TestEventsTransposes(t *testing.T) {
	body := createRenderReqBody(model.RenderRequestBody{Progression: "C|1/4", Transpose: 2})
	resp := serve(httptest.NewRequest(http.MethodPost, "/events", body))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res model.EventsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))

	assert := assert.New(t)
	require.Len(t, res.Tracks, 2)
	assert.Equal("Piano", res.Tracks[1].Name)
	var keys []uint8
	var sum uint64
	for _, ev := range res.Tracks[1].Events {
		sum += uint64(ev.Delta)
		if ev.Kind == model.NoteOn {
			keys = append(keys, ev.Key)
		}
	}
	assert.Equal([]uint8{38, 42, 45}, keys)
	assert.Equal(uint64(res.TicksPerQuarter), sum)
}

func TestEventsReportsSkippedChords(t *testing.T) {
	body := createRenderReqBody(model.RenderRequestBody{Progression: "C,H,G", SkipInvalid: true})
	resp := serve(httptest.NewRequest(http.MethodPost, "/events", body))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res model.EventsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	require.Len(t, res.Skipped, 1)
	assert.Contains(t, res.Skipped[0], "invalid pitch")
}

func TestRenderRejectsBadInput(t *testing.T) {
	cases := map[string]io.Reader{
		"bad chord":      createRenderReqBody(model.RenderRequestBody{Progression: "C,H"}),
		"bad instrument": createRenderReqBody(model.RenderRequestBody{Progression: "C", Instrument: "Kazoo"}),
		"bad json":       bytes.NewReader([]byte("{")),
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			resp := serve(httptest.NewRequest(http.MethodPost, "/render", body))
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var er model.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&er))
			assert.NotEmpty(t, er.Error)
		})
	}
}

func TestChordsLists(t *testing.T) {
	resp := serve(httptest.NewRequest(http.MethodGet, "/chords", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var infos []model.ChordInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&infos))
	found := false
	for _, ci := range infos {
		if ci.Symbol == "m7" {
			found = true
			assert.Equal(t, []int{0, 3, 7, 10}, ci.Intervals)
		}
	}
	assert.True(t, found)
}

func TestRenderRejectsGet(t *testing.T) {
	resp := serve(httptest.NewRequest(http.MethodGet, "/render", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
