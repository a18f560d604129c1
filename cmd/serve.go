package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jsphweid/chordmidi/midi"
	"github.com/jsphweid/chordmidi/model"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves progression rendering over HTTP",
	Long:  `Serves progression rendering over HTTP`,
	RunE: func(cmd *cobra.Command, args []string) error {
		zlog.Info("listening", zap.String("addr", serveAddr))
		return http.ListenAndServe(serveAddr, NewRouter())
	},
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/render", HandleRender).Methods("POST")
	router.HandleFunc("/events", HandleEvents).Methods("POST")
	router.HandleFunc("/chords", HandleChords).Methods("GET")
	return cors.Default().Handler(router)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zlog.Error("could not encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if isUserError(err) {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func decodeRenderRequest(r *http.Request) (renderOptions, error) {
	var input model.RenderRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		return renderOptions{}, err
	}
	return renderOptions{
		progression: input.Progression,
		instrument:  input.Instrument,
		tempo:       input.Tempo,
		transpose:   input.Transpose,
		skipInvalid: input.SkipInvalid,
	}, nil
}

func HandleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := decodeRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "Could not unmarshal request body: " + err.Error()})
		return
	}
	e, _, err := render(opts)
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := e.Save(midi.StreamWriter{W: &buf}); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "audio/midi")
	w.Write(buf.Bytes())
}

func HandleEvents(w http.ResponseWriter, r *http.Request) {
	opts, err := decodeRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "Could not unmarshal request body: " + err.Error()})
		return
	}
	e, skipped, err := render(opts)
	if err != nil {
		writeError(w, err)
		return
	}

	res := model.EventsResponse{
		TicksPerQuarter: e.Config().TicksPerQuarter,
		Tracks:          e.Tracks(),
	}
	for _, s := range skipped {
		res.Skipped = append(res.Skipped, s.Error())
	}
	writeJSON(w, http.StatusOK, res)
}

func HandleChords(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, chordInfos())
}
