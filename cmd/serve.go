package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jsphweid/chordtrainer/chord"
	"github.com/jsphweid/chordtrainer/constants"
	"github.com/jsphweid/chordtrainer/logging"
	"github.com/jsphweid/chordtrainer/midi"
	"github.com/jsphweid/chordtrainer/model"
	"github.com/jsphweid/chordtrainer/notes"
	"github.com/jsphweid/chordtrainer/player"
	"github.com/jsphweid/chordtrainer/reducer"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var port string

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", constants.GetPort(), "port to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the trainer over HTTP",
	Long: `Serves one practice session over HTTP so a browser front end can drive it.
The front end owns the metronome and POSTs /tick on every beat.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPlayer()
		if err != nil {
			return err
		}
		log := logging.GetGlobalLogger()
		log.Info("listening", logging.Fields{"port": port})
		return http.ListenAndServe(":"+port, NewRouter(p, log))
	},
}

type api struct {
	player *player.Player
	log    logging.Logger
}

// NewRouter exposes a player's session as JSON endpoints.
func NewRouter(p *player.Player, log logging.Logger) http.Handler {
	a := &api{player: p, log: log.WithFields(logging.Fields{"component": "http"})}

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/state", a.handleState).Methods("GET")
	router.HandleFunc("/actions", a.handleAction).Methods("POST")
	router.HandleFunc("/next", a.handleNext).Methods("POST")
	router.HandleFunc("/previous", a.handlePrevious).Methods("POST")
	router.HandleFunc("/tick", a.handleTick).Methods("POST")
	router.HandleFunc("/levels", a.handleLevels).Methods("GET")
	router.HandleFunc("/notation", a.handleNotation).Methods("GET")
	router.HandleFunc("/export.mid", a.handleExport).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(router)
}

func stateResponse(s model.ProgramState) model.StateResponse {
	return model.StateResponse{ProgramState: s, Visible: s.VisibleChords()}
}

func (a *api) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.log.Error(err, "encoding response")
	}
}

func (a *api) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, reducer.ErrMalformedAction) {
		status = http.StatusBadRequest
	} else {
		a.log.Error(err, "request failed")
	}
	a.writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func (a *api) handleState(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, stateResponse(a.player.State()))
}

func (a *api) handleAction(w http.ResponseWriter, r *http.Request) {
	var action model.Action
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		a.writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "Could not decode action: " + err.Error()})
		return
	}
	if err := a.player.Dispatch(action); err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, stateResponse(a.player.State()))
}

func (a *api) handleNext(w http.ResponseWriter, r *http.Request) {
	if err := a.player.Next(); err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, stateResponse(a.player.State()))
}

func (a *api) handlePrevious(w http.ResponseWriter, r *http.Request) {
	if err := a.player.Previous(); err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, stateResponse(a.player.State()))
}

func (a *api) handleTick(w http.ResponseWriter, r *http.Request) {
	advanced, err := a.player.Tick()
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, model.TickResponse{
		Advanced:      advanced,
		StateResponse: stateResponse(a.player.State()),
	})
}

func (a *api) handleLevels(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, model.LevelsResponse{
		DifficultyLevels:     chord.DifficultyLevels,
		AccidentalLevels:     chord.AccidentalLevels,
		Keys:                 chord.AllKeys(),
		BeatsPerChordOptions: constants.BeatsPerChordOptions,
		MinBPM:               constants.MinBPM,
		MaxBPM:               constants.MaxBPM,
	})
}

func (a *api) handleNotation(w http.ResponseWriter, r *http.Request) {
	s := a.player.State()
	a.writeJSON(w, http.StatusOK, model.NotationResponse{
		Key:       s.NotationKey,
		Extension: s.NotationExtension,
		Notes:     notes.GetNotes(s.NotationKey, s.NotationExtension),
	})
}

func (a *api) handleExport(w http.ResponseWriter, r *http.Request) {
	s := a.player.State()
	bpm, bpc, err := exportTiming(s)
	if err != nil {
		a.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "chords.mid"))
	if err := midi.WriteChords(w, s.Chords, notes.Pitches, bpm, bpc); err != nil {
		a.log.Error(err, "writing export")
	}
}
