// internal/httpserver/routes_machine.go
//
// HTTP routes for machine sessions, mounted under /machine:
//   - POST   /machine/new           → switch on a new machine (rotors at AAA)
//   - GET    /machine/{id}          → rotor display, offsets, lit lamp
//   - POST   /machine/{id}/press    → press one key, returns the lit lamp
//   - POST   /machine/{id}/release  → release the key, lamp goes dark
//   - POST   /machine/{id}/rotor    → turn one rotor by hand
//   - POST   /machine/{id}/type     → encipher a whole message
//   - DELETE /machine/{id}          → switch the machine off
//
// Machines live in memory only. History rows record that a session existed
// and how many keys were pressed; they are best effort and never block a
// keystroke.
//
// A machine answers only the client that switched it on (same account, or
// same guest cookie). Anyone else gets the 404 an unknown ID would get.

package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/enigma/internal/auth"
	"github.com/robalobadob/enigma/internal/enigma"
	"github.com/robalobadob/enigma/internal/history"
	"github.com/robalobadob/enigma/internal/session"
	"github.com/robalobadob/enigma/internal/store"
)

// mountMachine registers all /machine routes.
func (s *Server) mountMachine(r chi.Router) {
	r.Route("/machine", func(r chi.Router) {
		r.Post("/new", s.handleNewMachine)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetMachine)
			r.Delete("/", s.handleDeleteMachine)
			r.Post("/press", s.handlePress)
			r.Post("/release", s.handleRelease)
			r.Post("/rotor", s.handleRotor)
			r.Post("/type", s.handleType)
		})
	})
}

type newMachineRes struct {
	MachineID string `json:"machineId"`
	Display   string `json:"display"`
}

// handleNewMachine creates a machine and records an owner row for history.
func (s *Server) handleNewMachine(w http.ResponseWriter, r *http.Request) {
	now := s.clock.Now()
	o := s.owner(w, r)
	sess := session.New(s.wiring, now)
	sess.UserID, sess.AnonID = o.UserID, o.AnonID
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save machine")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	s.metrics.MachinesCreated.Inc()
	s.refreshActive(r)

	if err := s.history.Start(r.Context(), o, sess.ID, now); err != nil {
		log.Warn().Err(err).Str("machineId", sess.ID).Msg("record machine start")
	}
	log.Debug().Str("machineId", sess.ID).Msg("machine switched on")

	v := sess.View()
	writeJSON(w, http.StatusOK, newMachineRes{MachineID: v.ID, Display: v.Display})
}

func (s *Server) handleGetMachine(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.View())
}

// handleDeleteMachine switches the machine off and closes its history row.
func (s *Server) handleDeleteMachine(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	id := sess.ID
	if err := s.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}
	s.metrics.MachinesClosed.Inc()
	s.refreshActive(r)
	if err := s.history.End(r.Context(), s.owner(w, r), id, s.clock.Now()); err != nil {
		log.Warn().Err(err).Str("machineId", id).Msg("record machine end")
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type pressReq struct {
	Letter string `json:"letter" validate:"required,len=1,alpha"`
}

type pressRes struct {
	Lamp    string `json:"lamp"`
	Display string `json:"display"`
}

// handlePress steps the rotors and enciphers one key.
// A rejected key leaves the machine exactly as it was.
func (s *Server) handlePress(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req pressReq
	if err := s.decode(r, &req); err != nil {
		s.metrics.InvalidKeys.Inc()
		writeError(w, http.StatusBadRequest, "invalid_letter")
		return
	}
	lamp, v, err := sess.Press(req.Letter)
	if err != nil {
		s.metrics.InvalidKeys.Inc()
		writeError(w, http.StatusBadRequest, "invalid_letter")
		return
	}
	s.metrics.Keystrokes.WithLabelValues("press").Inc()
	s.recordKeystrokes(w, r, sess.ID, 1)
	writeJSON(w, http.StatusOK, pressRes{Lamp: lamp, Display: v.Display})
}

// handleRelease lets go of the key. It never re-enciphers.
func (s *Server) handleRelease(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.Release())
}

type rotorReq struct {
	Slot *int `json:"slot" validate:"required,min=0,max=2"`
}

// handleRotor turns one rotor by hand, carrying into slower rotors.
func (s *Server) handleRotor(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req rotorReq
	if err := s.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_slot")
		return
	}
	v, err := sess.Advance(*req.Slot)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_slot")
		return
	}
	s.metrics.RotorAdvances.WithLabelValues(enigma.SlotName(*req.Slot)).Inc()
	writeJSON(w, http.StatusOK, v)
}

type typeReq struct {
	Text string `json:"text" validate:"max=10000"`
}

type typeRes struct {
	Output  string `json:"output"`
	Display string `json:"display"`
}

// handleType enciphers a message; letters only are pressed, everything else
// is copied through.
func (s *Server) handleType(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req typeReq
	if err := s.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_text")
		return
	}
	out, n, v := sess.Type(req.Text)
	if n > 0 {
		s.metrics.Keystrokes.WithLabelValues("type").Add(float64(n))
		s.recordKeystrokes(w, r, sess.ID, n)
	}
	writeJSON(w, http.StatusOK, typeRes{Output: out, Display: v.Display})
}

type wiringRes struct {
	Rotors    []rotorWiring `json:"rotors"`
	Reflector string        `json:"reflector"`
}

type rotorWiring struct {
	Slot     int    `json:"slot"`
	Name     string `json:"name"`
	Forward  string `json:"forward"`
	Backward string `json:"backward"`
}

// handleWiring shows the machine's substitution tables.
func (s *Server) handleWiring(w http.ResponseWriter, r *http.Request) {
	res := wiringRes{Reflector: s.wiring.Reflector()}
	for slot := enigma.Slow; slot < enigma.NumRotors; slot++ {
		res.Rotors = append(res.Rotors, rotorWiring{
			Slot:     slot,
			Name:     enigma.SlotName(slot),
			Forward:  s.wiring.Forward(slot),
			Backward: s.wiring.Backward(slot),
		})
	}
	writeJSON(w, http.StatusOK, res)
}

// lookup resolves {id} to a live session owned by the caller, or writes a 404.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil || !sess.OwnedBy(callerIDs(r)) {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	return sess, true
}

func (s *Server) recordKeystrokes(w http.ResponseWriter, r *http.Request, id string, n int) {
	if err := s.history.AddKeystrokes(r.Context(), s.owner(w, r), id, n); err != nil {
		log.Warn().Err(err).Str("machineId", id).Msg("record keystrokes")
	}
}

func (s *Server) refreshActive(r *http.Request) {
	if n, err := s.store.Count(r.Context()); err == nil {
		s.metrics.MachinesActive.Set(float64(n))
	}
}

// owner returns the signed-in user or the anonymous cookie holder.
func (s *Server) owner(w http.ResponseWriter, r *http.Request) history.Owner {
	if me := currentUser(r); me != nil {
		return history.Owner{UserID: me.ID}
	}
	return history.Owner{AnonID: s.ensureAnonID(w, r)}
}

const anonCookieName = "enigma_anon"

// callerIDs returns the signed-in user and the guest cookie, either may be empty.
// Unlike owner it never sets a cookie.
func callerIDs(r *http.Request) (userID, anonID string) {
	if me := currentUser(r); me != nil {
		userID = me.ID
	}
	if c, err := r.Cookie(anonCookieName); err == nil {
		anonID = c.Value
	}
	return userID, anonID
}

// ensureAnonID returns an existing anon cookie or sets a new one.
// Used to associate guest machines with a stable identifier.
func (s *Server) ensureAnonID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := auth.GenID()
	http.SetCookie(w, s.env.cookie(anonCookieName, id, s.clock.Now().Add(180*24*time.Hour)))
	return id
}
