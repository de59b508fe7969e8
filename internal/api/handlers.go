package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/udisondev/hunters/internal/data"
	"github.com/udisondev/hunters/internal/model"
	"github.com/udisondev/hunters/internal/session"
	"github.com/udisondev/hunters/internal/spatial"
)

// Pinger reports database reachability. Implemented by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the game API.
type Handler struct {
	sessions *session.Manager
	catalog  *data.Catalog
	db       Pinger // nil without a database
}

// NewHandler creates a Handler. db may be nil.
func NewHandler(sessions *session.Manager, catalog *data.Catalog, db Pinger) *Handler {
	return &Handler{sessions: sessions, catalog: catalog, db: db}
}

// session resolves {sessionID} or writes 404.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, err := h.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		respondServiceError(w, r, err)
		return nil, false
	}
	return s, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if fields := decodeAndValidate(w, r, dst); fields != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: ErrMsgInvalidRequest, Fields: fields})
		return false
	}
	return true
}

// HandleHealthz is a liveness check.
func (h *Handler) HandleHealthz(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleReadyz checks database connectivity.
func (h *Handler) HandleReadyz(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			loggerFor(r).Error("readiness check failed", "error", err)
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":  "unavailable",
				"message": "database connection failed",
			})
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleListMonsters returns the bestiary.
func (h *Handler) HandleListMonsters(w http.ResponseWriter, _ *http.Request) {
	monsters := h.catalog.Monsters()
	out := make([]monsterView, 0, len(monsters))
	for _, m := range monsters {
		out = append(out, newMonsterView(m))
	}
	respondJSON(w, http.StatusOK, out)
}

// HandleListItems returns every catalog item.
func (h *Handler) HandleListItems(w http.ResponseWriter, _ *http.Request) {
	items := h.catalog.Items()
	out := make([]itemView, 0, len(items))
	for _, it := range items {
		out = append(out, newItemView(it))
	}
	respondJSON(w, http.StatusOK, out)
}

// HandleCreateSession opens a session.
func (h *Handler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if !h.decode(w, r, &req) {
		return
	}
	s, err := h.sessions.Create(r.Context(), req.PlayerID, req.HunterName)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, newSessionView(s))
}

// HandleGetSession returns session state.
func (h *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, newSessionView(s))
}

// HandleCloseSession ends a session and despawns its encounters.
func (h *Handler) HandleCloseSession(w http.ResponseWriter, r *http.Request) {
	if !h.sessions.Close(chi.URLParam(r, "sessionID")) {
		respondError(w, http.StatusNotFound, ErrMsgNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleStartAR enters the AR hunt.
func (h *Handler) HandleStartAR(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req StartARRequest
	if !h.decode(w, r, &req) {
		return
	}
	s.StartAR(r.Context(), req.Location)
	respondJSON(w, http.StatusOK, newSessionView(s))
}

// HandleStopAR leaves the AR hunt.
func (h *Handler) HandleStopAR(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.StopAR()
	respondJSON(w, http.StatusOK, newSessionView(s))
}

// HandlePose updates the pose and optional geolocation.
func (h *Handler) HandlePose(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req PoseRequest
	if !h.decode(w, r, &req) {
		return
	}
	s.SetPose(model.Pose{Position: model.NewPosition(req.X, req.Y, req.Z), Heading: req.Heading})
	if req.Lat != nil && req.Lon != nil {
		s.SetLocation(spatial.GeoPoint{Lat: *req.Lat, Lon: *req.Lon})
	}
	respondJSON(w, http.StatusOK, map[string]bool{"at_crossroads": s.AtCrossroads()})
}

// HandleSelect picks the active item.
func (h *Handler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req SelectRequest
	if !h.decode(w, r, &req) {
		return
	}
	if _, err := s.Select(req.ItemID); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newSessionView(s))
}

// HandleAttack resolves an attack with the selected item.
func (h *Handler) HandleAttack(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req TargetRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := s.Attack(r.Context(), req.InstanceID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newAttackView(res))
}

// HandleReveal uses the selected reveal item.
func (h *Handler) HandleReveal(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req TargetRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := s.Reveal(r.Context(), req.InstanceID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	revealed := res.Revealed
	if revealed == nil {
		revealed = []uint32{}
	}
	respondJSON(w, http.StatusOK, revealView{Revealed: revealed, Message: res.Message})
}

// HandleUse uses an item on the player.
func (h *Handler) HandleUse(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req UseRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := s.UseItem(r.Context(), req.ItemID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newSelfView(res))
}

// HandleStrike applies a monster strike to the player.
func (h *Handler) HandleStrike(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req StrikeRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := s.Strike(r.Context(), req.InstanceID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, strikeView{
		InstanceID: res.InstanceID,
		MonsterID:  res.MonsterID,
		Blocked:    res.Blocked,
		Reason:     res.Reason,
		Damage:     res.Damage,
		PlayerHP:   res.PlayerHP,
		Defeated:   res.Defeated,
	})
}

// HandleListEncounters returns live encounters.
func (h *Handler) HandleListEncounters(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	encounters := s.Encounters()
	out := make([]encounterView, 0, len(encounters))
	for _, e := range encounters {
		out = append(out, newEncounterView(e))
	}
	respondJSON(w, http.StatusOK, out)
}

// HandleGetEncounter returns one encounter.
func (h *Handler) HandleGetEncounter(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	id, ok := instanceIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidInstanceID)
		return
	}
	for _, e := range s.Encounters() {
		if e.InstanceID() == id {
			respondJSON(w, http.StatusOK, newEncounterView(e))
			return
		}
	}
	respondError(w, http.StatusNotFound, ErrMsgNotFound)
}

// HandleVitals returns player HP.
func (h *Handler) HandleVitals(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	hp, maxHP := s.Vitals()
	v := vitalsView{HP: hp, MaxHP: maxHP}
	if until := s.ProtectedUntil(); time.Now().Before(until) {
		v.ProtectedUntil = &until
	}
	respondJSON(w, http.StatusOK, v)
}

// HandleInventory returns the player's items.
func (h *Handler) HandleInventory(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	slots := s.Inventory()
	out := make([]slotView, 0, len(slots))
	for _, sl := range slots {
		out = append(out, slotView{ItemID: sl.ItemKey, Quantity: sl.Quantity})
	}
	respondJSON(w, http.StatusOK, out)
}

// HandleDiary returns the newest diary entries (?limit=N).
func (h *Handler) HandleDiary(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = n
	}
	entries, err := s.Diary(r.Context(), limit)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	out := make([]diaryEntryView, 0, len(entries))
	for _, e := range entries {
		out = append(out, diaryEntryView{
			ID:          e.ID.String(),
			Type:        string(e.Type),
			Description: e.Description,
			MonsterID:   e.MonsterID,
			Location:    e.LocationName,
			CreatedAt:   e.CreatedAt,
		})
	}
	respondJSON(w, http.StatusOK, out)
}

// HandleStats returns profile counters.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	st, err := s.Stats(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, statsView{Hunts: st.Hunts, Kills: st.Kills, Items: st.Items})
}
