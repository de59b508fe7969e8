package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/udisondev/hunters/internal/game/combat"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// CreateSessionRequest opens a game session.
type CreateSessionRequest struct {
	PlayerID   string `json:"player_id" validate:"required,max=64"`
	HunterName string `json:"hunter_name" validate:"max=64"`
}

// StartARRequest enters the AR hunt.
type StartARRequest struct {
	Location string `json:"location" validate:"max=128"`
}

// PoseRequest reports the player's AR pose and, optionally, geolocation.
type PoseRequest struct {
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	Z       float64  `json:"z"`
	Heading float64  `json:"heading"`
	Lat     *float64 `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lon     *float64 `json:"lon" validate:"omitempty,gte=-180,lte=180"`
}

// SelectRequest picks the active item. Empty item_id clears the selection.
type SelectRequest struct {
	ItemID string `json:"item_id" validate:"max=64"`
}

// TargetRequest targets an encounter; zero targets nothing.
type TargetRequest struct {
	InstanceID uint32 `json:"instance_id"`
}

// UseRequest uses an item on the player. Empty item_id uses the selected item.
type UseRequest struct {
	ItemID string `json:"item_id" validate:"max=64"`
}

// StrikeRequest — атака монстра по игроку.
type StrikeRequest struct {
	InstanceID uint32 `json:"instance_id" validate:"required"`
}

// MaxRequestBodyBytes caps JSON request bodies.
const MaxRequestBodyBytes = 64 << 10

// decodeAndValidate reads a JSON body into dst and validates it.
// An empty body is allowed for requests whose fields are all optional.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) map[string]string {
	if r.Body != nil && r.ContentLength != 0 {
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(dst); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return map[string]string{"body": "too large"}
			}
			return map[string]string{"body": "malformed JSON"}
		}
	}
	if err := validate.Struct(dst); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError hides struct names from clients.
func formatValidationError(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"error": "invalid request format"}
	}
	out := make(map[string]string, len(verrs))
	for _, e := range verrs {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			out[field] = "is required"
		case "max":
			out[field] = "must be at most " + e.Param() + " characters"
		default:
			out[field] = "failed " + e.Tag() + " " + e.Param()
		}
	}
	return out
}

func instanceIDParam(r *http.Request) (uint32, bool) {
	v, err := strconv.ParseUint(chi.URLParam(r, "instanceID"), 10, 32)
	if err != nil || uint32(v) == combat.NoTarget {
		return 0, false
	}
	return uint32(v), true
}
