package master

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

const maxRequestBody = 1 << 16 // 64 KB

// NewMux routes the server browser API to reg. Every response allows any
// origin so browser clients can read the list.
func NewMux(reg *Registry, logger zerolog.Logger) http.Handler {
	logger = logger.With().Str("component", "master").Logger()

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+PathServers, ListServers(reg, logger))
	mux.HandleFunc("POST "+PathRegister, RegisterServer(reg, logger))
	mux.HandleFunc("POST "+PathHeartbeat, Heartbeat(reg, logger))
	mux.HandleFunc("GET "+PathHealth, Health())
	return allowAnyOrigin(mux)
}

func allowAnyOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		next.ServeHTTP(w, r)
	})
}

// ListServers returns the live servers. An optional version query parameter
// hides servers a client could not join.
func ListServers(reg *Registry, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		servers := reg.List()
		if version := r.URL.Query().Get("version"); version != "" {
			compatible := servers[:0]
			for _, s := range servers {
				if s.Version == version {
					compatible = append(compatible, s)
				}
			}
			servers = compatible
		}
		writeJSON(w, logger, http.StatusOK, servers)
	}
}

func RegisterServer(reg *Registry, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Name == "" || req.Address == "" {
			writeError(w, http.StatusBadRequest, "name and address required")
			return
		}

		id := reg.Register(ServerInfo{
			Name:       req.Name,
			Address:    req.Address,
			Players:    req.Players,
			MaxPlayers: req.MaxPlayers,
			Version:    req.Version,
			Region:     req.Region,
		})

		logger.Info().
			Str("server", req.Name).
			Str("address", req.Address).
			Str("version", req.Version).
			Str("id", id).
			Msg("registered server")
		writeJSON(w, logger, http.StatusCreated, RegisterResponse{ID: id})
	}
}

// Heartbeat answers 404 for unknown IDs, which tells the game server to
// register again.
func Heartbeat(reg *Registry, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req HeartbeatRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if !reg.Heartbeat(req.ID, req.Players) {
			logger.Debug().Str("id", req.ID).Msg("heartbeat from unknown server")
			writeError(w, http.StatusNotFound, "unknown server")
			return
		}
		writeJSON(w, logger, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, zerolog.Nop(), http.StatusOK, map[string]string{"status": "ok"})
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, zerolog.Nop(), status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, logger zerolog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn().Err(err).Int("status", status).Msg("encode response")
	}
}
