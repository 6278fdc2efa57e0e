package master

// ServerInfo describes a game server visible to clients.
type ServerInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
	Version    string `json:"version"`
	Region     string `json:"region"`
}

// RegisterRequest is posted by a game server to /servers/register.
type RegisterRequest struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
	Version    string `json:"version"`
	Region     string `json:"region"`
}

// RegisterResponse carries the ID the game server must heartbeat with.
type RegisterResponse struct {
	ID string `json:"id"`
}

// HeartbeatRequest is posted by a game server to /servers/heartbeat.
type HeartbeatRequest struct {
	ID      string `json:"id"`
	Players int    `json:"players"`
}

// Routes served by NewMux.
const (
	PathServers   = "/servers"
	PathRegister  = "/servers/register"
	PathHeartbeat = "/servers/heartbeat"
	PathHealth    = "/health"
)
