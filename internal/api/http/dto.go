package http

// CreateGameRequest starts a new remote game. Every field is optional.
type CreateGameRequest struct {
	Mode       string `json:"mode"`
	Difficulty string `json:"difficulty"`
	Player     string `json:"player"`
	Seed       int64  `json:"seed"`
}

// TapRequest plays one cell. Both coordinates are required.
type TapRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

const (
	defaultScoreLimit = 10
	maxScoreLimit     = 100
)
