package entity

// Player is a named human player with the number of recorded wins against the machine.
type Player struct {
	Name  string `json:"name"`
	Score int64  `json:"score"`
}
