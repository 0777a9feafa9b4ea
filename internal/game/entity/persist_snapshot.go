package entity

type GamePersistSnapshot struct {
	Version uint64
	State   *GameState
}
