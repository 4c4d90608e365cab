package game

type GameError struct {
	Code string
	Msg  string
}

func (e *GameError) ErrorCode() string { return e.Code }
func (e *GameError) Error() string     { return e.Msg }

var (
	// ErrPlayerExists means a player with the same name already is
	ErrPlayerExists = &GameError{"PLAYEREXISTS", "player exists"}
	// ErrNotEnoughPlayers means can't start the game with fewer than two players
	ErrNotEnoughPlayers = &GameError{"NOTENOUGHPLAYERS", "not enough players"}
	// ErrAlreadyStarted is only when calling Start() too much
	ErrAlreadyStarted = &GameError{"ALREADYSTARTED", "game has already started"}

	// ErrNotStarted means the game has not started
	ErrNotStarted = &GameError{"NOTSTARTED", "game has not started"}
	// ErrGameOver means somebody already won
	ErrGameOver = &GameError{"GAMEOVER", "game is over"}
	// ErrOutOfRange is for board positions that don't exist
	ErrOutOfRange = &GameError{"OUTOFRANGE", "position out of range"}
	// ErrUnknownBoard is for board variants that don't exist
	ErrUnknownBoard = &GameError{"UNKNOWNBOARD", "unknown board"}
	// ErrBadRequest is for bad requests
	ErrBadRequest = &GameError{"BADREQUEST", "bad request"}
)
