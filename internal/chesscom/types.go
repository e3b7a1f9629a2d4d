package chesscom

// MonthlyGame is one finished game as listed in a monthly archive.
type MonthlyGame struct {
	URL       string `json:"url"`
	PGN       string `json:"pgn"`
	TimeClass string `json:"time_class"`
	EndTime   int64  `json:"end_time"`
	White     Player `json:"white"`
	Black     Player `json:"black"`
}

// Player is one side of a MonthlyGame.
type Player struct {
	Username string `json:"username"`
	Rating   int    `json:"rating"`
	Result   string `json:"result"`
	ID       string `json:"@id"` // profile endpoint URL
}

// Profile holds the parts of a player profile this tool reads.
type Profile struct {
	Country string // country endpoint URL, empty when the player set none
}

// Color is the side the queried player had in a game.
type Color int

const (
	Unmatched Color = iota
	White
	Black
)

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "unmatched"
	}
}

// Side is a game seen from the queried player's seat.
type Side struct {
	Color    Color
	Self     Player
	Opponent Player
}
