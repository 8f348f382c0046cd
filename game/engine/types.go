package engine

// Direction names one of the four slide directions
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"

	// Grid constants
	DefaultWidth  = 4
	DefaultHeight = 4
	MinGridSize   = 1
	MaxGridSize   = 16
	SpawnValue    = 2
	MaxCellValue  = 1 << 30 // largest tile a layout may start with
	SeedStride    = 3

	// Rendering constants
	CellFieldWidth = 8
	EmptyGlyph     = "[]"

	// Validation constants
	MaxBulkMoves        = 50
	WebSocketBufferSize = 256
)

// Directions lists every direction in the order moves are suggested
var Directions = []Direction{Up, Down, Left, Right}

// Slide summarises one externally triggered move
type Slide struct {
	Changed bool `json:"changed"`
	Spawned int  `json:"spawned"`
	Merged  int  `json:"merged"`
	Passes  int  `json:"passes"`
}

// Messages holds the texts shown after each kind of move
type Messages struct {
	Welcome  string `json:"welcome"`
	Moved    string `json:"moved"`
	NoChange string `json:"no_change"`
	GameOver string `json:"game_over"`
}

// GameConfig represents a board preset loaded from JSON
type GameConfig struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	Cells       []uint32 `json:"cells,omitempty"` // Optional starting layout, row-major
	Messages    Messages `json:"messages"`
}

// GameState represents the complete game state
type GameState struct {
	Cells      []uint32 `json:"cells"`
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	Board      string   `json:"board"`
	Moves      int      `json:"moves"`
	MaxTile    uint32   `json:"max_tile"`
	EmptyCells int      `json:"empty_cells"`
	Message    string   `json:"message"`
	GameOver   bool     `json:"game_over"`
	ConfigName string   `json:"config_name"`

	MoveHistory []MoveHistoryEntry `json:"move_history"`
	TotalMoves  int                `json:"total_moves"`

	// CurrentMoves tracks only the moves since the last reset. It mirrors MoveHistory entries
	// but gets cleared on reset while MoveHistory remains cumulative.
	CurrentMoves      []MoveHistoryEntry `json:"current_moves"`
	CurrentMovesCount int                `json:"current_moves_count"`

	PossibleMoves []string `json:"possible_moves,omitempty"`
}

// MoveHistoryEntry represents a single move in the game history
type MoveHistoryEntry struct {
	Action     string `json:"action"`
	Changed    bool   `json:"changed"`
	Spawned    int    `json:"spawned"`
	Merged     int    `json:"merged"`
	MaxTile    uint32 `json:"max_tile"`
	GameOver   bool   `json:"game_over"`
	Timestamp  int64  `json:"timestamp"`
	MoveNumber int    `json:"move_number"`
}
