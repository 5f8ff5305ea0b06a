package competitiondomain

import "time"

// Category is a competitor division ("cup").
type Category string

const (
	CategoryKids         Category = "kids"
	CategoryPrincipiante Category = "principiante"
	CategoryIntermedio   Category = "intermedio"
	CategoryAvanzado     Category = "avanzado"
)

// Categories lists the known divisions in display order.
var Categories = []Category{
	CategoryKids,
	CategoryPrincipiante,
	CategoryIntermedio,
	CategoryAvanzado,
}

// Known reports whether c is one of the four competition divisions.
func (c Category) Known() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

// Gender as recorded on the participant profile.
type Gender string

const (
	GenderMale           Gender = "M"
	GenderFemale         Gender = "F"
	GenderOther          Gender = "O"
	GenderPreferNotToSay Gender = "N"
)

// BlockType distinguishes routes from boulders.
type BlockType string

const (
	BlockTypeRuta    BlockType = "ruta"
	BlockTypeBoulder BlockType = "boulder"
)

// Participant is a registered account as returned by the backend.
type Participant struct {
	ID              int64    `json:"id"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Username        string   `json:"username"`
	Email           string   `json:"email"`
	Gender          Gender   `json:"gender"`
	Cup             Category `json:"cup"`
	IsStaff         bool     `json:"is_staff"`
	IsSuperuser     bool     `json:"is_superuser"`
	IsActive        bool     `json:"is_active"`
	Score           int      `json:"score"`
	DistanceClimbed int      `json:"distance_climbed"`
}

// IsCompetitor reports whether the account takes part in rankings and counts.
func (p Participant) IsCompetitor() bool {
	return !p.IsStaff && !p.IsSuperuser
}

// Block is a route or boulder problem set on the wall.
type Block struct {
	ID           int64         `json:"id"`
	BlockType    BlockType     `json:"block_type"`
	Grade        string        `json:"grade"`
	Lane         string        `json:"lane"`
	Wall         string        `json:"wall"`
	Color        string        `json:"color"`
	Distance     int           `json:"distance"`
	Active       bool          `json:"active"`
	ScoreOptions []ScoreOption `json:"score_options,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

// ScoreOption is one attempt tier for a block and the points it awards.
type ScoreOption struct {
	ID      int64  `json:"id"`
	BlockID int64  `json:"block"`
	Key     string `json:"key"`
	Label   string `json:"label"`
	Points  int    `json:"points"`
	Order   int    `json:"order"`
}

// Ascension is a recorded completion of a block ("pegue").
type Ascension struct {
	ID               int64     `json:"id"`
	ParticipantID    int64     `json:"participant"`
	BlockID          int64     `json:"block"`
	ScoreOptionID    int64     `json:"score_option"`
	ParticipantName  string    `json:"participant_name,omitempty"`
	BlockLane        string    `json:"block_lane"`
	ScoreOptionLabel string    `json:"score_option_label"`
	EarnedPoints     int       `json:"earned_points"`
	CreatedAt        time.Time `json:"created_at"`
}

// indexBlocks maps block ids to blocks.
func indexBlocks(blocks []Block) map[int64]Block {
	idx := make(map[int64]Block, len(blocks))
	for _, b := range blocks {
		idx[b.ID] = b
	}
	return idx
}
