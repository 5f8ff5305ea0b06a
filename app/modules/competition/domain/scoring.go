package competitiondomain

import (
	"errors"
	"fmt"
	"sort"

	"github.com/gosimple/slug"
)

var (
	// ErrInvalidScoreOptions is returned when a block's options cannot be used to log ascensions.
	ErrInvalidScoreOptions = errors.New("invalid score options")
	// ErrInvalidAscension is returned when an ascension disagrees with its block or option.
	ErrInvalidAscension = errors.New("invalid ascension")
)

// DefaultScoreOptions returns the four attempt tiers created for a new block.
func DefaultScoreOptions(blockID int64) []ScoreOption {
	return []ScoreOption{
		{BlockID: blockID, Key: "flash", Label: "A Flash", Points: 1000, Order: 1},
		{BlockID: blockID, Key: "segundo", Label: "Segundo Intento", Points: 500, Order: 2},
		{BlockID: blockID, Key: "tercero", Label: "Tercer Intento", Points: 250, Order: 3},
		{BlockID: blockID, Key: "mas", Label: "Más Intentos", Points: 100, Order: 4},
	}
}

// SortScoreOptions orders options by display order, then label.
func SortScoreOptions(options []ScoreOption) {
	sort.SliceStable(options, func(i, j int) bool {
		if options[i].Order != options[j].Order {
			return options[i].Order < options[j].Order
		}
		return options[i].Label < options[j].Label
	})
}

// ValidateScoreOptions checks that blockID has at least one option, that every
// option belongs to the block and that keys are unique slugs.
func ValidateScoreOptions(blockID int64, options []ScoreOption) error {
	if len(options) == 0 {
		return fmt.Errorf("%w: block %d has no score options", ErrInvalidScoreOptions, blockID)
	}

	seen := make(map[string]struct{}, len(options))
	for _, o := range options {
		if o.BlockID != blockID {
			return fmt.Errorf("%w: option %d belongs to block %d, not %d", ErrInvalidScoreOptions, o.ID, o.BlockID, blockID)
		}
		if !slug.IsSlug(o.Key) {
			return fmt.Errorf("%w: key %q is not a slug (try %q)", ErrInvalidScoreOptions, o.Key, slug.Make(o.Key))
		}
		if _, dup := seen[o.Key]; dup {
			return fmt.Errorf("%w: duplicate key %q on block %d", ErrInvalidScoreOptions, o.Key, blockID)
		}
		seen[o.Key] = struct{}{}
	}
	return nil
}

// ValidateAscension checks that the chosen option belongs to the ascension's
// block and that the earned points match the option.
func ValidateAscension(a Ascension, option ScoreOption) error {
	if option.ID != a.ScoreOptionID {
		return fmt.Errorf("%w: ascension %d references option %d, got %d", ErrInvalidAscension, a.ID, a.ScoreOptionID, option.ID)
	}
	if option.BlockID != a.BlockID {
		return fmt.Errorf("%w: option %d does not belong to block %d", ErrInvalidAscension, option.ID, a.BlockID)
	}
	if option.Points != a.EarnedPoints {
		return fmt.Errorf("%w: ascension %d earned %d points, option awards %d", ErrInvalidAscension, a.ID, a.EarnedPoints, option.Points)
	}
	return nil
}

// DuplicateAscensions returns ascensions that repeat an earlier
// (participant, block) pair.
func DuplicateAscensions(ascensions []Ascension) []Ascension {
	type pair struct{ participant, block int64 }
	seen := make(map[pair]struct{}, len(ascensions))
	var dups []Ascension
	for _, a := range ascensions {
		k := pair{a.ParticipantID, a.BlockID}
		if _, ok := seen[k]; ok {
			dups = append(dups, a)
			continue
		}
		seen[k] = struct{}{}
	}
	return dups
}
