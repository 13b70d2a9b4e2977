package game

// Difficulty names a preset controlling the randomized spacing and gap
// ranges used when placing pipes. Presets are fixed at compile time and
// shared with the client.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// DefaultDifficulty is used for rooms created without an explicit preset.
const DefaultDifficulty = DifficultyHard

// tierRanges holds inclusive [min,max] draw ranges. Harder tiers use
// smaller ranges on both axes: tighter gaps, more frequent pipes.
type tierRanges struct {
	horizontalGap [2]int
	verticalGap   [2]int
}

var difficulties = map[Difficulty]tierRanges{
	DifficultyEasy: {
		horizontalGap: [2]int{500, 550},
		verticalGap:   [2]int{150, 250},
	},
	DifficultyNormal: {
		horizontalGap: [2]int{350, 400},
		verticalGap:   [2]int{140, 200},
	},
	DifficultyHard: {
		horizontalGap: [2]int{300, 350},
		verticalGap:   [2]int{130, 180},
	},
}

// ParseDifficulty maps a preset name to a Difficulty, falling back to the
// default for anything unrecognized.
func ParseDifficulty(name string) Difficulty {
	d := Difficulty(name)
	if _, ok := difficulties[d]; !ok {
		return DefaultDifficulty
	}
	return d
}

func rangesFor(tier Difficulty) tierRanges {
	r, ok := difficulties[tier]
	if !ok {
		return difficulties[DefaultDifficulty]
	}
	return r
}
