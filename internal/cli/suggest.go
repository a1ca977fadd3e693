package cli

import "github.com/agnivade/levenshtein"

// maxSuggestDistance bounds how far a typo may be from a real command
// before we stop guessing.
const maxSuggestDistance = 3

// suggestCommand returns the closest known repl command to the input, or ""
// when nothing is plausibly close.
func suggestCommand(input string, commands []string) string {
	best := ""
	bestDist := maxSuggestDistance + 1
	for _, cmd := range commands {
		if d := levenshtein.ComputeDistance(input, cmd); d < bestDist {
			best = cmd
			bestDist = d
		}
	}
	return best
}
