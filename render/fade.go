package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/blocktimer/constants"
	"github.com/lixenwraith/blocktimer/palette"
)

// paletteFade builds the removal fade from token toward the consumed color
func paletteFade(token string) ([]tcell.Color, error) {
	hexes, err := palette.Gradient(token, constants.ColorConsumed, constants.BlockFadeSteps)
	if err != nil {
		return nil, err
	}
	out := make([]tcell.Color, len(hexes))
	for i, h := range hexes {
		out[i] = tcell.GetColor(h)
	}
	return out, nil
}
