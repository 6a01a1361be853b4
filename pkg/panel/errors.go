package panel

import "github.com/pkg/errors"

var ErrPanelNotInstalled = errors.New(
	"gameport panel is not installed, run 'gameportctl panel install' first",
)
