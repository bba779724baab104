package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/troupo/invaders/config"
)

func main() {
	watch := flag.Bool("watch", false, "reload the sprite config when files under assets/ change")
	debug := flag.Bool("debug", false, "enable debug overlays")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	if err := run(*debug, *watch); err != nil {
		log.Fatal(err)
	}
}

// run owns the game's lifetime so the score store and config watcher
// close even when RunGame fails.
func run(debug, watch bool) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(settings.Window.Width, settings.Window.Height)
	ebiten.SetWindowTitle(settings.Window.Title)

	game := NewGame(settings, debug, watch)
	defer game.Close()

	return ebiten.RunGame(game)
}
