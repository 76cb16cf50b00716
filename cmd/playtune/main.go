package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/cbegin/playtune-go"
)

const defaultTune = "T120 O3 L4 C D E C C D E C E F G2 E F G2"

func main() {
	var (
		sampleRate = flag.Int("sample-rate", 48000, "output sample rate")
		backend    = flag.String("backend", "beep", "audio backend: beep|ebiten|silent")
		volume     = flag.Float64("volume", 0.5, "render amplitude (0..1)")
		tunePath   = flag.String("file", "", "path to a tune file")
		tuneInline = flag.String("text", "", "inline tune string")
	)
	flag.Parse()

	text, err := resolveTuneInput(*tunePath, *tuneInline)
	if err != nil {
		log.Fatal(err)
	}

	be, err := parseBackend(*backend)
	if err != nil {
		log.Fatal(err)
	}
	pl, err := playtune.NewPlayer(
		playtune.WithBackend(be),
		playtune.WithSampleRate(*sampleRate),
		playtune.WithVolume(*volume),
	)
	if err != nil {
		log.Fatal(err)
	}
	if err := pl.Play(text); err != nil {
		log.Fatal(err)
	}
}

func resolveTuneInput(path string, inline string) (string, error) {
	if strings.TrimSpace(inline) != "" {
		return inline, nil
	}
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return defaultTune, nil
}

func parseBackend(name string) (playtune.Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "beep":
		return playtune.BackendBeep, nil
	case "ebiten":
		return playtune.BackendEbiten, nil
	case "silent":
		return playtune.BackendSilent, nil
	default:
		return "", fmt.Errorf("invalid -backend %q (expected beep|ebiten|silent)", name)
	}
}
