// FilePath: cmd/main.go
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/config"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/server"
	tm "github.com/buger/goterm"
	nuts "github.com/vaudience/go-nuts"
)

func main() {
	ClearConsole()
	DrawLogo()
	nuts.InitVersion()
	nuts.L.Infof("[Main] Starting water quality dashboard v%s", nuts.GetVersion())

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	srv := server.New(cfg)
	if err := srv.Start(); err != nil {
		nuts.L.Errorf("[Main] Server error: %v", err)
		os.Exit(1)
	}
}

// ClearConsole clears the console screen.
func ClearConsole() {
	tm.Clear()
	tm.MoveCursor(1, 1)
	tm.Flush()
}

func DrawLogo() {
	fmt.Println()
	lines := []string{
		"    ___                      ",
		"   /   | ____ ___  ______ _  ",
		"  / /| |/ __ `/ / / / __ `/  ",
		" / ___ / /_/ / /_/ / /_/ /   ",
		"/_/  |_\\__, /\\__,_/\\__,_/    ",
		"         /_/  monitoreo de calidad del agua  " + nuts.GetVersion(),
	}

	for _, line := range lines {
		fmt.Println(line)
	}
}
