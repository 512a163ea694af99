package main

import (
	"os"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/logger"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/server"
)

// @title AI Syllabus Tracker API
// @version 1.0
// @description Upload a course syllabus, get a dated topic plan, track completion and receive deadline reminders.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
