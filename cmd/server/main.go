package main

import (
	"github.com/rs/zerolog/log"

	_ "taskflow/docs"
	"taskflow/internal/config"
	"taskflow/internal/logger"
	"taskflow/internal/server"
)

// @title           TaskFlow API
// @version         1.0
// @description     REST API for boards, lists and tasks with JWT authentication.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	logger.Init()

	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Server initialization failed")
	}

	s.Run()
}
