package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/yochat/yochat/internal/service"
	"github.com/yochat/yochat/internal/web"
)

// Server is the HTTP face of the app: the landing page plus the game API.
type Server struct {
	echo  *echo.Echo
	games *service.GameService
	theme web.Theme
}

// New wires routes and middleware. corsOrigins may be empty, which allows
// any origin.
func New(games *service.GameService, theme web.Theme, corsOrigins []string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowCredentials: false,
	}))

	s := &Server{echo: e, games: games, theme: theme}

	e.GET("/", s.handleLanding)
	e.GET("/healthz", s.handleHealth)
	e.POST("/game/start", s.handleStartGame)
	e.GET("/game/leaderboard", s.handleLeaderboard)
	e.POST("/game/:game_id/generate-order", s.handleGenerateOrder)
	e.POST("/game/:game_id/serve-order/:order_id", s.handleServeOrder)
	e.GET("/game/:game_id/state", s.handleGameState)

	return s
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler { return s.echo }

// Start blocks serving on addr until Shutdown or failure.
func (s *Server) Start(addr string) error {
	err := s.echo.Start(addr)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests within ctx's deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
