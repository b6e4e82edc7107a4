package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yochat/yochat/internal/service"
	"github.com/yochat/yochat/internal/web"
)

func (s *Server) handleLanding(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return web.LandingPage(s.theme).Render(c.Response())
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStartGame(c echo.Context) error {
	g, err := s.games.StartGame(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"game_id": g.ID})
}

func (s *Server) handleGenerateOrder(c echo.Context) error {
	bundle, err := s.games.GenerateOrder(c.Request().Context(), c.Param("game_id"))
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, bundle)
}

type serveOrderRequest struct {
	ItemsServed []string `json:"items_served"`
}

func (s *Server) handleServeOrder(c echo.Context) error {
	var req serveOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	result, err := s.games.ServeOrder(c.Request().Context(), c.Param("game_id"), c.Param("order_id"), req.ItemsServed)
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleGameState(c echo.Context) error {
	state, err := s.games.GameState(c.Request().Context(), c.Param("game_id"))
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, state)
}

func (s *Server) handleLeaderboard(c echo.Context) error {
	top, err := s.games.Leaderboard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, top)
}

// apiError maps service sentinels onto HTTP statuses.
func apiError(err error) error {
	switch {
	case errors.Is(err, service.ErrGameNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrCustomerNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return err
	}
}
