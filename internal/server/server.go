// Package server assembles the echo instance and its middleware.
package server

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Handler is anything that registers routes on the echo instance.
type Handler interface {
	Register(e *echo.Echo)
}

// Server wraps the echo instance and its listen address.
type Server struct {
	echo *echo.Echo
	addr string
}

// NewServer builds the HTTP server with recovery and request logging
// middleware and registers every handler.
func NewServer(addr string, handlers ...Handler) *Server {
	if addr == "" {
		addr = ":5000"
	}
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	for _, h := range handlers {
		if h != nil {
			h.Register(e)
		}
	}
	return &Server{echo: e, addr: addr}
}

// Start begins serving and blocks until the listener closes.
func (s *Server) Start() error {
	return s.echo.Start(s.addr)
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
