package api

import (
	"fmt"
	"log"
	"net/http"
	"time"
)

const (
	StageProd = "prod"
	StageDev  = "dev"
)

var defaultPort = "8000"

type Server struct {
	port  string
	stage string
	rp    *RequestProcessor
}

type Option func(*Server) error

func NewServer(rp *RequestProcessor, optFuncs ...Option) *Server {
	server := Server{rp: rp, stage: StageDev}
	for _, opt := range optFuncs {
		if err := opt(&server); err != nil {
			panic(err)
		}
	}
	if server.port == "" {
		server.port = defaultPort
	}
	return &server
}

func WithPort(port string) Option {
	return func(s *Server) error {
		if port == "" {
			return fmt.Errorf("port cannot be empty")
		}
		s.port = port
		return nil
	}
}

func WithStage(stage string) Option {
	return func(s *Server) error {
		if stage != StageDev && stage != StageProd {
			return fmt.Errorf("stage must be either %s or %s, got: %q", StageDev, StageProd, stage)
		}
		s.stage = stage
		return nil
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /battleship", s.rp)
	return mux
}

func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              "0.0.0.0:" + s.port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: time.Second * 5,
	}

	log.Printf("Listening to port %s (stage: %s)\n", s.port, s.stage)
	return srv.ListenAndServe()
}
