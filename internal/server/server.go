// Package server exposes height field queries over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	gomath "math"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/Faultbox/fractal-terrain/internal/logger"
	"github.com/Faultbox/fractal-terrain/internal/terrain"
	"github.com/Faultbox/fractal-terrain/pkg/heightfield"
)

// MaxTileLength bounds the ?length= override of tile endpoints.
const MaxTileLength = 1024

var errBadParam = errors.New("bad parameter")

// Server answers height, lattice and tile queries for one height field.
type Server struct {
	hf         *heightfield.HeightField
	tileLength int
	log        *zap.Logger
	router     *mux.Router
}

// New creates a server. tileLength is the default edge length of tiles.
func New(hf *heightfield.HeightField, tileLength int) *Server {
	s := &Server{
		hf:         hf,
		tileLength: tileLength,
		log:        logger.Named("server"),
		router:     mux.NewRouter(),
	}

	s.router.HandleFunc("/height", s.handleHeight).Methods(http.MethodGet)
	s.router.HandleFunc("/lattice/{x}/{z}", s.handleLattice).Methods(http.MethodGet)
	s.router.HandleFunc("/tiles/{x}/{z}", s.handleTile).Methods(http.MethodGet)
	s.router.HandleFunc("/tiles/{x}/{z}/heightmap.bmp", s.handleTileBMP).Methods(http.MethodGet)
	s.router.HandleFunc("/info", s.handleInfo).Methods(http.MethodGet)

	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

type heightResponse struct {
	X      float64 `json:"x"`
	Z      float64 `json:"z"`
	Height float64 `json:"height"`
}

type latticeResponse struct {
	X      int     `json:"x"`
	Z      int     `json:"z"`
	Height float64 `json:"height"`
}

type infoResponse struct {
	TileSize int    `json:"tile_size"`
	Strategy string `json:"strategy"`
	Offset   string `json:"offset"`
	Sampler  string `json:"sampler"`
	Cache    bool   `json:"cache"`
	Seed     int64  `json:"seed"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHeight(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, err := parseCoord(q.Get("x"), "x")
	if err != nil {
		s.badRequest(w, r, err)
		return
	}
	z, err := parseCoord(q.Get("z"), "z")
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	s.writeJSON(w, heightResponse{X: x, Z: z, Height: s.hf.HeightAt(x, z)})
}

func (s *Server) handleLattice(w http.ResponseWriter, r *http.Request) {
	x, z, err := parseLatticeVars(r)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	s.writeJSON(w, latticeResponse{X: x, Z: z, Height: s.hf.LatticeHeightAt(x, z)})
}

func (s *Server) handleTile(w http.ResponseWriter, r *http.Request) {
	grid, err := s.tileGrid(r)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	s.writeJSON(w, grid)
}

func (s *Server) handleTileBMP(w http.ResponseWriter, r *http.Request) {
	grid, err := s.tileGrid(r)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/bmp")
	if err := terrain.EncodeBMP(w, grid.Image()); err != nil {
		s.log.Error("encoding heightmap", zap.String("path", r.URL.Path), zap.Error(err))
	}
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	cfg := s.hf.Config()
	s.writeJSON(w, infoResponse{
		TileSize: cfg.TileSize,
		Strategy: cfg.Strategy.String(),
		Offset:   cfg.Offset.String(),
		Sampler:  cfg.Sampler.String(),
		Cache:    cfg.Cache,
		Seed:     cfg.Seed,
	})
}

func (s *Server) tileGrid(r *http.Request) (*terrain.Grid, error) {
	x, z, err := parseLatticeVars(r)
	if err != nil {
		return nil, err
	}

	length := s.tileLength
	if v := r.URL.Query().Get("length"); v != "" {
		length, err = strconv.Atoi(v)
		if err != nil || length < 1 || length > MaxTileLength {
			return nil, fmt.Errorf("%w: length must be in [1, %d], got %q", errBadParam, MaxTileLength, v)
		}
	}

	return terrain.SampleGrid(s.hf, x, z, length)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("writing response", zap.Error(err))
	}
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Debug("bad request", zap.String("path", r.URL.Path), zap.Error(err))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
}

func parseCoord(v, name string) (float64, error) {
	if v == "" {
		return 0, fmt.Errorf("%w: missing %s", errBadParam, name)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || gomath.IsNaN(f) || gomath.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s must be a finite number, got %q", errBadParam, name, v)
	}
	return f, nil
}

func parseLatticeVars(r *http.Request) (x, z int, err error) {
	vars := mux.Vars(r)
	x, err = strconv.Atoi(vars["x"])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: x must be an integer, got %q", errBadParam, vars["x"])
	}
	z, err = strconv.Atoi(vars["z"])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: z must be an integer, got %q", errBadParam, vars["z"])
	}
	return x, z, nil
}
