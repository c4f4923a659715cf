package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"
	"github.com/your-org/enhanced-html-reporter/pkg/logger"
)

// Config holds server configuration
type Config struct {
	Host       string
	Port       int
	ReportsDir string
}

// Server provides report viewing over HTTP
type Server struct {
	config *Config
	router *mux.Router
}

// reportInfo describes one generated report for the listing API.
type reportInfo struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
	Modified string `json:"modified"`
}

// NewServer creates a new report server
func NewServer(cfg *Config) *Server {
	s := &Server{
		config: cfg,
		router: mux.NewRouter(),
	}
	s.setupRoutes()
	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	logger.Infof("Server running at http://%s", addr)
	logger.Infof("Press Ctrl+C to stop")

	return http.ListenAndServe(addr, s.router)
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/reports", s.handleListReports).Methods("GET")
	api.HandleFunc("/reports/{name}", s.handleGetReport).Methods("GET")

	fs := http.FileServer(http.Dir(s.config.ReportsDir))
	s.router.PathPrefix("/").Handler(fs)
}

// handleListReports lists HTML reports found under the reports dir.
func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	reports := make([]reportInfo, 0)

	err := filepath.Walk(s.config.ReportsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".html") {
			return nil
		}
		rel, err := filepath.Rel(s.config.ReportsDir, path)
		if err != nil {
			return nil
		}
		reports = append(reports, reportInfo{
			Name:     info.Name(),
			Path:     filepath.ToSlash(rel),
			Size:     info.Size(),
			Modified: info.ModTime().UTC().Format("2006-01-02T15:04:05Z"),
		})
		return nil
	})
	if err != nil {
		http.Error(w, "failed to list reports", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"reports": reports}); err != nil {
		logger.Errorf("Failed to encode report list: %v", err)
	}
}

// handleGetReport serves the detailed JSON payload next to a named report.
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if strings.Contains(name, "..") || strings.ContainsRune(name, os.PathSeparator) {
		http.Error(w, "invalid report name", http.StatusBadRequest)
		return
	}

	jsonPath := filepath.Join(s.config.ReportsDir, "detailed-report.json")
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		http.Error(w, "report not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(data); err != nil {
		logger.Errorf("Failed to write report payload: %v", err)
	}
}
