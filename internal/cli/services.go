package cli

import (
	"github.com/yildizm/TweetSense/internal/analysis"
	"github.com/yildizm/TweetSense/internal/backend"
	"github.com/yildizm/TweetSense/internal/config"
	"github.com/yildizm/TweetSense/internal/export"
	"github.com/yildizm/TweetSense/internal/sheet"
)

// services holds the components shared by analyze, health and watch
type services struct {
	client       *backend.Client
	orchestrator *analysis.Orchestrator
	exporter     *export.Exporter
	parser       *sheet.Parser
}

// newServices wires the backend client and everything built on it from cfg
func newServices(cfg *config.Config, vaderBreakdown bool) (*services, error) {
	client, err := backend.New(&backend.Config{
		BaseURL:   cfg.Backend.BaseURL,
		Timeout:   cfg.Backend.Timeout,
		UserAgent: cfg.Backend.UserAgent,
	}, newLogger("backend"))
	if err != nil {
		return nil, err
	}

	orchestrator := analysis.New(client, analysis.Options{
		VaderBreakdown: vaderBreakdown,
	}, newLogger("analysis"))

	exporter := export.New(client, export.Options{
		Directory:   cfg.Export.Directory,
		ChartWidth:  cfg.Export.ChartWidth,
		ChartHeight: cfg.Export.ChartHeight,
	}, newLogger("export"))

	return &services{
		client:       client,
		orchestrator: orchestrator,
		exporter:     exporter,
		parser:       sheet.New(cfg.Analysis.MaxRows),
	}, nil
}

func (s *services) Close() {
	s.orchestrator.Close()
}
