package cmd

import (
	"context"

	"github.com/openai/openai-go"

	"github.com/jkivimaki/orderintake/internal/bc"
	"github.com/jkivimaki/orderintake/internal/config"
	"github.com/jkivimaki/orderintake/internal/extract"
	"github.com/jkivimaki/orderintake/internal/instrumentation"
)

// newMetricsProvider creates the metrics provider for a command run. With
// metrics disabled it hands out no-op recorders.
func newMetricsProvider(ctx context.Context, cfg *config.Config) (*instrumentation.Provider, error) {
	return instrumentation.NewProvider(ctx, instrumentation.Config{
		Enabled:        cfg.Metrics.Enabled,
		ServiceName:    "orderintake",
		ServiceVersion: version,
	})
}

// newIdentifier creates the order identifier. The OpenAI client reads its
// API key from the environment.
func newIdentifier(cfg *config.Config) *extract.Identifier {
	client := openai.NewClient()
	return extract.NewIdentifier(&client, cfg.Extract.CatalogDir, func(o *extract.Options) {
		o.Model = cfg.Extract.Model
		o.LeadDays = cfg.Extract.DeliveryLeadDays
	})
}

// newBCClient validates the Business Central settings and creates a client.
func newBCClient(cfg *config.Config, metrics *instrumentation.Metrics) (*bc.Client, error) {
	if err := cfg.ValidateBC(); err != nil {
		return nil, err
	}
	return bc.NewClient(bc.Config{
		TenantID:     cfg.BC.TenantID,
		Environment:  cfg.BC.Environment,
		CompanyName:  cfg.BC.CompanyName,
		ClientID:     cfg.BC.ClientID,
		ClientSecret: cfg.BC.ClientSecret,
	}, func(o *bc.Options) {
		o.Metrics = metrics
	}), nil
}
