package discovery

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config captures every knob that influences a discovery run. All values
// originate from Viper so the pipeline can be configured via files, env
// vars, or CLI flags.
type Config struct {
	TargetCount    int
	Workers        int
	SourceLimit    int
	SourceTimeout  time.Duration
	RequestTimeout time.Duration
	RetryAttempts  int
	EnrichTimeout  time.Duration
	UserAgent      string
	DomainDelay    time.Duration
	RenderEnabled  bool
	RenderTimeout  time.Duration
	EnableLinkedIn bool
	LinkedInAuth   string
	LinkedInSess   string
	Tier2Live      bool
	OutputPath     string
}

// LoadConfig constructs a Config by reading from Viper.
func LoadConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		TargetCount:    v.GetInt("discovery.target_count"),
		Workers:        v.GetInt("discovery.workers"),
		SourceLimit:    v.GetInt("discovery.source_limit"),
		SourceTimeout:  v.GetDuration("discovery.source_timeout"),
		RequestTimeout: v.GetDuration("discovery.request_timeout"),
		RetryAttempts:  v.GetInt("discovery.retry_attempts"),
		EnrichTimeout:  v.GetDuration("discovery.enrich_timeout"),
		UserAgent:      v.GetString("discovery.user_agent"),
		DomainDelay:    v.GetDuration("discovery.domain_delay"),
		RenderEnabled:  v.GetBool("discovery.render_enabled"),
		RenderTimeout:  v.GetDuration("discovery.render_timeout"),
		EnableLinkedIn: v.GetBool("discovery.enable_linkedin"),
		LinkedInAuth:   v.GetString("discovery.linkedin_li_at"),
		LinkedInSess:   v.GetString("discovery.linkedin_jsessionid"),
		Tier2Live:      v.GetBool("discovery.tier2_live_sources"),
		OutputPath:     v.GetString("discovery.output_path"),
	}
	return cfg, cfg.Validate()
}

// Validate checks for obviously bad configuration combinations.
func (c Config) Validate() error {
	if c.TargetCount <= 0 {
		return fmt.Errorf("discovery.target_count must be > 0")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("discovery.workers must be > 0")
	}
	if c.SourceLimit <= 0 {
		return fmt.Errorf("discovery.source_limit must be > 0")
	}
	if c.SourceTimeout <= 0 {
		return fmt.Errorf("discovery.source_timeout must be > 0")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("discovery.request_timeout must be > 0")
	}
	if c.RetryAttempts <= 0 {
		return fmt.Errorf("discovery.retry_attempts must be > 0")
	}
	if c.EnrichTimeout <= 0 {
		return fmt.Errorf("discovery.enrich_timeout must be > 0")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("discovery.user_agent must be set")
	}
	if c.RenderEnabled && c.RenderTimeout <= 0 {
		return fmt.Errorf("discovery.render_timeout must be > 0 when rendering is enabled")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("discovery.output_path must be set")
	}
	return nil
}
