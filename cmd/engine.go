package cmd

import (
	"yqhp/pay-engine/internal/audit"
	"yqhp/pay-engine/internal/config"
	"yqhp/pay-engine/internal/module"
	"yqhp/pay-engine/internal/module/calc"
	"yqhp/pay-engine/internal/pipeline"
	"yqhp/pay-engine/pkg/logger"
	"yqhp/pay-engine/pkg/types"
)

// buildEngine assembles the registry, audit sinks, claim source, and engine
// from configuration. Stages with a configured remote URL use the HTTP
// module client; the rest run in process.
func buildEngine(cfg *config.Config) (*pipeline.Engine, *audit.Manager, *audit.MemorySink, *pipeline.MemoryClaimSource, error) {
	registry := module.NewRegistry()
	calc.MustRegisterAll(registry, calc.Options{
		PerDiemRates:         cfg.Rates.PerDiem,
		DomesticPerDiem:      cfg.Rates.DomesticPerDiem,
		InternationalPerDiem: cfg.Rates.InternationalPerDiem,
		MealDeductionPerDay:  cfg.Rates.MealDeductionPerDay,
	})

	// Remote modules replace the in-process implementation for their stage.
	for stage, url := range cfg.Modules.Remote {
		remote, err := newRemoteModule(stage, url, cfg)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		registry.Unregister(stage)
		if err := registry.Register(remote); err != nil {
			return nil, nil, nil, nil, err
		}
		logger.Info("stage %s served by remote module at %s", stage, url)
	}

	memSink := audit.NewMemorySink()
	auditor := audit.NewManager(memSink)
	if cfg.Audit.File != "" {
		fileSink, err := audit.NewFileSink(cfg.Audit.File)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		auditor.AddSink(fileSink)
	}

	claims := pipeline.NewMemoryClaimSource()
	engine := pipeline.NewEngine(registry, claims, auditor, cfg.Engine.StageTimeout)
	return engine, auditor, memSink, claims, nil
}

func newRemoteModule(stage, url string, cfg *config.Config) (module.Module, error) {
	timeout := cfg.Modules.RemoteTimeout
	switch stage {
	case types.StageFlightTime:
		return module.NewRemote(stage, url, timeout, module.JSONDecoder[types.FlightTimeResult]()), nil
	case types.StageDutyTime:
		return module.NewRemote(stage, url, timeout, module.JSONDecoder[types.DutyTimeResult]()), nil
	case types.StagePerDiem:
		return module.NewRemote(stage, url, timeout, module.JSONDecoder[types.PerDiemResult]()), nil
	case types.StagePremiumPay:
		return module.NewRemote(stage, url, timeout, module.JSONDecoder[types.PremiumPayResult]()), nil
	case types.StageGuarantee:
		return module.NewRemote(stage, url, timeout, module.JSONDecoder[types.GuaranteeResult]()), nil
	case types.StageCompliance:
		return module.NewRemote(stage, url, timeout, module.JSONDecoder[types.ComplianceResult]()), nil
	case types.StageClaims:
		return module.NewRemote(stage, url, timeout, module.JSONDecoder[types.ClaimsResult]()), nil
	default:
		return nil, module.NewNotFoundError(stage)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.NewLoader().WithConfigPath(cfgFile).Load()
	if err != nil {
		return nil, err
	}
	logger.SetLevelFromString(cfg.Logging.Level)
	if debug {
		logger.EnableDebug()
	}
	return cfg, nil
}
