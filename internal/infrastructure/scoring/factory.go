package scoring

import (
	"context"
	"fmt"

	"github.com/orris-inc/modgate/internal/domain/moderation"
	"github.com/orris-inc/modgate/internal/infrastructure/scoring/bedrock"
	"github.com/orris-inc/modgate/internal/infrastructure/scoring/httpscorer"
	"github.com/orris-inc/modgate/internal/infrastructure/scoring/lexicon"
	sharedConfig "github.com/orris-inc/modgate/internal/shared/config"
	"github.com/orris-inc/modgate/internal/shared/logger"
)

// Scorer backend names accepted in scorer.text and scorer.image.
const (
	BackendLexicon = "lexicon"
	BackendHTTP    = "http"
	BackendBedrock = "bedrock"
	BackendNone    = "none"
)

// New builds the scorer chain described by cfg: one backend per content kind,
// each instrumented, routed by kind and optionally cached.
func New(ctx context.Context, cfg sharedConfig.ScorerConfig, modCfg sharedConfig.ModerationConfig, log logger.Interface) (moderation.Scorer, error) {
	categories := map[moderation.ContentKind][]string{
		moderation.ContentKindText:  modCfg.TextCategories,
		moderation.ContentKindImage: modCfg.ImageCategories,
	}

	b := &builder{cfg: cfg, categories: categories, log: log}

	routes := make(map[moderation.ContentKind]moderation.Scorer, 2)
	for kind, backend := range map[moderation.ContentKind]string{
		moderation.ContentKindText:  cfg.Text,
		moderation.ContentKindImage: cfg.Image,
	} {
		s, err := b.build(ctx, kind, backend)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s scorer: %w", kind, err)
		}
		routes[kind] = NewInstrumented(backendName(backend), s)
		log.Infow("category scorer configured", "kind", kind.String(), "backend", backendName(backend))
	}

	var scorer moderation.Scorer = NewRouter(routes)
	if cfg.CacheSize > 0 {
		scorer = NewCachingScorer(scorer, cfg.CacheSize, cfg.CacheTTL, modCfg.ScoringTimeout)
	}
	return scorer, nil
}

func backendName(backend string) string {
	if backend == "" {
		return BackendNone
	}
	return backend
}

// builder shares backend clients between content kinds.
type builder struct {
	cfg        sharedConfig.ScorerConfig
	categories map[moderation.ContentKind][]string
	log        logger.Interface

	lex     *lexicon.Lexicon
	http    *httpscorer.Client
	bedrock *bedrock.Scorer
}

func (b *builder) build(ctx context.Context, kind moderation.ContentKind, backend string) (moderation.Scorer, error) {
	switch backendName(backend) {
	case BackendNone:
		return Unavailable{}, nil

	case BackendLexicon:
		if kind != moderation.ContentKindText {
			return nil, fmt.Errorf("lexicon scorer only supports text content")
		}
		if b.lex == nil {
			lex, err := lexicon.Load(b.cfg.Lexicon.Path)
			if err != nil {
				return nil, err
			}
			b.lex = lex
		}
		return lexicon.NewScorer(b.lex, b.categories[kind]), nil

	case BackendHTTP:
		if b.http == nil {
			client, err := httpscorer.NewClient(b.cfg.HTTP, b.categories, b.log.Named("httpscorer"))
			if err != nil {
				return nil, err
			}
			b.http = client
		}
		return b.http, nil

	case BackendBedrock:
		if b.bedrock == nil {
			runtime, err := bedrock.NewRuntimeClient(ctx, b.cfg.Bedrock.Region)
			if err != nil {
				return nil, err
			}
			b.bedrock = bedrock.NewScorer(runtime, b.cfg.Bedrock.ModelID, b.cfg.Bedrock.MaxTokens, b.categories, b.log.Named("bedrock"))
		}
		return b.bedrock, nil

	default:
		return nil, fmt.Errorf("unknown scorer backend %q", backend)
	}
}
