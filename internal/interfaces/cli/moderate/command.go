// Package moderate runs a single piece of content through the moderation
// pipeline from the command line.
package moderate

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"

	"github.com/orris-inc/modgate/internal/application/moderation/usecases"
	"github.com/orris-inc/modgate/internal/interfaces/cli/bootstrap"
	"github.com/orris-inc/modgate/internal/shared/errors"
	"github.com/orris-inc/modgate/internal/shared/logger"
	"github.com/orris-inc/modgate/internal/shared/utils"
)

var (
	// ErrRejected is returned when the content could not be approved.
	ErrRejected = stderrors.New("content not approved")
	// ErrRetryable is returned when moderation failed for a transient reason
	// (rate limited or scorer unavailable) and the same input may be retried.
	ErrRetryable = stderrors.New("moderation temporarily unavailable")
)

type options struct {
	bootstrap.Flags
	Text     string
	File     string
	ClientID string
}

func NewCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "moderate",
		Short: "Moderate a piece of text or an image",
		Long: `Run text or an image file through the moderation pipeline and print the
response envelope as JSON. Exits 0 when approved, 75 when the request may be
retried later and 1 otherwise.`,
		Example: `  modgate moderate --text "hello there"
  modgate moderate --file ./photo.png`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "Path to a config file (default: configs/config.yaml)")
	cmd.Flags().StringVarP(&opts.Text, "text", "t", "", "Text to moderate")
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Image file to moderate")
	cmd.Flags().StringVar(&opts.ClientID, "client-id", "cli:local", "Client identity used for rate limiting")
	cmd.MarkFlagsMutuallyExclusive("text", "file")
	cmd.MarkFlagsOneRequired("text", "file")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	opts.LogToStderr = true
	cfg, err := bootstrap.LoadConfig(opts.Flags)
	if err != nil {
		return err
	}

	log := logger.NewComponentLogger("moderate")
	ctx := cmd.Context()

	components, err := bootstrap.Build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer components.Close()

	pipeline := usecases.NewPipeline(
		components.Limiter,
		components.Scorer,
		usecases.PoliciesFromConfig(cfg.Moderation),
		cfg.Moderation.ScoringTimeout,
		log.Named("pipeline"),
	)

	m := &moderator{
		text:  usecases.NewModerateTextUseCase(pipeline, usecases.TextValidatorFromConfig(cfg.Moderation)),
		image: usecases.NewModerateImageUseCase(pipeline, usecases.ImageValidatorFromConfig(cfg.Upload)),
		out:   cmd.OutOrStdout(),
		now:   time.Now,
	}

	if opts.File != "" {
		data, err := os.ReadFile(opts.File)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", opts.File, err)
		}
		return m.moderateImage(ctx, opts.ClientID, data, filepath.Base(opts.File))
	}
	return m.moderateText(ctx, opts.ClientID, opts.Text)
}

type moderator struct {
	text  usecases.ModerateTextExecutor
	image usecases.ModerateImageExecutor
	out   io.Writer
	now   func() time.Time
}

func (m *moderator) moderateText(ctx context.Context, clientID, text string) error {
	result, err := m.text.Execute(ctx, usecases.ModerateTextCommand{
		ClientID: clientID,
		Text:     text,
	})
	return m.print(result, err)
}

func (m *moderator) moderateImage(ctx context.Context, clientID string, data []byte, filename string) error {
	result, err := m.image.Execute(ctx, usecases.ModerateImageCommand{
		ClientID:  clientID,
		Data:      data,
		MediaType: mimetype.Detect(data).String(),
		Filename:  filename,
	})
	return m.print(result, err)
}

func (m *moderator) print(result *usecases.ModerationResult, err error) error {
	var envelope utils.APIResponse
	if err != nil {
		_, envelope = utils.NewErrorEnvelope(err, m.now().UTC())
	} else {
		envelope = utils.NewSuccessEnvelope(result.Verdict, result.Timestamp)
	}

	enc := json.NewEncoder(m.out)
	enc.SetIndent("", "  ")
	if encErr := enc.Encode(envelope); encErr != nil {
		return encErr
	}

	if err != nil {
		if appErr := errors.GetAppError(err); appErr != nil && appErr.Retryable() {
			return ErrRetryable
		}
		return ErrRejected
	}
	if !result.Verdict.IsApproved {
		return ErrRejected
	}
	return nil
}
