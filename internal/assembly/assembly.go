package assembly

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"log/slog"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"autovideo/internal/config"
	"autovideo/internal/encoder"
	"autovideo/internal/fileutil"
	"autovideo/internal/history"
	"autovideo/internal/identifier"
	"autovideo/internal/logging"
	"autovideo/internal/scriptgen"
	"autovideo/internal/services"
	"autovideo/internal/template"
	"autovideo/internal/textutil"
	"autovideo/internal/timing"
)

// lockFileName guards concurrent batches against interleaved writes to the
// shared plugin files.
const lockFileName = ".autovideo.lock"

// Request describes one conversion batch. Settings are final values;
// merging config defaults with flag overrides is the caller's job.
type Request struct {
	ModName        string
	Input          string
	VideoName      string
	PluginPath     string
	DriveInPath    string
	FrameSize      int
	FrameRate      int
	Quality        string
	KeepAspect     bool
	ShortNames     bool
	GenerateScript bool
	ScriptInfo     scriptgen.Options
}

// VideoResult reports one converted video for summary rendering.
type VideoResult struct {
	Name       string
	Token      string
	AudioName  string
	GridCount  int
	StopTime   float32
	FrameCount int
	Truncated  bool
	Compact    bool
	HasAudio   bool
	Textures   []string
	AudioFile  string
	Meshes     []string
}

// BatchResult reports a finished batch.
type BatchResult struct {
	BatchID   string
	ModName   string
	ModToken  string
	OutputDir string
	Script    bool
	Videos    []VideoResult
	// Artifacts lists the plugin or script files written after the video
	// loop.
	Artifacts []string
}

// FrameEncoder produces the texture and audio assets for single videos.
type FrameEncoder interface {
	Analyze(ctx context.Context, source string, frameRate int) (encoder.Analysis, error)
	Render(ctx context.Context, req encoder.Request, analysis encoder.Analysis) (encoder.Result, error)
}

// Assembler drives conversion batches.
type Assembler struct {
	cfg       *config.Config
	logger    *slog.Logger
	encoder   FrameEncoder
	confirmer Confirmer
	store     *history.Store
	templates *template.Loader
}

// Option customizes an Assembler.
type Option func(*Assembler)

// WithEncoder replaces the frame encoder, primarily for tests.
func WithEncoder(enc FrameEncoder) Option {
	return func(a *Assembler) { a.encoder = enc }
}

// WithConfirmer sets the policy for confirmation-gated warnings.
func WithConfirmer(c Confirmer) Option {
	return func(a *Assembler) { a.confirmer = c }
}

// WithHistory attaches a conversion ledger. A nil store disables
// recording.
func WithHistory(store *history.Store) Option {
	return func(a *Assembler) { a.store = store }
}

// New constructs an Assembler bound to cfg.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Assembler {
	a := &Assembler{
		cfg:       cfg,
		confirmer: DeclineAll{},
		templates: template.NewLoader(cfg.Templates.Dir),
	}
	a.SetLogger(logger)
	for _, opt := range opts {
		opt(a)
	}
	if a.encoder == nil {
		a.encoder = encoder.New(cfg, logger)
	}
	return a
}

// SetLogger updates the assembler's logging destination while preserving
// component labeling.
func (a *Assembler) SetLogger(logger *slog.Logger) {
	a.logger = logging.NewComponentLogger(logger, "assembly")
}

// Run executes one batch and reports what was written. The first failing
// video aborts the batch; assets already written for earlier videos stay
// on disk, but plugin and script files only appear when every video
// succeeded.
func (a *Assembler) Run(ctx context.Context, req Request) (*BatchResult, error) {
	videos, err := collectVideos(req.Input, req.VideoName, req.FrameRate, req.ShortNames)
	if err != nil {
		return nil, err
	}

	if !req.GenerateScript && len(videos) > template.PluginCapacity {
		prompt := fmt.Sprintf("Folder contains %d videos but an esp can only support %d, continue? (y/N) ", len(videos), template.PluginCapacity)
		ok, cerr := a.confirmer.Confirm(prompt)
		if cerr != nil {
			return nil, services.Wrap(
				services.ErrConfirmationDeclined,
				"assembly",
				"confirm batch size",
				"Could not resolve the batch size prompt",
				cerr,
			)
		}
		if !ok {
			return nil, services.Wrap(
				services.ErrConfirmationDeclined,
				"assembly",
				"confirm batch size",
				"Too many videos",
				nil,
			)
		}
	}

	if err := validateNames(videos); err != nil {
		return nil, err
	}
	if err := validateFrameSize(req.FrameSize); err != nil {
		return nil, err
	}

	tvPlugin, diPlugin, err := a.loadPlugins(req)
	if err != nil {
		return nil, err
	}

	mod, err := identifier.New(req.ModName)
	if err != nil {
		return nil, services.Wrap(
			services.ErrValidation,
			"assembly",
			"derive mod identifier",
			"Mod names share the 10 character limit of video names",
			err,
		)
	}

	outputDir := a.cfg.Paths.OutputDir
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, services.Wrap(
			services.ErrTransient,
			"assembly",
			"prepare output",
			fmt.Sprintf("Could not create output directory %s", outputDir),
			err,
		)
	}

	lock := flock.New(filepath.Join(outputDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(
			services.ErrTransient,
			"assembly",
			"lock output",
			"Could not acquire the output directory lock",
			err,
		)
	}
	if !locked {
		return nil, services.Wrap(
			services.ErrTransient,
			"assembly",
			"lock output",
			"Another conversion is already writing to this output directory",
			nil,
		)
	}
	defer lock.Unlock()

	start := time.Now()
	batchID := uuid.NewString()
	ctx = services.WithBatchID(ctx, batchID)
	logger := a.logger.With(logging.String(logging.FieldBatchID, batchID))
	logger.Info("starting batch",
		logging.String("mod", req.ModName),
		logging.Int("videos", len(videos)),
		logging.Bool("script_mode", req.GenerateScript),
	)

	stagingRoot := filepath.Join(a.cfg.Paths.StagingDir, "batch-"+batchID)
	if err := os.MkdirAll(stagingRoot, 0o755); err != nil {
		return nil, services.Wrap(
			services.ErrTransient,
			"assembly",
			"prepare staging",
			fmt.Sprintf("Could not create staging directory %s", stagingRoot),
			err,
		)
	}
	defer os.RemoveAll(stagingRoot)

	batch := &BatchResult{
		BatchID:   batchID,
		ModName:   req.ModName,
		ModToken:  mod.Token,
		OutputDir: outputDir,
		Script:    req.GenerateScript,
	}
	scriptRecords := make([]scriptgen.Record, 0, len(videos))
	writeDriveIn := false

	for _, video := range videos {
		result, convErr := a.convertVideo(ctx, logger, req, mod, video, stagingRoot, tvPlugin, diPlugin)
		a.record(ctx, logger, batchID, req, video, result, convErr)
		if convErr != nil {
			return nil, convErr
		}
		if result.Compact {
			writeDriveIn = true
		}
		if req.GenerateScript {
			scriptRecords = append(scriptRecords, scriptgen.Record{
				Token:     result.Token,
				Name:      video.Name,
				AudioName: result.AudioName,
				Compact:   result.Compact,
			})
		}
		batch.Videos = append(batch.Videos, result)
	}

	if req.GenerateScript {
		target := filepath.Join(outputDir, scriptgen.FileName(req.ModName))
		script := scriptgen.Generate(req.ModName, mod.Token, scriptRecords, req.ScriptInfo)
		if err := fileutil.WriteAsset(target, script); err != nil {
			return nil, services.Wrap(
				services.ErrTransient,
				"assembly",
				"write script",
				fmt.Sprintf("Failed to write %s", target),
				err,
			)
		}
		batch.Artifacts = append(batch.Artifacts, target)
	} else {
		target := filepath.Join(outputDir, template.PluginFileName(req.ModName))
		if err := fileutil.WriteAsset(target, tvPlugin); err != nil {
			return nil, services.Wrap(
				services.ErrTransient,
				"assembly",
				"write plugin",
				fmt.Sprintf("Failed to write %s", target),
				err,
			)
		}
		batch.Artifacts = append(batch.Artifacts, target)
		if writeDriveIn {
			target := filepath.Join(outputDir, template.DriveInFileName(req.ModName))
			if err := fileutil.WriteAsset(target, diPlugin); err != nil {
				return nil, services.Wrap(
					services.ErrTransient,
					"assembly",
					"write plugin",
					fmt.Sprintf("Failed to write %s", target),
					err,
				)
			}
			batch.Artifacts = append(batch.Artifacts, target)
		}
	}

	logger.Info("batch complete",
		logging.Int("videos", len(batch.Videos)),
		logging.Int("artifacts", len(batch.Artifacts)),
		logging.Duration("elapsed", time.Since(start)),
	)
	return batch, nil
}

func (a *Assembler) convertVideo(ctx context.Context, logger *slog.Logger, req Request, mod identifier.Identity, video Video, stagingRoot string, tvPlugin, diPlugin []byte) (VideoResult, error) {
	ctx = services.WithVideo(ctx, video.Name)
	identity, err := identifier.New(video.Name)
	if err != nil {
		return VideoResult{}, services.Wrap(
			services.ErrValidation,
			"assembly",
			"derive video identifier",
			"",
			err,
		)
	}
	audioName, err := identifier.Pad(identity.Token, 'X', template.AudioNameLength, true)
	if err != nil {
		return VideoResult{}, services.Wrap(
			services.ErrValidation,
			"assembly",
			"derive audio name",
			"",
			err,
		)
	}

	logger.Info("converting video",
		logging.String("video", video.Name),
		logging.String("source", video.Path),
		logging.Int("frame_rate", video.FrameRate),
	)

	encCtx := services.WithStage(ctx, "encode")
	analysis, err := a.encoder.Analyze(encCtx, video.Path, video.FrameRate)
	if err != nil {
		return VideoResult{}, err
	}
	if analysis.Truncated {
		capacity := float64(timing.MaxFrames) / float64(video.FrameRate)
		prompt := fmt.Sprintf("%s is %s long but the meshes can only play the first %s, convert only the start? (y/N) ",
			video.Name, formatDuration(analysis.Duration), formatDuration(capacity))
		ok, cerr := a.confirmer.Confirm(prompt)
		if cerr != nil {
			return VideoResult{}, services.Wrap(
				services.ErrConfirmationDeclined,
				"assembly",
				"confirm truncation",
				"Could not resolve the truncation prompt",
				cerr,
			)
		}
		if !ok {
			return VideoResult{}, services.Wrap(
				services.ErrConfirmationDeclined,
				"assembly",
				"confirm truncation",
				fmt.Sprintf("%s is too long", video.Name),
				nil,
			)
		}
	}

	encRes, err := a.encoder.Render(encCtx, encoder.Request{
		Source:     video.Path,
		ModToken:   mod.Token,
		VideoToken: identity.Token,
		AudioName:  audioName,
		FrameRate:  video.FrameRate,
		FrameSize:  req.FrameSize,
		KeepAspect: req.KeepAspect,
		Quality:    req.Quality,
		StagingDir: filepath.Join(stagingRoot, textutil.SanitizeToken(video.Name)),
		OutputDir:  a.cfg.Paths.OutputDir,
	}, analysis)
	if err != nil {
		return VideoResult{}, err
	}

	compact := encRes.GridCount <= timing.CompactGrids
	ids := template.Identifiers{Mod: mod, Video: identity, Audio: audioName}

	if !req.GenerateScript {
		if err := template.ApplyPlugin(tvPlugin, ids); err != nil {
			return VideoResult{}, services.Wrap(
				services.ErrValidation,
				"assembly",
				"patch plugin",
				fmt.Sprintf("Could not stamp %s into the plugin", video.Name),
				err,
			)
		}
		if compact {
			if err := template.ApplyPlugin(diPlugin, ids); err != nil {
				return VideoResult{}, services.Wrap(
					services.ErrValidation,
					"assembly",
					"patch plugin",
					fmt.Sprintf("Could not stamp %s into the drive-in plugin", video.Name),
					err,
				)
			}
		}
	}

	meshes := make([]string, 0, 3)
	for _, role := range template.MeshRoles(encRes.GridCount) {
		buf, err := a.templates.Mesh(role, encRes.GridCount)
		if err != nil {
			return VideoResult{}, services.Wrap(
				services.ErrConfiguration,
				"assembly",
				"load mesh template",
				fmt.Sprintf("Could not load the %s mesh template", role),
				err,
			)
		}
		if err := template.ApplyMeshIdentifiers(buf, ids); err != nil {
			return VideoResult{}, services.Wrap(
				services.ErrValidation,
				"assembly",
				"patch mesh",
				fmt.Sprintf("Could not stamp %s into the %s mesh", video.Name, role),
				err,
			)
		}
		template.ApplyMeshTiming(buf, encRes.GridCount, encRes.StopTime, video.FrameRate)
		target := filepath.Join(a.cfg.Paths.OutputDir, "meshes", "Videos", string(role), mod.Token, identity.Token+".nif")
		if err := fileutil.WriteAsset(target, buf); err != nil {
			return VideoResult{}, services.Wrap(
				services.ErrTransient,
				"assembly",
				"write mesh",
				fmt.Sprintf("Failed to write %s", target),
				err,
			)
		}
		meshes = append(meshes, target)
	}

	logger.Info("converted video",
		logging.String("video", video.Name),
		logging.Int("grids", encRes.GridCount),
		logging.Int("frames", encRes.FrameCount),
		logging.Float64("stop_time", float64(encRes.StopTime)),
		logging.Bool("compact", compact),
	)

	return VideoResult{
		Name:       video.Name,
		Token:      identity.Token,
		AudioName:  audioName,
		GridCount:  encRes.GridCount,
		StopTime:   encRes.StopTime,
		FrameCount: encRes.FrameCount,
		Truncated:  analysis.Truncated,
		Compact:    compact,
		HasAudio:   encRes.AudioFile != "",
		Textures:   encRes.Textures,
		AudioFile:  encRes.AudioFile,
		Meshes:     meshes,
	}, nil
}

// loadPlugins returns the working plugin buffers, bundled or
// caller-supplied. Both load in every mode so a bad --esp path fails the
// batch before conversion starts.
func (a *Assembler) loadPlugins(req Request) ([]byte, []byte, error) {
	tv, err := a.loadPlugin(req.PluginPath, a.templates.PrimaryPlugin, "Given esp file does not exist")
	if err != nil {
		return nil, nil, err
	}
	di, err := a.loadPlugin(req.DriveInPath, a.templates.DriveInPlugin, "Given DriveIn esp file does not exist")
	if err != nil {
		return nil, nil, err
	}
	return tv, di, nil
}

func (a *Assembler) loadPlugin(path string, bundled func() ([]byte, error), missingMsg string) ([]byte, error) {
	if strings.TrimSpace(path) != "" {
		buf, err := template.ReadPluginFile(path)
		if err != nil {
			return nil, services.Wrap(
				services.ErrValidation,
				"assembly",
				"load plugin template",
				missingMsg,
				err,
			)
		}
		return buf, nil
	}
	buf, err := bundled()
	if err != nil {
		return nil, services.Wrap(
			services.ErrConfiguration,
			"assembly",
			"load plugin template",
			"Could not load the bundled plugin template",
			err,
		)
	}
	return buf, nil
}

// record writes one ledger row. Ledger failures never fail the batch.
func (a *Assembler) record(ctx context.Context, logger *slog.Logger, batchID string, req Request, video Video, result VideoResult, convErr error) {
	if a.store == nil {
		return
	}
	conv := &history.Conversion{
		BatchID:    batchID,
		ModName:    req.ModName,
		VideoName:  video.Name,
		SourcePath: video.Path,
		FrameSize:  req.FrameSize,
		FrameRate:  video.FrameRate,
		FrameCount: result.FrameCount,
		GridCount:  result.GridCount,
		Truncated:  result.Truncated,
		HasAudio:   result.HasAudio,
		Status:     history.StatusCompleted,
	}
	if convErr != nil {
		conv.Status = services.FailureStatus(convErr)
		conv.ErrorMessage = convErr.Error()
	}
	rec, err := a.store.Record(ctx, conv)
	if err != nil {
		logger.Warn("failed to record conversion",
			logging.String("video", video.Name),
			logging.Error(err),
		)
		return
	}
	logger.Debug("recorded conversion",
		logging.String("video", video.Name),
		logging.Int64("row", rec.ID),
	)
}

// formatDuration renders seconds as mm:ss.s for prompts.
func formatDuration(seconds float64) string {
	minutes := int(seconds / 60)
	return fmt.Sprintf("%02d:%04.1f", minutes, math.Mod(seconds, 60))
}
