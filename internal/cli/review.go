package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/sift/internal/analyzer"
	"github.com/dshills/sift/internal/config"
	"github.com/dshills/sift/internal/format"
	"github.com/dshills/sift/internal/gitctx"
	"github.com/dshills/sift/internal/metrics"
	"github.com/dshills/sift/internal/output"
	"github.com/dshills/sift/internal/redact"
	"github.com/dshills/sift/internal/review"
	"github.com/dshills/sift/internal/score"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Review flags
var (
	flagReports       []string
	flagDiff          string
	flagRange         string
	flagMergeBase     bool
	flagStaged        bool
	flagFiles         string
	flagPaths         string
	flagExclude       string
	flagFormat        string
	flagOut           string
	flagFailOn        string
	flagCommentFormat string
	flagStripPrefix   string
	flagRules         string
	flagDefaultSev    string
	flagMetricsFile   string
	flagMaxComments   int
	flagScore         string
	flagNoRedact      bool
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Aggregate analyzer reports into a review",
	Long: `Aggregate analyzer reports into a review of the changed files.

The files under review come from --diff, --range, --staged or --files;
unstaged working tree changes are reviewed by default. Each --report names
an analyzer output as source=format:path (formats: ` + strings.Join(analyzer.Formats(), ", ") + `).
Findings on files outside the review are skipped.`,
	Example: `  golangci-lint run --out-format checkstyle > lint.xml
  go vet ./... 2> vet.txt
  sift review --range origin/main..HEAD --report lint=checkstyle:lint.xml --report vet=unix:vet.txt --fail-on error`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		specs, err := parseReportSpecs(flagReports)
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		files, err := collectFiles(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		exitCode = runReview(files, specs, cfg)
		return nil
	},
}

// loadConfig merges the config file, environment and review flags, then
// applies the resulting log level.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig, buildOverrides())
	if err != nil {
		return config.Config{}, err
	}
	if flagLogLevel == "" {
		if err := setLogLevel(cfg.LogLevel); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagFailOn != "" {
		m["failOn"] = flagFailOn
	}
	if flagCommentFormat != "" {
		m["commentFormat"] = flagCommentFormat
	}
	if flagStripPrefix != "" {
		m["stripPrefix"] = flagStripPrefix
	}
	if flagRules != "" {
		m["rulesFile"] = flagRules
	}
	if flagDefaultSev != "" {
		m["defaultSeverity"] = flagDefaultSev
	}
	if flagMetricsFile != "" {
		m["metricsFile"] = flagMetricsFile
	}
	if flagMaxComments > 0 {
		m["maxComments"] = strconv.Itoa(flagMaxComments)
	}
	if flagScore != "" {
		m["score.strategy"] = flagScore
	}
	if flagLogLevel != "" {
		m["logLevel"] = flagLogLevel
	}
	return m
}

func buildFileOpts(cfg config.Config) gitctx.Options {
	opts := gitctx.Options{
		Include: cfg.Include,
		Exclude: cfg.Exclude,
	}
	if flagPaths != "" {
		opts.Include = splitComma(flagPaths)
	}
	if flagExclude != "" {
		opts.Exclude = append(opts.Exclude, splitComma(flagExclude)...)
	}
	return opts
}

// collectFiles resolves the files under review from the source flags.
func collectFiles(cfg config.Config) (gitctx.Files, error) {
	opts := buildFileOpts(cfg)
	switch {
	case flagDiff != "":
		return gitctx.FromDiffFile(flagDiff, opts)
	case flagRange != "":
		return gitctx.Range(flagRange, flagMergeBase, opts)
	case flagStaged:
		return gitctx.Staged(opts)
	case flagFiles != "":
		return gitctx.FromList(splitComma(flagFiles), opts), nil
	default:
		return gitctx.Unstaged(opts)
	}
}

func parseReportSpecs(raw []string) ([]analyzer.ReportSpec, error) {
	specs := make([]analyzer.ReportSpec, 0, len(raw))
	seen := make(map[string]bool)
	for _, s := range raw {
		spec, err := analyzer.ParseReportSpec(s)
		if err != nil {
			return nil, err
		}
		if seen[spec.Source] {
			return nil, fmt.Errorf("duplicate report source %q", spec.Source)
		}
		seen[spec.Source] = true
		specs = append(specs, spec)
	}
	return specs, nil
}

func splitComma(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// runReview aggregates every report over files, writes the output and
// returns the process exit code.
func runReview(files gitctx.Files, specs []analyzer.ReportSpec, cfg config.Config) int {
	startTime := time.Now()

	if flagNoRedact {
		cfg.Privacy.RedactSecrets = false
		log.Warn("secret redaction is disabled")
	}

	formatter, err := format.New(cfg.CommentFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitRuntimeError
	}
	var redactor *redact.Redactor
	if cfg.Privacy.RedactSecrets {
		formatter = format.Redacting{Next: formatter}
		redactor = redact.New(cfg.Privacy.RedactPaths)
	}

	opts := analyzer.Options{
		StripPrefix:     cfg.StripPrefix,
		DefaultSeverity: review.Severity(cfg.DefaultSeverity),
	}
	if opts.StripPrefix == "" {
		opts.StripPrefix = files.Repo.Root
	}
	if cfg.RulesFile != "" {
		opts.Rules, err = analyzer.LoadRules(cfg.RulesFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitRuntimeError
		}
	}

	recorder := metrics.NewRecorder()
	r := review.New(review.NewFiles(files.Names), formatter,
		review.WithObserver(metrics.Chain{review.LogObserver{}, recorder}))

	log.WithFields(log.Fields{
		"mode":    files.Mode,
		"files":   len(files.Names),
		"reports": len(specs),
	}).Info("starting review")

	parseStart := time.Now()
	sources := make([]string, 0, len(specs))
	for _, spec := range specs {
		sources = append(sources, spec.Source)
		result, err := analyzer.Load(spec, opts)
		if err != nil {
			log.WithError(err).WithField("source", spec.Source).Warn("skipping unreadable report")
			r.AddProblem(spec.Source, err.Error())
			continue
		}
		if len(result.Violations) == 0 {
			r.AddMessage(fmt.Sprintf("%s reported no violations.", spec.Source))
		}
		r.Add(spec.Source, result)
	}
	parseMs := time.Since(parseStart).Milliseconds()

	strategy := score.Strategy{
		Name:  cfg.Score.Strategy,
		Label: cfg.Score.Label,
		Pass:  cfg.Score.Pass,
		Fail:  cfg.Score.Fail,
	}
	if _, err := strategy.Apply(r); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitRuntimeError
	}

	report := review.BuildReport(r, review.Meta{
		Version: version,
		Repo: review.RepoInfo{
			Root:   files.Repo.Root,
			Head:   files.Repo.Head,
			Branch: files.Repo.Branch,
		},
		Inputs: review.InputInfo{
			Mode:    files.Mode,
			Range:   files.Range,
			Sources: sources,
		},
		Timing: review.Timing{
			ParseMs: parseMs,
			TotalMs: time.Since(startTime).Milliseconds(),
		},
	})

	outOpts := output.Options{MaxComments: cfg.MaxComments, Redactor: redactor}
	if err := output.WriteReport(report, cfg.Format, flagOut, outOpts); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		return ExitRuntimeError
	}

	if cfg.MetricsFile != "" {
		if err := recorder.WriteTextfile(cfg.MetricsFile); err != nil {
			log.WithError(err).Warn("could not write metrics file")
		}
	}

	// Check fail-on threshold
	if cfg.FailOn != "none" && cfg.FailOn != "" {
		for _, sev := range review.Severities {
			if r.ViolationCount(sev) > 0 && review.MeetsThreshold(sev, cfg.FailOn) {
				return ExitFindings
			}
		}
	}
	return ExitSuccess
}

func init() {
	f := reviewCmd.Flags()
	f.StringArrayVar(&flagReports, "report", nil, "Analyzer report as source=format:path (repeatable, path - reads stdin)")
	f.StringVar(&flagDiff, "diff", "", "Review the files changed by a unified diff file (- for stdin)")
	f.StringVar(&flagRange, "range", "", "Review a revision range (e.g., origin/main..HEAD)")
	f.BoolVar(&flagMergeBase, "merge-base", true, "Use merge base for --range comparisons")
	f.BoolVar(&flagStaged, "staged", false, "Review staged changes (index vs HEAD)")
	f.StringVar(&flagFiles, "files", "", "Review an explicit comma-separated file list")
	f.StringVar(&flagPaths, "paths", "", "Include file path globs (comma-separated)")
	f.StringVar(&flagExclude, "exclude", "", "Exclude file path globs (comma-separated)")
	f.StringVar(&flagFormat, "format", "", "Output format ("+strings.Join(output.Formats, ", ")+")")
	f.StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	f.StringVar(&flagFailOn, "fail-on", "", "Fail on severity threshold (none, info, warning, error)")
	f.StringVar(&flagCommentFormat, "comment-format", "", "Comment rendering (plain, markdown)")
	f.StringVar(&flagStripPrefix, "strip-prefix", "", "Prefix removed from report paths (default: repository root)")
	f.StringVar(&flagRules, "rules", "", "Rules file with severity overrides and ignored rule ids")
	f.StringVar(&flagDefaultSev, "default-severity", "", "Severity for findings whose report gives none (ignore, info, warning, error)")
	f.StringVar(&flagMetricsFile, "metrics-file", "", "Write Prometheus metrics in textfile format to this path")
	f.IntVar(&flagMaxComments, "max-comments", 0, "Maximum inline comments in the github format")
	f.StringVar(&flagScore, "score", "", "Score strategy (noscore, always-pass, pass-if-empty, pass-if-no-errors)")
	f.BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")

	reviewCmd.MarkFlagsMutuallyExclusive("diff", "range", "staged", "files")
}
