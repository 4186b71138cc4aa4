package ultrank

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"ultrank/pkg/ultrank/models"
	"ultrank/pkg/ultrank/output"
	"ultrank/pkg/ultrank/parser"
)

// Runner processes every survey workbook in the input directory: aggregate
// each sheet, rank the survivors, and write the per-file artifacts. Failures
// of individual files and sheets are logged and skipped; they never abort
// the batch.
type Runner struct {
	// InputDir is scanned for .xlsx files.
	InputDir string
	// OutputDir receives the artifacts. Created on demand.
	OutputDir string
	// Opts configures profile aggregation.
	Opts Options
	// Mode tags the run and labels the plot y axis.
	Mode Mode
	// Logger receives processing and skip diagnostics. Defaults to
	// slog.Default.
	Logger *slog.Logger
	// Out receives the ranking listing. Defaults to os.Stdout.
	Out io.Writer
}

// Run executes the batch. With no input files it prints a notice and returns
// nil; the only returned errors are an unreadable input directory and a
// failure to create the output directory.
func (r *Runner) Run() error {
	log := r.logger()
	log.Info("running representativeness ranking",
		slog.String("mode", r.Mode.Tag),
		slog.String("input_dir", r.InputDir))

	files, err := DiscoverWorkbooks(r.InputDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(r.out(), "No .xlsx files found in input folder. Exiting.")
		return nil
	}

	if err := os.MkdirAll(r.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory %q: %w", r.OutputDir, err)
	}

	for _, path := range files {
		r.processFile(path)
	}
	return nil
}

// DiscoverWorkbooks lists the .xlsx files in dir sorted by name, excluding
// ~$ spreadsheet lock files.
func DiscoverWorkbooks(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory %q: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".xlsx") || strings.HasPrefix(name, "~$") {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}

func (r *Runner) processFile(path string) {
	log := r.logger().With(slog.String("file", filepath.Base(path)))
	log.Info("processing file")

	f, err := excelize.OpenFile(path)
	if err != nil {
		log.Error("could not open workbook", slog.Any("error", err))
		return
	}
	defer f.Close()

	wb, readErrs := parser.ReadWorkbook(f)
	for _, err := range readErrs {
		log.Warn("skipping unreadable sheet", slog.Any("error", err))
	}

	var profiles []*models.SheetProfile
	for _, sheet := range wb.Sheets {
		profile, err := Aggregate(sheet, r.Opts)
		if err != nil {
			log.Warn("skipping sheet",
				slog.String("sheet", sheet.Name),
				slog.Any("reason", err))
			continue
		}
		for _, name := range profile.Dropped {
			log.Warn("dropped response line",
				slog.String("sheet", sheet.Name),
				slog.String("line", name))
		}
		profiles = append(profiles, profile)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if len(profiles) == 0 {
		log.Info("no valid sheets processed, nothing to write")
		return
	}

	r.writeArtifacts(base, profiles, log)
	r.printRanking(base, profiles)
}

// writeArtifacts writes the three per-file artifacts, their names tagged
// with the mode so runs in different modes over the same input do not
// overwrite each other. Write failures are warnings; the remaining artifacts
// and files still get written.
func (r *Runner) writeArtifacts(base string, profiles []*models.SheetProfile, log *slog.Logger) {
	if r.Mode.Tag != "" {
		base = base + "_" + r.Mode.Tag
	}

	tablePath := filepath.Join(r.OutputDir, base+"_interpolated.xlsx")
	if err := output.WriteInterpolated(tablePath, profiles); err != nil {
		log.Warn("could not write interpolated workbook", slog.Any("error", err))
	} else {
		log.Info("wrote interpolated data", slog.String("path", tablePath))
	}

	scoresPath := filepath.Join(r.OutputDir, base+"_representativeness_scores.csv")
	if err := output.WriteScores(scoresPath, profiles); err != nil {
		log.Warn("could not write scores CSV", slog.Any("error", err))
	} else {
		log.Info("wrote representativeness scores", slog.String("path", scoresPath))
	}

	plotPath := filepath.Join(r.OutputDir, base+"_representative_profiles.png")
	title := "Representative profiles: " + base
	if err := output.SavePlot(plotPath, title, r.Mode.YAxisLabel, profiles); err != nil {
		log.Warn("could not save plot", slog.Any("error", err))
	} else {
		log.Info("wrote plot", slog.String("path", plotPath))
	}
}

func (r *Runner) printRanking(base string, profiles []*models.SheetProfile) {
	ranked := Rank(profiles)
	w := r.out()

	fmt.Fprintf(w, "\nRanking by representativeness score for %s:\n", base)
	fmt.Fprintln(w, output.RenderRanking(ranked))

	best := Best(ranked)
	fmt.Fprintf(w, "Best sheet: %s with score %.2f\n", best.Sheet, best.Metrics.Score)
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

func (r *Runner) out() io.Writer {
	if r.Out != nil {
		return r.Out
	}
	return os.Stdout
}
