package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/meshgen/mimesis"
	"github.com/meshgen/mimesis/utils"
)

const HelpBanner = `
┌┬┐┬┌┬┐┌─┐┌─┐┬┌─┐
│││││││├┤ └─┐│└─┐
┴ ┴┴┴ ┴└─┘└─┘┴└─┘

Image to 3D mesh extrusion pipeline.
    Version: %s

`

// maxWorkers bounds the worker count, mirroring caire's concurrency
// knob: a value above it (or below 1) falls back to runtime.NumCPU().
const maxWorkers = 20

// result holds one file's processing outcome.
type result struct {
	path   string
	result mimesis.ProcessingResult
	err    error
}

// Version is set at build time.
var Version string

var (
	source       = flag.String("in", "", "Source image file or directory")
	outputDir    = flag.String("out", "output", "Output directory")
	maskFlag     = flag.String("mask", "", "Binary mask file path")
	configFlag   = flag.String("config", "", "TOML configuration file path")
	threshold    = flag.Int("threshold", -1, "Mask channel threshold (0-255)")
	maskMethod   = flag.String("mask-method", "", "Mask derivation method: luminance, alpha, red, green, blue")
	blurRadius   = flag.Float64("blur", -1, "Gaussian blur radius applied before thresholding")
	simplifyTol  = flag.Float64("simplify", -1, "Polygon simplification tolerance in pixels")
	smoothIter   = flag.Int("smooth", -1, "Chaikin smoothing iteration count")
	extrudeDepth = flag.Float64("depth", -1, "Extrusion depth")
	minDim       = flag.Int("min-dim", -1, "Minimum polygon bounding box dimension to keep")
	sideTexture  = flag.String("side-texture", "", "Sidewall texture file path")
	backTexture  = flag.String("back-texture", "", "Back face texture file path")
	skipDebug    = flag.Bool("skip-intermediates", false, "Skip writing debug mask/polygon/2D-mesh images")
	workers      = flag.Int("workers", runtime.NumCPU(), "Number of files to process concurrently")
	continueFlag = flag.Bool("continue-on-error", false, "Keep processing remaining files after one fails")
	verbose      = flag.Bool("verbose", false, "Print per-file progress")
	watch        = flag.Bool("watch", false, "Watch the source directory and reprocess on change")

	spinner *utils.Spinner
)

func main() {
	log.SetFlags(0)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, fmt.Sprintf(HelpBanner, Version))
		flag.PrintDefaults()
	}
	flag.Parse()

	if *source == "" {
		flag.Usage()
		log.Fatal(utils.DecorateText("\nPlease provide a source image or directory with -in", utils.ErrorMessage))
	}

	cfg := loadConfig()
	applyFlagOverrides(&cfg)

	defaultMsg := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ MIMESIS", utils.StatusMessage),
		utils.DecorateText("⇢ extruding mesh (be patient, it may take a while)...", utils.DefaultMessage),
	)
	spinner = utils.NewSpinner(defaultMsg, time.Millisecond*80, true)

	execute(cfg)

	if *watch {
		runWatch(cfg)
	}
}

// loadConfig reads the TOML config file named by -config, falling back
// to mimesis.DefaultConfig when none is given.
func loadConfig() mimesis.Config {
	if *configFlag == "" {
		return mimesis.DefaultConfig()
	}
	cfg, err := mimesis.LoadConfig(*configFlag)
	if err != nil {
		log.Fatalf(utils.DecorateText(fmt.Sprintf("failed to load config: %v", err), utils.ErrorMessage))
	}
	return cfg
}

// applyFlagOverrides layers explicitly-set command line flags on top
// of the loaded config, flags always winning. The -out and -workers
// defaults apply only when no config file is loaded.
func applyFlagOverrides(cfg *mimesis.Config) {
	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
	noConfig := *configFlag == ""

	cfg.Input.Input = *source
	if *maskFlag != "" {
		cfg.Input.Mask = *maskFlag
	}
	if explicit["out"] || noConfig {
		cfg.Output.OutputFolder = *outputDir
	}

	if *threshold >= 0 {
		cfg.Processing.Threshold = uint8(*threshold)
	}
	if *maskMethod != "" {
		method, err := mimesis.ParseMaskMethod(*maskMethod)
		if err != nil {
			log.Fatalf(utils.DecorateText(err.Error(), utils.ErrorMessage))
		}
		cfg.Processing.MaskMethod = method
	}
	if *blurRadius >= 0 {
		cfg.Processing.BlurRadius = *blurRadius
	}
	if *simplifyTol >= 0 {
		cfg.Processing.SimplifyTolerance = *simplifyTol
	}
	if *smoothIter >= 0 {
		cfg.Processing.SmoothIterations = *smoothIter
	}
	if *extrudeDepth >= 0 {
		cfg.Processing.ExtrudeHeight = *extrudeDepth
	}
	if *minDim >= 0 {
		cfg.Processing.MinPolygonDimension = *minDim
	}
	if *sideTexture != "" {
		cfg.Output.SideTexture = *sideTexture
	}
	if *backTexture != "" {
		cfg.Output.BackTexture = *backTexture
	}
	if *skipDebug {
		cfg.Output.SkipIntermediates = true
	}
	if *workers > 0 && (explicit["workers"] || noConfig) {
		cfg.Batch.Workers = *workers
	}
	if *continueFlag {
		cfg.Batch.ContinueOnError = true
	}
	if *verbose {
		cfg.Processing.Verbose = true
	}
}

// execute runs the pipeline over cfg.Input.Input, which may be a
// single file, a directory, or a remote image URL.
func execute(cfg mimesis.Config) {
	if utils.IsValidUrl(cfg.Input.Input) {
		tmp, err := utils.DownloadImage(cfg.Input.Input)
		if err != nil {
			log.Fatalf(utils.DecorateText(fmt.Sprintf("failed to download source: %v", err), utils.ErrorMessage))
		}
		tmp.Close()
		defer os.Remove(tmp.Name())
		cfg.Input.Input = tmp.Name()
	}

	fi, err := os.Stat(cfg.Input.Input)
	if err != nil {
		log.Fatalf(utils.DecorateText(fmt.Sprintf("failed to stat source: %v", err), utils.ErrorMessage))
	}

	now := time.Now()

	if fi.IsDir() {
		runBatch(cfg)
	} else {
		proc := &mimesis.Processor{Config: cfg}
		spinner.Start()
		n, err := proc.Process(cfg.Input.Input, cfg.Input.Mask)
		spinner.Stop()
		printStatus(cfg.Input.Input, n, err)
	}

	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
		utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
}

// runBatch walks cfg.Input.Input recursively and processes every
// matching file concurrently across cfg.Batch.Workers goroutines.
func runBatch(cfg mimesis.Config) {
	n := cfg.Batch.Workers
	if n <= 0 || n > maxWorkers {
		n = runtime.NumCPU()
	}

	ch := make(chan result)
	done := make(chan interface{})
	defer close(done)

	paths, errc := walkDir(done, cfg.Input.Input, cfg.Batch.IncludePatterns, cfg.Batch.ExcludePatterns)

	stats := mimesis.NewProcessingStats(0)

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			consumer(done, paths, cfg, ch)
		}()
	}

	go func() {
		defer close(ch)
		wg.Wait()
	}()

	for res := range ch {
		stats.TotalFiles++
		if res.err != nil {
			stats.AddFailure()
			if !cfg.Batch.ContinueOnError {
				printStatus(res.path, 0, res.err)
				os.Exit(1)
			}
		} else {
			stats.AddResult(res.result)
		}
		printStatus(res.path, res.result.PolygonCount, res.err)
	}

	if err := <-errc; err != nil {
		fmt.Fprintln(os.Stderr, utils.DecorateText(err.Error(), utils.ErrorMessage))
	}

	stats.PrintSummary()
}

// walkDir walks src recursively, sending each matching regular file's
// path on the returned channel.
func walkDir(
	done <-chan interface{},
	src string,
	include, exclude []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		defer close(pathChan)

		errChan <- filepath.Walk(src, func(path string, f os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !f.Mode().IsRegular() {
				return nil
			}
			if !matchesAny(f.Name(), include) || matchesAny(f.Name(), exclude) {
				return nil
			}

			select {
			case <-done:
				return errors.New("directory walk cancelled")
			case pathChan <- path:
			}
			return nil
		})
	}()
	return pathChan, errChan
}

// matchesAny reports whether name matches any of the given glob
// patterns (empty pattern list never matches).
func matchesAny(name string, patterns []string) bool {
	for _, pat := range patterns {
		if ok, _ := filepath.Match(pat, name); ok {
			return true
		}
	}
	return false
}

// consumer reads paths from the channel and runs the pipeline against
// each, reporting results on res.
func consumer(
	done <-chan interface{},
	paths <-chan string,
	cfg mimesis.Config,
	res chan<- result,
) {
	proc := &mimesis.Processor{Config: cfg}
	for path := range paths {
		r, err := proc.ProcessWithStats(path, "")
		select {
		case <-done:
			return
		case res <- result{path: path, result: r, err: err}:
		}
	}
}

// runWatch keeps the process alive, reprocessing cfg.Input.Input
// whenever fsnotify reports a write under the source directory.
func runWatch(cfg mimesis.Config) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatalf(utils.DecorateText(fmt.Sprintf("failed to start watcher: %v", err), utils.ErrorMessage))
	}
	defer watcher.Close()

	if err := watcher.Add(cfg.Input.Input); err != nil {
		log.Fatalf(utils.DecorateText(fmt.Sprintf("failed to watch %s: %v", cfg.Input.Input, err), utils.ErrorMessage))
	}

	fmt.Fprintf(os.Stderr, "\nWatching %s for changes...\n", cfg.Input.Input)
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			proc := &mimesis.Processor{Config: cfg}
			n, err := proc.Process(ev.Name, cfg.Input.Mask)
			printStatus(ev.Name, n, err)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			fmt.Fprintln(os.Stderr, utils.DecorateText(err.Error(), utils.ErrorMessage))
		}
	}
}

// printStatus displays the per-file processing outcome.
func printStatus(fname string, polygons int, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n",
			utils.DecorateText(fmt.Sprintf("\nError processing %s:", fname), utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s (%d polygons)\n",
		utils.DecorateText("✔", utils.SuccessMessage),
		filepath.Base(fname),
		polygons,
	)
}
