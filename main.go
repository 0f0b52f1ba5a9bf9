package main

import (
	"flag"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"

	"github.com/Yazed0071/fntTool/ffnt"
)

func main() {
	jobs := flag.Int("j", 1, "number of files to convert concurrently")
	flag.BoolVar(&ffnt.Debug, "d", false, "enable debug output")
	flag.Parse()

	if ffnt.Debug {
		log.SetLevel(log.DebugLevel)
	}

	if flag.NArg() == 0 {
		log.Error("no input files. usage: fntTool [-d] [-j N] <file|dir|glob> ...")
		os.Exit(2)
	}

	files := expandArgs(flag.Args())
	failed := convertAll(files, *jobs)

	if failed > 0 {
		log.Errorf("%d of %d files failed", failed, len(files))
		os.Exit(1)
	}
}

// expandArgs turns each argument into concrete file paths. Directories
// expand to the files they directly contain; arguments that do not exist are
// tried as glob patterns. Paths that still cannot be resolved stay in the
// list so the conversion reports the read error for them.
func expandArgs(args []string) []string {
	files := make([]string, 0, len(args))

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err == nil && info.IsDir() {
			entries, err := os.ReadDir(arg)
			if err != nil {
				files = append(files, arg)
				continue
			}
			for _, entry := range entries {
				if !entry.IsDir() {
					files = append(files, filepath.Join(arg, entry.Name()))
				}
			}
			continue
		}

		if err != nil {
			matches, globErr := filepath.Glob(arg)
			if globErr == nil && len(matches) > 0 {
				files = append(files, matches...)
				continue
			}
		}

		files = append(files, arg)
	}

	return files
}

// convertAll runs every conversion, at most jobs at a time. Files are
// independent units of work and share no state; a failure is logged and
// counted but never stops the rest of the run.
func convertAll(files []string, jobs int) int {
	if jobs < 1 {
		jobs = 1
	}

	var failed atomic.Int32
	var wg sync.WaitGroup
	sem := make(chan struct{}, jobs)

	for _, path := range files {
		wg.Add(1)
		sem <- struct{}{}
		go func(path string) {
			defer wg.Done()
			defer func() { <-sem }()

			outPath, skipped, err := ConvertFile(path)
			switch {
			case skipped:
				log.Infof("skipping %s: not a %s or %s file", path, binaryExt, xmlExt)
			case err != nil:
				log.Errorf("failed to convert %s: %v", path, err)
				failed.Add(1)
			default:
				log.Infof("converted %s -> %s", path, outPath)
			}
		}(path)
	}

	wg.Wait()
	return int(failed.Load())
}
