package geoingest

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/beetlebugorg/geoingest/internal/ingest"
	"github.com/beetlebugorg/geoingest/internal/logger"
	"github.com/beetlebugorg/geoingest/internal/metrics"
)

// fileRecords is every record read from one source file
type fileRecords struct {
	path    string
	records []ingest.Record
}

// readFile drains one source file.
func readFile(path string, opts ingest.ReaderOptions) ([]ingest.Record, error) {
	format, err := ingest.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	r, err := ingest.NewReader(path, format, opts)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	recs, err := r.ReadAll()
	metrics.RecordsRead.WithLabelValues(format.String()).Add(float64(r.Records()))
	metrics.RecordsSkipped.WithLabelValues(format.String()).Add(float64(r.Skipped()))
	if err != nil {
		return nil, err
	}
	logger.L().Debug("source_read", "path", path, "format", format.String(),
		"records", r.Records(), "skipped", r.Skipped())
	return recs, nil
}

// readFiles reads every path with a worker pool. Results keep the order of
// paths; files that failed are absent from the results.
func readFiles(paths []string, ropts ingest.ReaderOptions, opts LoadOptions) ([]fileRecords, []error) {
	if len(paths) == 0 {
		return nil, nil
	}
	if !opts.Parallel {
		return readFilesSerial(paths, ropts, opts)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	type readResult struct {
		index   int
		records []ingest.Record
		err     error
	}

	jobs := make(chan int, len(paths))
	results := make(chan readResult, len(paths))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				recs, err := readFile(paths[index], ropts)
				results <- readResult{index: index, records: recs, err: err}
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	byIndex := make(map[int][]ingest.Record, len(paths))
	var errs []error
	var fatal error
	done := 0
	for result := range results {
		done++
		if opts.Progress != nil {
			opts.Progress(done, len(paths))
		}
		if result.err != nil {
			err := fmt.Errorf("%s: %w", paths[result.index], result.err)
			if opts.ErrorLog != nil {
				fmt.Fprintf(opts.ErrorLog, "Error reading source: %v\n", err)
			}
			if !opts.SkipErrors && fatal == nil {
				fatal = err
			}
			errs = append(errs, err)
			continue
		}
		byIndex[result.index] = result.records
	}
	// workers are drained before returning so no goroutine outlives the call
	if fatal != nil {
		return nil, []error{fatal}
	}

	out := make([]fileRecords, 0, len(byIndex))
	for i, p := range paths {
		if recs, ok := byIndex[i]; ok {
			out = append(out, fileRecords{path: p, records: recs})
		}
	}
	return out, errs
}

// readFilesSerial reads one file at a time when Parallel is false.
func readFilesSerial(paths []string, ropts ingest.ReaderOptions, opts LoadOptions) ([]fileRecords, []error) {
	out := make([]fileRecords, 0, len(paths))
	var errs []error
	for i, p := range paths {
		recs, err := readFile(p, ropts)
		if opts.Progress != nil {
			opts.Progress(i+1, len(paths))
		}
		if err != nil {
			err = fmt.Errorf("%s: %w", p, err)
			if opts.ErrorLog != nil {
				fmt.Fprintf(opts.ErrorLog, "Error reading source: %v\n", err)
			}
			if !opts.SkipErrors {
				return nil, []error{err}
			}
			errs = append(errs, err)
			continue
		}
		out = append(out, fileRecords{path: p, records: recs})
	}
	return out, errs
}
