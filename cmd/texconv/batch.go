package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// batchExtensions lists the files batch mode picks up.
var batchExtensions = map[string]bool{
	".tex":  true,
	".sgi":  true,
	".rgb":  true,
	".rgba": true,
	".bw":   true,
}

type batchResult struct {
	index  int
	input  string
	output string
	err    error
}

// collectInputs walks inputDir and returns the decodable files in walk order.
func collectInputs(inputDir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if batchExtensions[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}

// batchDecode decodes every texture under inputDir into a PNG with the same
// relative path under outputDir. Files are decoded concurrently but reported
// in walk order; a failing file is counted and skipped.
func batchDecode(inputDir, outputDir string, opts *decodeOptions) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	inputs, err := collectInputs(inputDir)
	if err != nil {
		return err
	}

	count := 0
	errors := 0
	for res := range runOrdered(inputs, runtime.NumCPU()*4, func(idx int, path string) batchResult {
		relPath, _ := filepath.Rel(inputDir, path)
		outPath := strings.TrimSuffix(filepath.Join(outputDir, relPath), filepath.Ext(relPath)) + ".png"
		return batchResult{index: idx, input: path, output: outPath, err: decodeFile(path, outPath, opts)}
	}) {
		if res.err != nil {
			fmt.Fprintf(os.Stderr, "convert %s: %v\n", res.input, res.err)
			errors++
			continue
		}
		count++
		if count%100 == 0 {
			fmt.Printf("Processed %d files...\n", count)
		}
	}

	fmt.Printf("\nCompleted: %d files converted, %d errors\n", count, errors)
	return nil
}

// runOrdered runs work on every input concurrently and delivers the results
// in input order. At most lookahead results are pending at once.
func runOrdered(inputs []string, lookahead int, work func(int, string) batchResult) <-chan batchResult {
	if lookahead < 1 {
		lookahead = 1
	}
	futureResults := make(chan chan batchResult, lookahead)

	go func() {
		defer close(futureResults)
		for i, path := range inputs {
			resultChan := make(chan batchResult, 1)
			futureResults <- resultChan

			go func(idx int, path string, ch chan batchResult) {
				ch <- work(idx, path)
			}(i, path, resultChan)
		}
	}()

	out := make(chan batchResult)
	go func() {
		defer close(out)
		for resultCh := range futureResults {
			out <- <-resultCh
		}
	}()
	return out
}
