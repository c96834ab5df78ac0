package aggregate

import (
	"runtime"
	"sync"
)

// WorkItem holds one gene table file queued for parsing.
type WorkItem struct {
	Seq  int
	Path string
}

// WorkResult holds the parsed table for a single gene.
type WorkResult struct {
	Seq   int
	Path  string
	Table *Table
	Err   error
}

// ParallelParse parses gene tables using a pool of workers.
// Results are sent to the returned channel in arrival order (not
// sequence order); use OrderedCollect to consume them in sequence
// order. If workers is 0, runtime.NumCPU() is used.
func ParallelParse(items <-chan WorkItem, workers int) <-chan WorkResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan WorkResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()
			for item := range items {
				t, err := LoadTable(item.Path)
				results <- WorkResult{
					Seq:   item.Seq,
					Path:  item.Path,
					Table: t,
					Err:   err,
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// OrderedCollect calls fn for each result in sequence-number order.
// Out-of-order results are buffered in a pending map and emitted as
// soon as the next expected sequence number arrives. Blocks until the
// results channel is closed.
func OrderedCollect(results <-chan WorkResult, fn func(WorkResult) error) error {
	pending := make(map[int]WorkResult)
	nextSeq := 0

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := fn(rr); err != nil {
				// Drain remaining results to unblock workers.
				for range results {
				}
				return err
			}
		}
	}

	return nil
}
