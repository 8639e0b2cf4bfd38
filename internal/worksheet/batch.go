package worksheet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/san-kum/labcalc/internal/logger"
)

// RunAll evaluates independent sheets concurrently, one goroutine per sheet.
// Evaluations come back in input order. A sheet that fails leaves a nil entry
// and contributes its error, tagged with its position, to the joined error.
func RunAll(ctx context.Context, sheets []*Sheet, log *logger.Logger) ([]*Evaluation, error) {
	results := make([]*Evaluation, len(sheets))
	errs := make([]error, len(sheets))

	var wg sync.WaitGroup
	for i, sheet := range sheets {
		wg.Add(1)
		go func(idx int, s *Sheet) {
			defer wg.Done()
			ev, err := Run(ctx, s, log)
			if err != nil {
				errs[idx] = fmt.Errorf("sheet %d (%s): %w", idx+1, sheetName(s), err)
				return
			}
			results[idx] = ev
		}(i, sheet)
	}

	wg.Wait()
	return results, errors.Join(errs...)
}

func sheetName(s *Sheet) string {
	if s == nil {
		return "<nil>"
	}
	return s.Name
}
