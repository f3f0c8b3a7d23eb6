package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"emx/internal/convert"
	"emx/internal/diag"
	"emx/internal/labels"
	"emx/internal/observ"
	"emx/internal/source"
	"emx/internal/transpile"
)

// Options управляет конверсией логических файлов.
type Options struct {
	MaxDiagnostics int
	Jobs           int           // 0 — по числу CPU
	Cache          *DiskCache    // nil — без кэша
	Language       string        // язык подписи в результатах
	Observer       PhaseObserver // nil — без событий
	Timings        bool          // добавить info-диагностику с таймингами
}

// RowResult — итог конверсии одной строки логического файла.
type RowResult struct {
	Name    string
	Kind    transpile.Kind
	Input   string
	Output  string
	Outcome convert.Outcome
	Label   string
	Line    int
}

// FileResult is the outcome of converting one logic file. FromCache
// reports that rows were served from the disk cache; the bag is then
// empty apart from load errors.
type FileResult struct {
	Path      string
	Rows      []RowResult
	Bag       *diag.Bag
	FromCache bool
	Timing    observ.Report
}

// ConvertFile converts every row of one logic file.
func ConvertFile(path string, opts Options) (*FileResult, error) {
	bag := diag.NewBag(opts.MaxDiagnostics)
	res := &FileResult{Path: path, Bag: bag}

	timer := observ.NewTimer()
	stopLoad := timer.Phase(observ.PhaseLoad)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	stopLoad("")

	key := HashContent(content)
	if opts.Cache != nil {
		var payload DiskPayload
		if hit, err := opts.Cache.Get(key, &payload); err == nil && hit {
			res.Rows = rowsFromPayload(&payload, opts.Language)
			res.FromCache = true
			res.Timing = timer.Report()
			return res, nil
		}
	}

	emitPhase(opts.Observer, PhaseEvent{Path: path, Name: observ.PhaseConvert, Status: PhaseStart})
	start := time.Now()

	stopConvert := timer.Phase(observ.PhaseConvert)
	lf := ParseLogicFile(path, content, bag)
	conv := convert.New(source.NewFileSet(), &diag.BagReporter{Bag: bag})

	res.Rows = make([]RowResult, 0, len(lf.Rows))
	for _, row := range lf.Rows {
		out := conv.Kind(row.Kind, row.Expression)
		rr := RowResult{
			Name:    row.Name,
			Kind:    row.Kind,
			Input:   row.Expression,
			Output:  out.Text,
			Outcome: out.Outcome,
			Line:    row.Line,
		}
		if label, ok := labels.Pick(row.Labels, opts.Language); ok {
			rr.Label = label
		}
		res.Rows = append(res.Rows, rr)
	}
	stopConvert(fmt.Sprintf("%d rows", len(res.Rows)))

	emitPhase(opts.Observer, PhaseEvent{
		Path:    path,
		Name:    observ.PhaseConvert,
		Status:  PhaseEnd,
		Elapsed: time.Since(start),
	})

	if opts.Cache != nil && !bag.HasErrors() {
		payload := payloadFromResult(res, lf, key)
		// Ошибка записи кэша не мешает результату.
		_ = opts.Cache.Put(key, payload)
	}

	res.Timing = timer.Report()
	if opts.Timings {
		appendTimingDiagnostic(bag, timingPayload{
			Kind:    "convert",
			Path:    path,
			TotalMS: res.Timing.TotalMS,
			Phases:  res.Timing.Phases,
		})
	}
	return res, nil
}

// ListLogicFiles возвращает отсортированный список всех *.emx файлов
// в директории.
func ListLogicFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".emx") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ConvertDir converts all *.emx logic files under dir in parallel.
// Results come back in sorted path order regardless of scheduling. A
// file that fails to load yields a FileResult with an I/O diagnostic,
// not an error: one bad file never aborts the batch.
func ConvertDir(ctx context.Context, dir string, opts Options) ([]*FileResult, error) {
	files, err := ListLogicFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Индексы уникальны для каждой горутины, мьютекс не нужен.
	results := make([]*FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func(i int, path string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				fileRes, err := ConvertFile(path, opts)
				if err != nil {
					bag := diag.NewBag(opts.MaxDiagnostics)
					addFileError(bag, diag.IOLoadFileError, "failed to load file: "+err.Error())
					fileRes = &FileResult{Path: path, Bag: bag}
				}
				results[i] = fileRes
				return nil
			}
		}(i, path))
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// rowsFromPayload восстанавливает строки из кэша; подпись выбирается
// заново под язык текущего запуска.
func rowsFromPayload(payload *DiskPayload, lang string) []RowResult {
	rows := make([]RowResult, len(payload.Rows))
	for i, cached := range payload.Rows {
		rows[i] = RowResult{
			Name:    cached.Name,
			Kind:    transpile.Kind(cached.Kind),
			Input:   cached.Input,
			Output:  cached.Output,
			Outcome: convert.Outcome(cached.Outcome),
			Line:    cached.Line,
		}
		if label, ok := labels.Pick(cached.Labels, lang); ok {
			rows[i].Label = label
		}
	}
	return rows
}

func payloadFromResult(res *FileResult, lf *LogicFile, key Digest) *DiskPayload {
	payload := &DiskPayload{
		Path:        res.Path,
		ContentHash: key,
		Rows:        make([]CachedRow, len(res.Rows)),
		SavedAt:     time.Now(),
	}
	// res.Rows строится из lf.Rows один к одному, индексы совпадают.
	for i, row := range res.Rows {
		payload.Rows[i] = CachedRow{
			Name:    row.Name,
			Kind:    uint8(row.Kind),
			Input:   row.Input,
			Output:  row.Output,
			Outcome: uint8(row.Outcome),
			Labels:  lf.Rows[i].Labels,
			Line:    row.Line,
		}
	}
	return payload
}
