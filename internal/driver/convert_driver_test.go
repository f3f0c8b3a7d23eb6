package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"emx/internal/convert"
)

func writeLogicFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	path := writeLogicFile(t, dir, "survey.emx", sampleLogicFile)

	res, err := ConvertFile(path, Options{Language: "en"})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(res.Rows))
	}

	if got := res.Rows[0].Output; got != "age > 18" {
		t.Fatalf("relevance output = %q", got)
	}
	if got := res.Rows[1].Output; got != `/^\d{2}$/` {
		t.Fatalf("constraint output = %q", got)
	}
	if got := res.Rows[2].Output; got != "price * quantity" {
		t.Fatalf("calculation output = %q", got)
	}
	if res.Rows[0].Label != "Age gate" {
		t.Fatalf("label = %q", res.Rows[0].Label)
	}
	if res.FromCache {
		t.Fatal("first conversion must not come from cache")
	}
}

func TestConvertFileGermanLabels(t *testing.T) {
	dir := t.TempDir()
	path := writeLogicFile(t, dir, "survey.emx", sampleLogicFile)

	res, err := ConvertFile(path, Options{Language: "de"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Rows[0].Label != "Altersgrenze" {
		t.Fatalf("label = %q", res.Rows[0].Label)
	}
}

func TestConvertFileFallbackRowStillPresent(t *testing.T) {
	dir := t.TempDir()
	content := "kind\tname\texpression\n" +
		"relevance\tbroken\t${age} >\n"
	path := writeLogicFile(t, dir, "broken.emx", content)

	res, err := ConvertFile(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(res.Rows))
	}
	row := res.Rows[0]
	if row.Output != "1" || row.Outcome != convert.FellBack {
		t.Fatalf("fallback row = %+v", row)
	}
	if !res.Bag.HasErrors() {
		t.Fatal("expected a parse diagnostic in the bag")
	}
}

func TestConvertFileDiskCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := writeLogicFile(t, dir, "survey.emx", sampleLogicFile)

	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Cache: cache, Language: "en"}

	first, err := ConvertFile(path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.FromCache {
		t.Fatal("cold cache must miss")
	}

	second, err := ConvertFile(path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.FromCache {
		t.Fatal("warm cache must hit")
	}
	if len(second.Rows) != len(first.Rows) {
		t.Fatalf("cached rows %d, want %d", len(second.Rows), len(first.Rows))
	}
	for i := range first.Rows {
		if first.Rows[i] != second.Rows[i] {
			t.Fatalf("row %d differs: %+v vs %+v", i, first.Rows[i], second.Rows[i])
		}
	}
}

func TestConvertFileCacheHitRespectsLanguage(t *testing.T) {
	dir := t.TempDir()
	path := writeLogicFile(t, dir, "survey.emx", sampleLogicFile)

	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ConvertFile(path, Options{Cache: cache, Language: "en"}); err != nil {
		t.Fatal(err)
	}

	// Язык — опция запуска, не часть ключа: попадание в кэш обязано
	// выбрать подпись заново.
	res, err := ConvertFile(path, Options{Cache: cache, Language: "de"})
	if err != nil {
		t.Fatal(err)
	}
	if !res.FromCache {
		t.Fatal("warm cache must hit")
	}
	if res.Rows[0].Label != "Altersgrenze" {
		t.Fatalf("cached label = %q, want the German column", res.Rows[0].Label)
	}
}

func TestConvertFileCacheInvalidatedByContent(t *testing.T) {
	dir := t.TempDir()
	path := writeLogicFile(t, dir, "survey.emx", sampleLogicFile)

	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Cache: cache}

	if _, err := ConvertFile(path, opts); err != nil {
		t.Fatal(err)
	}

	writeLogicFile(t, dir, "survey.emx",
		"kind\tname\texpression\nrelevance\tq9\t${x} > 1\n")
	res, err := ConvertFile(path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.FromCache {
		t.Fatal("changed content must miss the cache")
	}
	if len(res.Rows) != 1 || res.Rows[0].Name != "q9" {
		t.Fatalf("rows = %+v", res.Rows)
	}
}

func TestConvertDir(t *testing.T) {
	dir := t.TempDir()
	writeLogicFile(t, dir, "b.emx",
		"kind\tname\texpression\nrelevance\tqb\t${b} > 1\n")
	writeLogicFile(t, dir, "a.emx",
		"kind\tname\texpression\nrelevance\tqa\t${a} > 1\n")
	writeLogicFile(t, dir, "notes.txt", "not a logic file")

	results, err := ConvertDir(context.Background(), dir, Options{Jobs: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	// Deterministic path order regardless of goroutine scheduling.
	if filepath.Base(results[0].Path) != "a.emx" || filepath.Base(results[1].Path) != "b.emx" {
		t.Fatalf("unexpected order: %s, %s", results[0].Path, results[1].Path)
	}
	if results[0].Rows[0].Output != "a > 1" || results[1].Rows[0].Output != "b > 1" {
		t.Fatalf("outputs: %+v %+v", results[0].Rows, results[1].Rows)
	}
}

func TestConvertDirEmpty(t *testing.T) {
	results, err := ConvertDir(context.Background(), t.TempDir(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if results != nil {
		t.Fatalf("got %v, want nil", results)
	}
}

func TestConvertDirObserverSeesEveryFile(t *testing.T) {
	dir := t.TempDir()
	writeLogicFile(t, dir, "a.emx",
		"kind\tname\texpression\nrelevance\tqa\t${a} > 1\n")
	writeLogicFile(t, dir, "b.emx",
		"kind\tname\texpression\nrelevance\tqb\t${b} > 1\n")

	var mu sync.Mutex
	seen := map[string]int{}
	observer := func(ev PhaseEvent) {
		mu.Lock()
		defer mu.Unlock()
		if ev.Status == PhaseEnd {
			seen[filepath.Base(ev.Path)]++
		}
	}

	if _, err := ConvertDir(context.Background(), dir, Options{Observer: observer}); err != nil {
		t.Fatal(err)
	}
	if seen["a.emx"] != 1 || seen["b.emx"] != 1 {
		t.Fatalf("observer saw %v", seen)
	}
}

func TestTokenizeExpression(t *testing.T) {
	res := TokenizeExpression("${age} > 18", 0)
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	// age, >, 18, EOF
	if len(res.Tokens) != 4 {
		t.Fatalf("got %d tokens: %v", len(res.Tokens), res.Tokens)
	}
}

func TestParseExpressionDriver(t *testing.T) {
	res := ParseExpression("${age} > 18", 0)
	if res.Expr == nil {
		t.Fatalf("expected an AST, diagnostics: %v", res.Bag.Items())
	}

	bad := ParseExpression("${age} >", 0)
	if bad.Expr != nil {
		t.Fatal("expected nil AST for malformed input")
	}
	if !bad.Bag.HasErrors() {
		t.Fatal("expected parse diagnostics")
	}
}

func TestConvertFileTimings(t *testing.T) {
	dir := t.TempDir()
	path := writeLogicFile(t, dir, "survey.emx", sampleLogicFile)

	res, err := ConvertFile(path, Options{Timings: true})
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, d := range res.Bag.Items() {
		if d.Code.ID() == "EMX5100" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a timings diagnostic")
	}
	if res.Timing.TotalMS < 0 {
		t.Fatalf("timing = %+v", res.Timing)
	}
}
