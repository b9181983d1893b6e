package transformers

import (
	"errors"
	"math"
	"testing"

	"github.com/Septimmius/ml-templates/table"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/google/go-cmp/cmp"
)

func sampleTable() dataframe.DataFrame {
	return dataframe.New(
		series.New([]string{"1", "NaN", "3", "3"}, series.Int, "A"),
		series.New([]string{"x", "y", "NaN", "y"}, series.String, "B"),
		series.New([]float64{0.5, 2.5, math.NaN(), 10}, series.Float, "C"),
	)
}

func TestDeleteFeature(t *testing.T) {
	df := sampleTable()
	out, err := NewDeleteFeature([]string{"A", "C"}).Transform(df)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"B"}, out.Names()); diff != "" {
		t.Fatalf("unexpected columns (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"A", "B", "C"}, df.Names()); diff != "" {
		t.Fatalf("input table was modified (-want +got):\n%s", diff)
	}

	_, err = NewDeleteFeature([]string{"nope"}).Transform(df)
	if !errors.Is(err, table.ErrColumnNotFound) {
		t.Fatalf("expected column not found, got %v", err)
	}

	out, err = NewDeleteFeature(nil).Transform(df)
	if err != nil {
		t.Fatal(err)
	}
	if out.Ncol() != 3 {
		t.Fatal("empty delete list should keep every column")
	}
}

func TestImputerMean(t *testing.T) {
	df := dataframe.New(series.New([]string{"1", "NaN", "3"}, series.Int, "A"))
	im, err := NewImputer([]string{"A"}, StrategyMean, nil)
	if err != nil {
		t.Fatal(err)
	}
	out, err := im.Transform(df)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{1, 2, 3}, out.Col("A").Float()); diff != "" {
		t.Fatalf("mean imputation (-want +got):\n%s", diff)
	}
	if !df.Col("A").Elem(1).IsNA() {
		t.Fatal("input table was modified")
	}
}

func TestImputerMedian(t *testing.T) {
	df := dataframe.New(series.New([]float64{1, math.NaN(), 2, 10, 4}, series.Float, "C"))
	im, err := NewImputer([]string{"C"}, StrategyMedian, nil)
	if err != nil {
		t.Fatal(err)
	}
	out, err := im.Transform(df)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Col("C").Elem(1).Float(); got != 3 {
		t.Fatalf("expected median 3, got %v", got)
	}
}

func TestImputerMostFrequent(t *testing.T) {
	df := sampleTable()
	im, err := NewImputer([]string{"A", "B"}, StrategyMostFrequent, nil)
	if err != nil {
		t.Fatal(err)
	}
	out, err := im.Transform(df)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Col("A").Elem(1).Float(); got != 3 {
		t.Fatalf("expected mode 3 for A, got %v", got)
	}
	if got := out.Col("B").Elem(2).String(); got != "y" {
		t.Fatalf("expected mode y for B, got %s", got)
	}
	if out.Col("B").Type() != series.String {
		t.Fatal("text column changed type")
	}
}

func TestModeTiesPickSmallest(t *testing.T) {
	if got := modeFloat([]float64{5, 2, 5, 2, 9}); got != 2 {
		t.Fatalf("expected 2, got %v", got)
	}
	if got, _ := modeString([]string{"b", "a", "b", "a"}); got != "a" {
		t.Fatalf("expected a, got %s", got)
	}
}

func TestImputerConstant(t *testing.T) {
	df := sampleTable()
	im, err := NewImputer([]string{"A", "C"}, StrategyConstant, -1)
	if err != nil {
		t.Fatal(err)
	}
	out, err := im.Transform(df)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{1, -1, 3, 3}, out.Col("A").Float()); diff != "" {
		t.Fatalf("A (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0.5, 2.5, -1, 10}, out.Col("C").Float()); diff != "" {
		t.Fatalf("C (-want +got):\n%s", diff)
	}
	// untargeted column keeps its missing cell
	if !out.Col("B").Elem(2).IsNA() {
		t.Fatal("untargeted column was imputed")
	}

	im, err = NewImputer([]string{"B"}, StrategyConstant, "missing")
	if err != nil {
		t.Fatal(err)
	}
	out, err = im.Transform(df)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"x", "y", "missing", "y"}, out.Col("B").Records()); diff != "" {
		t.Fatalf("B (-want +got):\n%s", diff)
	}
}

func TestImputerErrors(t *testing.T) {
	_, err := NewImputer([]string{"A"}, "max", nil)
	if !errors.Is(err, ErrInvalidStrategy) {
		t.Fatalf("expected invalid strategy, got %v", err)
	}
	_, err = NewImputer([]string{"A"}, StrategyConstant, nil)
	if !errors.Is(err, ErrMissingFillValue) {
		t.Fatalf("expected missing fill value, got %v", err)
	}
	_, err = NewImputer(nil, StrategyMean, nil)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected invalid config, got %v", err)
	}

	im, err := NewImputer([]string{"B"}, StrategyMean, nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = im.Transform(sampleTable())
	if !errors.Is(err, ErrNonNumericColumn) {
		t.Fatalf("expected non numeric column, got %v", err)
	}

	im, err = NewImputer([]string{"A"}, StrategyConstant, "abc")
	if err != nil {
		t.Fatal(err)
	}
	_, err = im.Transform(sampleTable())
	if !errors.Is(err, ErrInvalidFillValue) {
		t.Fatalf("expected invalid fill value, got %v", err)
	}
}

type weight float32

func TestImputerConstantNumericKinds(t *testing.T) {
	for _, fill := range []any{uint64(7), uint(7), int8(7), int16(7), weight(7), "7"} {
		im, err := NewImputer([]string{"A"}, StrategyConstant, fill)
		if err != nil {
			t.Fatal(err)
		}
		out, err := im.Transform(sampleTable())
		if err != nil {
			t.Fatalf("fill %v (%T): %s", fill, fill, err)
		}
		if diff := cmp.Diff([]float64{1, 7, 3, 3}, out.Col("A").Float()); diff != "" {
			t.Fatalf("fill %T A (-want +got):\n%s", fill, diff)
		}
	}
}

func TestBinarize(t *testing.T) {
	df := sampleTable()
	b, err := NewBinarize(2, "A", "C")
	if err != nil {
		t.Fatal(err)
	}
	out, err := b.Transform(df)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"0", "0", "1", "1"}, out.Col("A").Records()); diff != "" {
		t.Fatalf("A (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"0", "1", "0", "1"}, out.Col("C").Records()); diff != "" {
		t.Fatalf("C (-want +got):\n%s", diff)
	}
	if out.Col("C").Type() != series.Int {
		t.Fatal("binarized column should be Int")
	}
	if df.Col("C").Type() != series.Float {
		t.Fatal("input table was modified")
	}

	b, err = NewBinarize(0, "B")
	if err != nil {
		t.Fatal(err)
	}
	if _, err = b.Transform(df); !errors.Is(err, ErrNonNumericColumn) {
		t.Fatalf("expected non numeric column, got %v", err)
	}
}

func TestKBinDiscretizeQuantile(t *testing.T) {
	df := dataframe.New(series.New([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, math.NaN()}, series.Float, "age"))
	labels := []string{"young", "mid", "old"}
	k, err := NewKBinDiscretize("age", 3, labels, "")
	if err != nil {
		t.Fatal(err)
	}
	out, err := k.Transform(df)
	if err != nil {
		t.Fatal(err)
	}
	col := out.Col("age")
	want := []string{"young", "young", "young", "mid", "mid", "mid", "old", "old", "old"}
	for i, w := range want {
		if got := col.Elem(i).String(); got != w {
			t.Fatalf("row %d: expected %s, got %s", i, w, got)
		}
	}
	if !col.Elem(9).IsNA() {
		t.Fatal("missing value should stay missing")
	}
}

func TestKBinDiscretizeUniform(t *testing.T) {
	df := dataframe.New(series.New([]float64{0, 1, 4, 6, 10}, series.Float, "x"))
	k, err := NewKBinDiscretize("x", 2, []string{"lo", "hi"}, StrategyUniform)
	if err != nil {
		t.Fatal(err)
	}
	out, err := k.Transform(df)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"lo", "lo", "lo", "hi", "hi"}, out.Col("x").Records()); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestKBinDiscretizeErrors(t *testing.T) {
	if _, err := NewKBinDiscretize("x", 3, []string{"a", "b"}, StrategyQuantile); !errors.Is(err, ErrLabelsMismatch) {
		t.Fatalf("expected labels mismatch, got %v", err)
	}

	df := dataframe.New(series.New([]float64{1, 1, 1, 1, 2}, series.Float, "x"))
	k, err := NewKBinDiscretize("x", 4, []string{"a", "b", "c", "d"}, StrategyQuantile)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = k.Transform(df); !errors.Is(err, ErrBinEdgesCollapsed) {
		t.Fatalf("expected collapsed edges, got %v", err)
	}

	k, err = NewKBinDiscretize("x", 2, []string{"a", "b"}, "kmeans")
	if err != nil {
		t.Fatal(err)
	}
	out, err := k.Transform(df)
	if err != nil {
		t.Fatal(err)
	}
	if out.Col("x").Type() != series.Float {
		t.Fatal("unsupported strategy should leave the column unchanged")
	}
}

func TestPipeline(t *testing.T) {
	im, err := NewImputer([]string{"C"}, StrategyConstant, 0)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewBinarize(1, "C")
	if err != nil {
		t.Fatal(err)
	}
	p := NewPipeline(NewDeleteFeature([]string{"B"}), im, b)

	df := sampleTable()
	out, err := FitTransform(p, df)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"A", "C"}, out.Names()); diff != "" {
		t.Fatalf("columns (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"0", "1", "0", "1"}, out.Col("C").Records()); diff != "" {
		t.Fatalf("C (-want +got):\n%s", diff)
	}
	if df.Ncol() != 3 {
		t.Fatal("input table was modified")
	}

	counted := &countingStage{Stage: NewDeleteFeature([]string{"B"})}
	if _, err := FitTransform(NewPipeline(counted, im), df); err != nil {
		t.Fatal(err)
	}
	if counted.transforms != 1 {
		t.Fatalf("expected one Transform per step, got %d", counted.transforms)
	}

	failing := NewPipeline(NewDeleteFeature([]string{"nope"}))
	if _, err := failing.Transform(df); err == nil {
		t.Fatal("expected pipeline to surface the step error")
	}
}

type countingStage struct {
	Stage
	transforms int
}

func (c *countingStage) Fit(df dataframe.DataFrame) (Stage, error) {
	return c, nil
}

func (c *countingStage) Transform(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	c.transforms++
	return c.Stage.Transform(df)
}
