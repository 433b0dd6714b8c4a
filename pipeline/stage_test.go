package pipeline

import (
	"context"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/kbukum/contentgen/errors"
)

func TestStageOf_TypeMismatch(t *testing.T) {
	s := addOne()
	_, err := s.Process(context.Background(), "three")
	if errors.CodeOf(err) != errors.ErrCodeTypeMismatch {
		t.Fatalf("got %v, want TYPE_MISMATCH", err)
	}
	if !strings.Contains(err.Error(), "string") {
		t.Errorf("error %q should name the received type", err)
	}
}

func TestStageOf_DeclaredTypes(t *testing.T) {
	typed, ok := stringify().(Typed)
	if !ok {
		t.Fatal("StageOf stage does not implement Typed")
	}
	if typed.InputType() != reflect.TypeFor[int]() || typed.OutputType() != reflect.TypeFor[string]() {
		t.Errorf("types = %v -> %v", typed.InputType(), typed.OutputType())
	}
}

func TestAs_NilPointer(t *testing.T) {
	v, err := As[*int]("s", nil)
	if err != nil || v != nil {
		t.Errorf("got (%v, %v), want (nil, nil)", v, err)
	}
	if _, err := As[int]("s", nil); err == nil {
		t.Error("nil int should be a mismatch")
	}
}

func TestCheckChain(t *testing.T) {
	readerOut := StageOf("reader", func(_ context.Context, s string) (io.Reader, error) {
		return strings.NewReader(s), nil
	})
	wantsBuilder := StageOf("builder", func(_ context.Context, b *strings.Builder) (int, error) {
		return b.Len(), nil
	})
	untyped := stageFunc{name: "any"}

	tests := []struct {
		name    string
		in      reflect.Type
		stages  []Stage
		out     reflect.Type
		wantErr bool
	}{
		{"empty matching", reflect.TypeFor[int](), nil, reflect.TypeFor[int](), false},
		{"empty mismatching", reflect.TypeFor[int](), nil, reflect.TypeFor[string](), true},
		{"typed chain", reflect.TypeFor[int](), []Stage{addOne(), stringify()}, reflect.TypeFor[string](), false},
		{"typed mismatch", reflect.TypeFor[int](), []Stage{stringify(), addOne()}, reflect.TypeFor[int](), true},
		{"interface output deferred", reflect.TypeFor[string](), []Stage{readerOut, wantsBuilder}, reflect.TypeFor[int](), false},
		{"untyped deferred", reflect.TypeFor[int](), []Stage{untyped, stringify()}, reflect.TypeFor[string](), false},
		{"concrete into interface", reflect.TypeFor[string](), nil, reflect.TypeFor[any](), false},
		{"concrete missing method", reflect.TypeFor[int](), nil, reflect.TypeFor[io.Reader](), true},
		{"nil stage", reflect.TypeFor[int](), []Stage{nil}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckChain(tt.in, tt.stages, tt.out)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOperators(t *testing.T) {
	ctx := context.Background()
	src := Take(Filter(Map(FromSlice(ints(20)), func(_ context.Context, n int) (int, error) {
		return n * 3, nil
	}), func(n int) bool { return n%2 == 0 }), 4)

	var got []int
	for {
		v, ok, err := src.Next(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			break
		}
		got = append(got, v)
	}
	if want := []int{0, 6, 12, 18}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestOperators_CloseForwards(t *testing.T) {
	inner := &countingSource{items: ints(3)}
	src := Take(Filter(FromIterator[int](inner), func(int) bool { return true }), 1)
	if err := closeSource(src); err != nil {
		t.Fatal(err)
	}
	if !inner.closed.Load() {
		t.Error("Close did not reach the underlying iterator")
	}
}

func TestCollector(t *testing.T) {
	c := &Collector[string]{}
	_ = c.Emit(context.Background(), "a")
	items := c.Items()
	items[0] = "mutated"
	if c.Items()[0] != "a" {
		t.Error("Items must return a copy")
	}
}
