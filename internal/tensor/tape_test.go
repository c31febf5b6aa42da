package tensor_test

import (
	"errors"
	"testing"

	"github.com/gradtape/gradtape/internal/backend/cpu"
	"github.com/gradtape/gradtape/internal/tensor"
)

func TestBackwardSeedsOnes(t *testing.T) {
	backend := cpu.New()
	tape := tensor.NewTape()
	x := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3}, backend).Retaped(tape)

	grads := x.Backward()
	g := grads.Get(x)
	for i, v := range g.AsFloat32() {
		if v != 1 {
			t.Errorf("seed[%d] = %v, want 1", i, v)
		}
	}
}

func TestBackwardRunsInReverseOrder(t *testing.T) {
	backend := cpu.New()
	tape := tensor.NewTape()
	x := tensor.Ones[float32](tensor.Shape{1}, backend).Retaped(tape)

	var order []int
	for i := 0; i < 3; i++ {
		tape.Append(func(*tensor.Gradients) error {
			order = append(order, i)
			return nil
		})
	}
	x.Backward()

	want := []int{2, 1, 0}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("execution order = %v, want %v", order, want)
		}
	}
}

func TestBackwardTwicePanics(t *testing.T) {
	backend := cpu.New()
	tape := tensor.NewTape()
	x := tensor.Ones[float32](tensor.Shape{1}, backend).Retaped(tape)
	x.Backward()

	defer func() {
		if recover() == nil {
			t.Error("second Backward on the same tape did not panic")
		}
	}()
	x.Backward()
}

func TestBackwardWithoutTapePanics(t *testing.T) {
	backend := cpu.New()
	x := tensor.Ones[float32](tensor.Shape{1}, backend)
	defer func() {
		if recover() == nil {
			t.Error("Backward on a detached tensor did not panic")
		}
	}()
	x.Backward()
}

func TestBackwardPropagatesClosureError(t *testing.T) {
	backend := cpu.New()
	tape := tensor.NewTape()
	x := tensor.Ones[float32](tensor.Shape{1}, backend).Retaped(tape)

	boom := errors.New("boom")
	tape.Append(func(*tensor.Gradients) error { return boom })

	_, err := x.TryBackward()
	if !errors.Is(err, boom) {
		t.Errorf("TryBackward error = %v, want wrapped boom", err)
	}
}

func TestAppendAfterDrainPanics(t *testing.T) {
	backend := cpu.New()
	tape := tensor.NewTape()
	x := tensor.Ones[float32](tensor.Shape{1}, backend).Retaped(tape)
	x.Backward()

	defer func() {
		if recover() == nil {
			t.Error("Append on a drained tape did not panic")
		}
	}()
	tape.Append(func(*tensor.Gradients) error { return nil })
}

func TestMergeTapes(t *testing.T) {
	a, b := tensor.NewTape(), tensor.NewTape()

	if got := tensor.MergeTapes(nil, nil); got != nil {
		t.Error("MergeTapes(nil, nil) != nil")
	}
	if got := tensor.MergeTapes(a, nil); got != a {
		t.Error("MergeTapes(a, nil) != a")
	}
	if got := tensor.MergeTapes(nil, b); got != b {
		t.Error("MergeTapes(nil, b) != b")
	}
	if got := tensor.MergeTapes(a, a); got != a {
		t.Error("MergeTapes(a, a) != a")
	}

	defer func() {
		if recover() == nil {
			t.Error("merging two distinct tapes did not panic")
		}
	}()
	tensor.MergeTapes(a, b)
}

func TestGradientsGetAbsentPanics(t *testing.T) {
	backend := cpu.New()
	g := tensor.NewGradients(backend)
	x := tensor.Ones[float32](tensor.Shape{1}, backend)

	if _, ok := g.TryGet(x); ok {
		t.Error("TryGet found a gradient in an empty map")
	}
	defer func() {
		if recover() == nil {
			t.Error("Get on an absent ID did not panic")
		}
	}()
	g.Get(x)
}

func TestGradientsAccumulate(t *testing.T) {
	backend := cpu.New()
	g := tensor.NewGradients(backend)
	x := tensor.Ones[float32](tensor.Shape{2}, backend)

	delta := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	g.Accumulate(x.ID(), delta.Raw().DeepClone())
	g.Accumulate(x.ID(), delta.Raw().DeepClone())

	got := g.Get(x).AsFloat32()
	if got[0] != 2 || got[1] != 4 {
		t.Errorf("accumulated gradient = %v, want [2 4]", got)
	}
	if g.Len() != 1 {
		t.Errorf("Len() = %d, want 1", g.Len())
	}
}

func TestGradientsOrAllocZeros(t *testing.T) {
	backend := cpu.New()
	g := tensor.NewGradients(backend)
	x := tensor.Ones[float32](tensor.Shape{3}, backend)

	grad, err := g.OrAlloc(x.ID(), x.Raw())
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range grad.AsFloat32() {
		if v != 0 {
			t.Errorf("fresh gradient[%d] = %v, want 0", i, v)
		}
	}

	// Second call returns the same storage.
	again, err := g.OrAlloc(x.ID(), x.Raw())
	if err != nil {
		t.Fatal(err)
	}
	if !again.SharesBufferWith(grad) {
		t.Error("OrAlloc allocated twice for the same ID")
	}
}

func TestUnusedTensors(t *testing.T) {
	var u tensor.UnusedTensors
	if !u.IsEmpty() {
		t.Error("zero value not empty")
	}
	u.Add(7)
	u.Add(7)
	if u.IsEmpty() || !u.Contains(7) {
		t.Error("Add(7) not visible")
	}
	if u.Contains(8) {
		t.Error("Contains(8) on a set holding only 7")
	}
	u.Clear()
	if !u.IsEmpty() {
		t.Error("Clear left entries behind")
	}
}
