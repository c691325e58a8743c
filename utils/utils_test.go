package utils

import (
	"reflect"
	"sync/atomic"
	"testing"
)

func TestLayout(t *testing.T) {
	l := NewLayout([]int{2, 3, 4})

	if l.Size() != 24 {
		t.Errorf("Size() = %d, want 24", l.Size())
	}
	if !reflect.DeepEqual(l.Strides, []int{12, 4, 1}) {
		t.Errorf("Strides = %v", l.Strides)
	}

	for i := 0; i < l.Size(); i++ {
		if got := l.Index(l.Point(i)); got != i {
			t.Errorf("Index(Point(%d)) = %d", i, got)
		}
	}

	if got := l.Index([]int{1, 2, 3}); got != 23 {
		t.Errorf("Index([1,2,3]) = %d, want 23", got)
	}
	if l.Outer(1) != 2 || l.Inner(1) != 4 {
		t.Errorf("Outer(1), Inner(1) = %d, %d", l.Outer(1), l.Inner(1))
	}

	if s := NewLayout(nil).Size(); s != 1 {
		t.Errorf("scalar Size() = %d, want 1", s)
	}
}

func TestMultiThread(t *testing.T) {
	cases := []struct {
		start, end, ops, threads int
	}{
		{0, 0, 4, 1},
		{0, 3, 4, 1},
		{5, 1000, 7, 2},
		{0, 10000, 1, 1},
		{0, 100, 0, 0},
	}

	for _, c := range cases {
		seen := make([]int32, c.end)
		MultiThread(c.start, c.end, func(i int) {
			atomic.AddInt32(&seen[i], 1)
		}, c.ops, c.threads)

		for i := range seen {
			want := int32(0)
			if i >= c.start {
				want = 1
			}
			if seen[i] != want {
				t.Errorf("[%d, %d): index %d run %d times", c.start, c.end, i, seen[i])
				break
			}
		}
	}
}
