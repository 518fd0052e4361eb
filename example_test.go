package dynarray

import (
	"errors"
	"fmt"
)

// Example demonstrates basic array usage
func Example() {
	a, err := New[float64](1)
	if err != nil {
		panic(err)
	}
	defer a.Release()

	fmt.Println("size:", a.Len(), "capacity:", a.Cap())

	// Grow the logical size without reallocating
	if err := a.Resize(5); err != nil {
		panic(err)
	}

	// Insert before position 3 and append at the end
	if _, err := a.Insert(a.Begin()+3, 8); err != nil {
		panic(err)
	}
	if err := a.PushBack(3); err != nil {
		panic(err)
	}
	fmt.Println("elements:", a.Slice())

	a.Erase(a.Begin() + 3)
	a.PopBack()
	fmt.Println("after erase and pop:", a.Slice())

	// Output:
	// size: 1 capacity: 42
	// elements: [0 0 0 8 0 0 3]
	// after erase and pop: [0 0 0 0 0]
}

// ExampleArray_Clone shows that a clone is independent of its source
func ExampleArray_Clone() {
	a := MustNew[string](0)
	_ = a.PushBack("x")
	_ = a.PushBack("y")

	b, err := a.Clone()
	if err != nil {
		panic(err)
	}
	b.Set(0, "changed")

	fmt.Println(a.Slice(), b.Slice())
	// Output: [x y] [changed y]
}

// ExampleMove shows that the source of a move is left empty
func ExampleMove() {
	a := MustNew[int](3)
	b := Move(a)

	fmt.Println("moved-from:", a.Len(), a.Cap())
	fmt.Println("moved-to:", b.Len(), b.Cap())
	// Output:
	// moved-from: 0 0
	// moved-to: 3 42
}

// ExampleBudget demonstrates bounding the memory an array may use
func ExampleBudget() {
	// Room for the first buffer of 42 int64 values and nothing more.
	budget := NewBudget(42*8, nil)
	a := MustNew[int64](42, WithBudget[int64](budget))

	err := a.PushBack(1)
	fmt.Println(errors.Is(err, ErrBudgetExceeded))
	fmt.Println("size still", a.Len(), "capacity still", a.Cap())

	a.Release()
	fmt.Println("bytes in use:", budget.InUse())
	// Output:
	// true
	// size still 42 capacity still 42
	// bytes in use: 0
}

// ExampleArray_All iterates over the live elements
func ExampleArray_All() {
	a := MustNew[rune](0)
	for _, r := range "abc" {
		_ = a.PushBack(r)
	}
	for i, r := range a.All() {
		fmt.Printf("%d:%c ", i, r)
	}
	fmt.Println()
	// Output: 0:a 1:b 2:c
}
