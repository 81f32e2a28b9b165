package eventhub_test

import (
	"fmt"

	"eventhub"
)

func Example() {
	h := eventhub.New()

	unbind, _ := h.On("tick", func(args ...any) {
		fmt.Println("tick", args)
	})
	h.Once("tick", func(args ...any) {
		fmt.Println("first tick only")
	})

	h.Emit("tick", 1)
	h.Emit("tick", 2, 3)
	unbind()
	fmt.Println(h.Emit("tick", 4))

	// Output:
	// tick [1]
	// first tick only
	// tick [2 3]
	// false
}

func ExampleWithListeners() {
	h := eventhub.New(eventhub.WithListeners(map[string][]eventhub.Listener{
		"test": {func(args ...any) { fmt.Println("got", args[0]) }},
	}))

	h.Emit("test", 0)
	fmt.Println(h.Events())

	// Output:
	// got 0
	// [test]
}
