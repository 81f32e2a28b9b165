// Package eventhub is a small synchronous publish/subscribe primitive.
//
// A Hub maps event names to ordered lists of listeners. On and Once register
// a listener and return an Unbind handle; Emit calls the listeners of one
// event, in registration order, on the caller's goroutine.
//
//	h := eventhub.New()
//	unbind, _ := h.On("tick", func(args ...any) {
//		fmt.Println("tick", args)
//	})
//	h.Emit("tick", 1, 2)
//	unbind()
//
// Listener validation (rejecting nil listeners with ErrInvalidListener) is on
// by default. It is turned off with WithProductionMode(true) or by building
// with -tags eventhub_production.
package eventhub
