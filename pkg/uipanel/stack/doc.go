// Package stack provides the ordered panel stack used by uipanel controllers.
//
// The stack is a plain LIFO with two extra operations the panel protocol
// needs: Contains and Remove, both driven by a match function so callers can
// compare by identity instead of by value.
//
// # Basic Usage
//
//	s := stack.New[*Panel]()
//	s.Push(menu)
//	s.Push(dialog)
//
//	top, _ := s.Peek() // dialog
//
//	// Drop an entry that is no longer relevant, wherever it sits
//	s.Remove(func(p *Panel) bool { return p.ID() == menu.ID() })
//
// # Concurrency
//
// Stack does no locking. The controller that owns a stack holds its own lock
// around every call.
package stack
