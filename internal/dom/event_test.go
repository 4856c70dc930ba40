package dom

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dshills/keyjar/internal/input/key"
)

func TestDispatchBubbles(t *testing.T) {
	d := NewDocument()
	root := build(t, `<span>x</span>`)
	span := root.FirstChild

	var order []string
	d.Listen(span, EventKeyDown, func(ev *Event) error {
		order = append(order, "span")
		return nil
	})
	d.Listen(root, EventKeyDown, func(ev *Event) error {
		order = append(order, "root")
		return nil
	})
	d.Listen(root, EventKeyUp, func(ev *Event) error {
		order = append(order, "keyup")
		return nil
	})

	if err := d.Dispatch(span.FirstChild, NewKeyEvent(EventKeyDown, key.NewRuneEvent('a', key.ModNone))); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !reflect.DeepEqual(order, []string{"span", "root"}) {
		t.Errorf("order = %v", order)
	}
}

func TestDispatchStopPropagation(t *testing.T) {
	d := NewDocument()
	root := build(t, `<span>x</span>`)
	reached := false
	d.Listen(root.FirstChild, EventPaste, func(ev *Event) error {
		ev.StopPropagation()
		ev.PreventDefault()
		return nil
	})
	d.Listen(root, EventPaste, func(ev *Event) error {
		reached = true
		return nil
	})

	ev := NewClipboardEvent(EventPaste, nil)
	if err := d.Dispatch(root.FirstChild, ev); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if reached {
		t.Error("ancestor listener ran after StopPropagation")
	}
	if !ev.DefaultPrevented() {
		t.Error("DefaultPrevented should be true")
	}
}

func TestDispatchJoinsErrors(t *testing.T) {
	d := NewDocument()
	root := NewElement("div")
	errA, errB := errors.New("a"), errors.New("b")
	d.Listen(root, EventCut, func(*Event) error { return errA })
	d.Listen(root, EventCut, func(*Event) error { return errB })

	err := d.Dispatch(root, NewClipboardEvent(EventCut, nil))
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("Dispatch error = %v, want both listener errors", err)
	}
}

func TestListenRemove(t *testing.T) {
	d := NewDocument()
	root := NewElement("div")
	calls := 0
	var remove func()
	remove = d.Listen(root, EventKeyUp, func(*Event) error {
		calls++
		remove()
		return nil
	})
	d.Listen(root, EventKeyUp, func(*Event) error { return nil })

	_ = d.Dispatch(root, NewKeyEvent(EventKeyUp, key.Event{}))
	_ = d.Dispatch(root, NewKeyEvent(EventKeyUp, key.Event{}))
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if d.ListenerCount() != 1 {
		t.Errorf("ListenerCount = %d, want 1", d.ListenerCount())
	}
	remove()
	if d.ListenerCount() != 1 {
		t.Error("second remove should be a no-op")
	}
}

func TestFocusEvents(t *testing.T) {
	d := NewDocument()
	a, b := NewElement("div"), NewElement("div")
	var got []string
	d.Listen(a, EventFocus, func(*Event) error { got = append(got, "a:focus"); return nil })
	d.Listen(a, EventBlur, func(*Event) error { got = append(got, "a:blur"); return nil })
	d.Listen(b, EventFocus, func(*Event) error { got = append(got, "b:focus"); return nil })

	_ = d.Focus(a)
	_ = d.Focus(a)
	_ = d.Focus(b)
	if !d.HasFocus(b) || d.ActiveElement() != b {
		t.Error("b should be focused")
	}
	_ = d.Blur()
	if d.ActiveElement() != nil {
		t.Error("Blur should clear focus")
	}

	want := []string{"a:focus", "a:blur", "b:focus"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestDataTransfer(t *testing.T) {
	var nilDT *DataTransfer
	if nilDT.GetData(MIMEText) != "" || nilDT.Types() != nil {
		t.Error("nil DataTransfer should be empty")
	}
	dt := NewDataTransfer()
	dt.SetData(MIMEText, "x")
	dt.SetData(MIMEHTML, "<b>x</b>")
	if dt.GetData(MIMEText) != "x" {
		t.Errorf("GetData = %q", dt.GetData(MIMEText))
	}
	if !reflect.DeepEqual(dt.Types(), []string{MIMEHTML, MIMEText}) {
		t.Errorf("Types = %v", dt.Types())
	}
}
