package notify

import (
	"testing"

	"satchel/internal/domain"
)

func TestEmitDeliversInOrder(t *testing.T) {
	e := NewEmitter()
	ch := e.Subscribe()

	kinds := []domain.EventKind{
		domain.EventServerOnline,
		domain.EventFoldersChanged,
		domain.EventResourceRead,
	}
	for _, k := range kinds {
		e.Emit(domain.Event{Kind: k})
	}

	for i, want := range kinds {
		got := <-ch
		if got.Kind != want {
			t.Errorf("event %d: got %v, want %v", i, got.Kind, want)
		}
	}
}

func TestEmitFansOut(t *testing.T) {
	e := NewEmitter()
	first := e.Subscribe()
	second := e.Subscribe()

	e.Emit(domain.Event{Kind: domain.EventResourceRead, Label: "file: a.md"})

	for _, ch := range []<-chan domain.Event{first, second} {
		got := <-ch
		if got.Label != "file: a.md" {
			t.Errorf("unexpected event %+v", got)
		}
	}
}

func TestEmitNeverBlocksOnFullSubscriber(t *testing.T) {
	e := NewEmitter()
	ch := e.Subscribe()

	// Overfill the buffer; the overflow must be dropped, not block.
	for i := 0; i < subscriberBuffer+10; i++ {
		e.Emit(domain.Event{Kind: domain.EventResourceRead})
	}

	delivered := 0
	for {
		select {
		case <-ch:
			delivered++
		default:
			if delivered != subscriberBuffer {
				t.Errorf("expected %d buffered events, got %d", subscriberBuffer, delivered)
			}
			return
		}
	}
}

func TestEmitWithoutSubscribers(t *testing.T) {
	e := NewEmitter()
	e.Emit(domain.Event{Kind: domain.EventServerOnline})
}

func TestSubscribeDoesNotReplay(t *testing.T) {
	e := NewEmitter()
	e.Emit(domain.Event{Kind: domain.EventServerOnline})

	ch := e.Subscribe()
	select {
	case got := <-ch:
		t.Errorf("unexpected replayed event %+v", got)
	default:
	}
}
