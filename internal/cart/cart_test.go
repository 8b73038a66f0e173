package cart

import (
	"context"
	"testing"

	"github.com/wanderhub/wanderhub/internal/notification"
)

type testNotifier struct {
	last notification.Message
	sent int
}

func (n *testNotifier) Send(_ context.Context, msg notification.Message) error {
	n.last = msg
	n.sent++
	return nil
}

func TestAddMergesByID(t *testing.T) {
	c := New(nil)
	ctx := context.Background()

	c.Add(ctx, Item{ID: "x", Name: "City Pass", Price: 1_500}, 2)
	c.Add(ctx, Item{ID: "x", Name: "City Pass", Price: 1_500}, 3)

	items := c.Items()
	if len(items) != 1 {
		t.Fatalf("expected a single merged entry, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", items[0].Quantity)
	}
	if c.Count() != 5 {
		t.Fatalf("expected count 5, got %d", c.Count())
	}
}

func TestAddDefaultsQuantityToOne(t *testing.T) {
	c := New(nil)
	c.Add(context.Background(), Item{ID: "x"}, 0)
	if c.Count() != 1 {
		t.Fatalf("expected count 1, got %d", c.Count())
	}
}

func TestSetQuantityZeroRemoves(t *testing.T) {
	c := New(nil)
	ctx := context.Background()
	c.Add(ctx, Item{ID: "x"}, 4)
	c.Add(ctx, Item{ID: "y"}, 2)

	before := c.Count()
	c.SetQuantity("x", 0)

	if len(c.Items()) != 1 {
		t.Fatalf("expected x removed, have %d entries", len(c.Items()))
	}
	if got := c.Count(); got != before-4 {
		t.Fatalf("expected count to drop by 4, got %d", got)
	}
}

func TestSetQuantityOverwrites(t *testing.T) {
	c := New(nil)
	c.Add(context.Background(), Item{ID: "x"}, 4)
	c.SetQuantity("x", 2)
	if c.Count() != 2 {
		t.Fatalf("expected quantity set to 2, got %d", c.Count())
	}
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	c := New(nil)
	c.Add(context.Background(), Item{ID: "x"}, 1)
	c.Remove("missing")
	if c.Count() != 1 {
		t.Fatalf("expected cart unchanged, got count %d", c.Count())
	}
}

func TestAddNotifies(t *testing.T) {
	n := &testNotifier{}
	c := New(n)
	c.Add(context.Background(), Item{ID: "x", Name: "City Pass"}, 1)

	if n.sent != 1 {
		t.Fatalf("expected one notification, got %d", n.sent)
	}
	if n.last.Kind != notification.KindCartItemAdded {
		t.Fatalf("unexpected notification kind %q", n.last.Kind)
	}
}
