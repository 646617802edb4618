package service

import (
	"errors"
	"testing"
	"time"
)

func TestConfirmations_IssueVerify(t *testing.T) {
	c, err := NewConfirmations("", time.Minute)
	if err != nil {
		t.Fatalf("NewConfirmations: %v", err)
	}

	token, err := c.Issue(7)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if err := c.Verify(token, 7); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if err := c.Verify(token, 8); !errors.Is(err, ErrNotConfirmed) {
		t.Fatalf("token for 7 must not confirm 8, got %v", err)
	}
}

func TestConfirmations_Expired(t *testing.T) {
	c, _ := NewConfirmations("k", time.Minute)
	base := time.Now()
	c.now = func() time.Time { return base }
	token, _ := c.Issue(1)

	c.now = func() time.Time { return base.Add(2 * time.Minute) }
	if err := c.Verify(token, 1); !errors.Is(err, ErrNotConfirmed) {
		t.Fatalf("expected expired token to fail, got %v", err)
	}
}

func TestConfirmations_OtherKeyRejected(t *testing.T) {
	a, _ := NewConfirmations("key-a", time.Minute)
	b, _ := NewConfirmations("key-b", time.Minute)

	token, _ := a.Issue(3)
	if err := b.Verify(token, 3); !errors.Is(err, ErrNotConfirmed) {
		t.Fatalf("expected signature failure, got %v", err)
	}
}

func TestConfirmations_Empty(t *testing.T) {
	c, _ := NewConfirmations("k", time.Minute)
	if err := c.Verify("", 1); !errors.Is(err, ErrNotConfirmed) {
		t.Fatalf("expected ErrNotConfirmed, got %v", err)
	}
}
